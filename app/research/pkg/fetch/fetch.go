package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent 模拟浏览器请求头，避免被简单的反爬虫策略拦截
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout 单次抓取的默认超时
const DefaultTimeout = 15 * time.Second

// 结果状态
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result 一次抓取的统一结果，调用方只根据 Status 分支
type Result struct {
	Status  string
	Content string
	Error   string
	URL     string
}

// OK 是否抓取成功
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// PageFetcher 页面抓取接口
type PageFetcher interface {
	Fetch(ctx context.Context, url string, opts ...Option) Result
}

// Option 单次请求选项
type Option func(*options)

type options struct {
	headers map[string]string
	timeout time.Duration
}

// WithHeader 设置请求头，会覆盖默认 User-Agent
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// WithTimeout 设置本次请求超时
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Client 基于 net/http 的抓取客户端
type Client struct {
	client  *http.Client
	timeout time.Duration
}

// Ensure Client implements PageFetcher
var _ PageFetcher = (*Client)(nil)

// NewClient 创建抓取客户端，timeout 为 0 时使用 DefaultTimeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch 执行 GET 请求，所有失败都转换为 StatusError 结果
func (c *Client) Fetch(ctx context.Context, url string, opts ...Option) Result {
	o := options{timeout: c.timeout}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorResult(url, err.Error())
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}

	res, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errorResult(url, "Request timeout")
		}
		return errorResult(url, err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errorResult(url, fmt.Sprintf("HTTP %d", res.StatusCode))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		if isTimeout(err) {
			return errorResult(url, "Request timeout")
		}
		return errorResult(url, fmt.Sprintf("read body failed: %v", err))
	}

	return Result{Status: StatusSuccess, Content: string(body), URL: url}
}

func errorResult(url, reason string) Result {
	return Result{Status: StatusError, Error: reason, URL: url}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
