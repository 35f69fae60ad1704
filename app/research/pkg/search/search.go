package search

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrNotConfigured 搜索服务缺少必要配置（例如 API Key）
var ErrNotConfigured = errors.New("search provider not configured")

// NewsSearchClient 定义通用的新闻搜索接口
type NewsSearchClient interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	Name() string
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	SortBy     string // publishedAt, relevancy
	StartDate  string // Format: YYYY-MM-DD
	EndDate    string // Format: YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	Description   string
	URL           string
	Source        string
	Score         float64
	PublishedDate string
}

// HostOf 返回 URL 的主机名（去掉 www. 前缀），用作新闻来源
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
