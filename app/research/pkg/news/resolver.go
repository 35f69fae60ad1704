package news

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/normalize"
	"github.com/iWorld-y/company_radar/app/research/pkg/search"
	"github.com/iWorld-y/company_radar/app/research/pkg/textutil"
)

const (
	// DefaultTimeout 单个搜索词的超时
	DefaultTimeout = 10 * time.Second
	maxArticles    = 5
	pageSize       = 10

	msgNotConfigured = "News API key not configured"
	msgSampleData    = "Using sample news data due to API limitations"
)

// Resolver 查询新闻并做相关性过滤，不可用时返回示例新闻
type Resolver struct {
	client  search.NewsSearchClient
	timeout time.Duration
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option Resolver 选项
type Option func(*Resolver)

// WithTimeout 设置单次搜索超时
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRand 指定随机源，便于测试
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) { r.rng = rng }
}

// WithClock 指定时钟，便于测试
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver 创建新闻解析器；client 为 nil 表示未配置新闻服务
func NewResolver(client search.NewsSearchClient, opts ...Option) *Resolver {
	r := &Resolver{
		client:  client,
		timeout: DefaultTimeout,
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Terms 按顺序生成搜索词：原名、规范化名称、精确短语
func Terms(name string) []string {
	return []string{name, normalize.CompanyName(name), `"` + name + `"`}
}

// Resolve 依次尝试各个搜索词，第一个有相关文章的搜索词即返回
func (r *Resolver) Resolve(ctx context.Context, name string) (out model.Outcome[model.NewsBundle]) {
	defer func() {
		if p := recover(); p != nil {
			logger.Log.Errorf("新闻解析异常 [%s]: %v", name, p)
			out = model.Failed[model.NewsBundle](fmt.Sprint(p))
		}
	}()

	if r.client == nil {
		return model.Degraded(msgNotConfigured, r.sampleBundle(model.NewsWarning, msgNotConfigured, name))
	}

	for _, term := range Terms(name) {
		if err := ctx.Err(); err != nil {
			return model.Failed[model.NewsBundle](err.Error())
		}

		articles, err := r.searchTerm(ctx, term, name)
		if err != nil {
			logger.Log.Warnf("新闻搜索失败 [%s] (%s): %v", term, r.client.Name(), err)
			continue
		}
		if len(articles) > 0 {
			logger.Log.Infof("新闻搜索成功 [%s]: %d 篇", term, len(articles))
			return model.OK(model.NewsBundle{Status: model.NewsSuccess, Articles: articles})
		}
	}

	return model.Degraded(msgSampleData, r.sampleBundle(model.NewsWarning, msgSampleData, name))
}

// ErrorBundle 解析异常中断时的兜底结果，文章列表仍然非空
func (r *Resolver) ErrorBundle(name, reason string) model.NewsBundle {
	return r.sampleBundle(model.NewsError, reason, name)
}

func (r *Resolver) searchTerm(ctx context.Context, term, name string) ([]model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.Search(ctx, &search.Request{
		Query:      term,
		Topic:      "news",
		MaxResults: pageSize,
		SortBy:     "publishedAt",
	})
	if err != nil {
		return nil, err
	}
	return filterRelevant(resp.Results, name), nil
}

// filterRelevant 标题或描述中包含公司名（或规范化名称）的文章才保留，最多 5 篇
func filterRelevant(results []search.Result, name string) []model.Article {
	names := []string{strings.ToLower(strings.TrimSpace(name))}
	if n := strings.ToLower(normalize.CompanyName(name)); n != "" && n != names[0] {
		names = append(names, n)
	}

	var articles []model.Article
	for _, item := range results {
		if item.Title == "" || item.Description == "" {
			continue
		}
		if !mentions(item, names) {
			continue
		}

		a := model.Article{
			Title:       item.Title,
			Description: item.Description,
			PublishedAt: textutil.Truncate(item.PublishedDate, 10),
			URL:         item.URL,
			Source:      item.Source,
		}
		if a.URL == "" {
			a.URL = "#"
		}
		if a.Source == "" {
			a.Source = "Unknown"
		}
		articles = append(articles, a)
		if len(articles) >= maxArticles {
			break
		}
	}
	return articles
}

func mentions(item search.Result, names []string) bool {
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	for _, n := range names {
		if n == "" {
			continue
		}
		if strings.Contains(title, n) || strings.Contains(desc, n) {
			return true
		}
	}
	return false
}

func (r *Resolver) sampleBundle(status, message, name string) model.NewsBundle {
	return model.NewsBundle{
		Status:   status,
		Message:  model.StringPtr(message),
		Articles: r.SampleArticles(name),
	}
}
