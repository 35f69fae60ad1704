package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/company_radar/app/research/pkg/cache"
	"github.com/iWorld-y/company_radar/app/research/pkg/company"
	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/summary"
)

// ErrEmptyCompanyName 公司名为空
var ErrEmptyCompanyName = errors.New("company name is required")

// CompanyResolver 公司信息来源
type CompanyResolver interface {
	Resolve(ctx context.Context, name string) model.Outcome[model.CompanyInfo]
}

// NewsResolver 新闻来源
type NewsResolver interface {
	Resolve(ctx context.Context, name string) model.Outcome[model.NewsBundle]
	ErrorBundle(name, reason string) model.NewsBundle
}

// ReviewSampler 员工评价来源
type ReviewSampler interface {
	Sample(name string) []model.Review
}

// Summarizer 摘要生成
type Summarizer interface {
	Summarize(ctx context.Context, in *summary.Input) string
}

// Engine 核心处理引擎：并发收集三类数据，生成摘要并缓存
type Engine struct {
	company    CompanyResolver
	news       NewsResolver
	reviews    ReviewSampler
	summarizer Summarizer
	store      cache.Store
	now        func() time.Time
}

// NewEngine 创建引擎实例
func NewEngine(info CompanyResolver, news NewsResolver, reviews ReviewSampler, summarizer Summarizer, store cache.Store) *Engine {
	return &Engine{
		company:    info,
		news:       news,
		reviews:    reviews,
		summarizer: summarizer,
		store:      store,
		now:        time.Now,
	}
}

// Research 执行一次公司调研；只有公司名为空或内部异常时返回错误
func (e *Engine) Research(ctx context.Context, req *model.ResearchRequest) (result *model.ResearchResult, err error) {
	start := e.now()
	name := strings.TrimSpace(req.CompanyName)
	role := strings.TrimSpace(req.Role())
	if name == "" {
		return nil, ErrEmptyCompanyName
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Log.Errorf("调研公司异常 [%s]: %v", name, p)
			result, err = nil, fmt.Errorf("research %s: %v", name, p)
		}
	}()

	key := cache.Key(name, role)
	if cached, ok := e.lookup(ctx, key); ok {
		logger.Log.Infof("命中缓存 [%s]", name)
		cached.ProcessingTime = e.elapsed(start)
		return &cached, nil
	}

	// 采集、摘要和写缓存不跟随请求取消
	work := context.WithoutCancel(ctx)

	logger.Log.Infof("开始调研公司 [%s]", name)
	info, news, reviews := e.gather(work, name)

	logger.Log.Infof("生成 AI 摘要 [%s]", name)
	aiSummary := e.summarizer.Summarize(work, &summary.Input{
		CompanyName: name,
		JobRole:     role,
		Info:        info,
		News:        news,
		Reviews:     reviews,
	})

	result = &model.ResearchResult{
		CompanyName:    name,
		JobRole:        model.StringPtr(role),
		CompanyInfo:    info,
		News:           news,
		Reviews:        reviews,
		AISummary:      aiSummary,
		AISummaryHTML:  summary.RenderHTML(aiSummary),
		ProcessingTime: e.elapsed(start),
		Status:         "success",
	}

	if e.store != nil {
		if err := e.store.Put(work, key, *result); err != nil {
			logger.Log.Warnf("写入缓存失败 [%s]: %v", name, err)
		}
	}

	logger.Log.Infof("调研完成 [%s]，耗时 %.2fs", name, result.ProcessingTime)
	return result, nil
}

func (e *Engine) lookup(ctx context.Context, key string) (model.ResearchResult, bool) {
	if e.store == nil {
		return model.ResearchResult{}, false
	}
	entry, ok, err := e.store.Get(ctx, key)
	if err != nil {
		logger.Log.Warnf("读取缓存失败: %v", err)
		return model.ResearchResult{}, false
	}
	return entry.Result, ok
}

// gather 三路并发，任一路失败都替换为对应的兜底数据
func (e *Engine) gather(ctx context.Context, name string) (model.CompanyInfo, model.NewsBundle, []model.Review) {
	var (
		infoOut    model.Outcome[model.CompanyInfo]
		newsOut    model.Outcome[model.NewsBundle]
		reviewsOut model.Outcome[[]model.Review]
	)

	var g errgroup.Group
	g.Go(guard("company_info", &infoOut, func() model.Outcome[model.CompanyInfo] {
		return e.company.Resolve(ctx, name)
	}))
	g.Go(guard("news", &newsOut, func() model.Outcome[model.NewsBundle] {
		return e.news.Resolve(ctx, name)
	}))
	g.Go(guard("reviews", &reviewsOut, func() model.Outcome[[]model.Review] {
		return model.OK(e.reviews.Sample(name))
	}))
	_ = g.Wait()

	info := infoOut.Data
	switch infoOut.Kind {
	case model.OutcomeFailed:
		logger.Log.Errorf("公司信息获取失败 [%s]: %s", name, infoOut.Reason)
		info = company.ErrorInfo(name)
	case model.OutcomeDegraded:
		logger.Log.Warnf("公司信息降级 [%s]: %s", name, infoOut.Reason)
	}

	news := newsOut.Data
	switch newsOut.Kind {
	case model.OutcomeFailed:
		logger.Log.Errorf("新闻获取失败 [%s]: %s", name, newsOut.Reason)
		news = e.news.ErrorBundle(name, newsOut.Reason)
	case model.OutcomeDegraded:
		logger.Log.Warnf("新闻降级 [%s]: %s", name, newsOut.Reason)
	}

	reviews := reviewsOut.Data
	if !reviewsOut.Usable() {
		logger.Log.Errorf("员工评价生成失败 [%s]: %s", name, reviewsOut.Reason)
		reviews = e.reviews.Sample(name)
	}

	return info, news, reviews
}

// guard 把分支内的 panic 转为 Failed，分支本身从不返回错误
func guard[T any](branch string, out *model.Outcome[T], fn func() model.Outcome[T]) func() error {
	return func() error {
		defer func() {
			if p := recover(); p != nil {
				logger.Log.Errorf("分支 [%s] 异常: %v", branch, p)
				*out = model.Failed[T](fmt.Sprint(p))
			}
		}()
		*out = fn()
		return nil
	}
}

func (e *Engine) elapsed(start time.Time) float64 {
	return math.Round(e.now().Sub(start).Seconds()*100) / 100
}
