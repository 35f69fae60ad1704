package server

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_radar/app/research/pkg/cache"
	"github.com/iWorld-y/company_radar/app/research/pkg/company"
	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/engine"
	"github.com/iWorld-y/company_radar/app/research/pkg/fetch"
	"github.com/iWorld-y/company_radar/app/research/pkg/llm"
	"github.com/iWorld-y/company_radar/app/research/pkg/news"
	"github.com/iWorld-y/company_radar/app/research/pkg/reviews"
	"github.com/iWorld-y/company_radar/app/research/pkg/search"
	"github.com/iWorld-y/company_radar/app/research/pkg/search/factory"
	"github.com/iWorld-y/company_radar/app/research/pkg/summary"
)

// NewCacheStore 初始化结果缓存，Redis 后端在 cleanup 中关闭连接
func NewCacheStore(c *config.Config, logger log.Logger) (cache.Store, func(), error) {
	helper := log.NewHelper(logger)
	store, err := cache.NewFromConfig(&c.Cache)
	if err != nil {
		helper.Errorf("Failed to init cache: %v", err)
		return nil, nil, err
	}

	cleanup := func() {}
	if rs, ok := store.(*cache.RedisStore); ok {
		cleanup = func() {
			helper.Info("Closing redis cache")
			_ = rs.Close()
		}
	}
	return store, cleanup, nil
}

// NewSweeper 缓存清理任务
func NewSweeper(c *config.Config, store cache.Store) *cache.Sweeper {
	return cache.NewSweeper(store, config.Seconds(c.Cache.SweepInterval, cache.DefaultSweepInterval))
}

// NewResearchEngine 组装调研引擎；新闻和 LLM 未配置时降级运行
func NewResearchEngine(c *config.Config, store cache.Store, logger log.Logger) (*engine.Engine, error) {
	helper := log.NewHelper(logger)

	fetcher := fetch.NewClient(config.Seconds(c.Wiki.Timeout, fetch.DefaultTimeout))
	companies := company.NewResolver(fetcher, c.Wiki.BaseURL, config.Seconds(c.Wiki.Timeout, fetch.DefaultTimeout))

	searcher, err := factory.NewSearcher(&c.Search)
	switch {
	case errors.Is(err, search.ErrNotConfigured):
		helper.Warnf("News search disabled: %v", err)
	case err != nil:
		helper.Errorf("Failed to init news search: %v", err)
		return nil, err
	}
	newsResolver := news.NewResolver(searcher)

	client, err := llm.NewFromConfig(context.Background(), c)
	if err != nil {
		helper.Errorf("Failed to init llm: %v", err)
		return nil, err
	}
	if client == nil {
		helper.Warn("LLM api key not configured, summaries will use the fallback template")
	}

	return engine.NewEngine(
		companies,
		newsResolver,
		reviews.NewSampler(nil, nil),
		summary.NewSummarizer(client),
		store,
	), nil
}
