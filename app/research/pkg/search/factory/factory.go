package factory

import (
	"fmt"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/newsapi"
	"github.com/iWorld-y/company_radar/app/research/pkg/search"
	"github.com/iWorld-y/company_radar/app/research/pkg/searxng"
	"github.com/iWorld-y/company_radar/app/research/pkg/tavily"
)

// NewSearcher 根据配置创建新闻搜索实例
// 缺少 API Key 时返回 search.ErrNotConfigured，调用方应降级为示例新闻
func NewSearcher(cfg *config.SearchConfig) (search.NewsSearchClient, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "newsapi"
	}

	switch provider {
	case "newsapi":
		if cfg.NewsAPI.APIKey == "" {
			return nil, fmt.Errorf("newsapi api key is missing: %w", search.ErrNotConfigured)
		}
		return newsapi.NewClient(cfg.NewsAPI.APIKey, cfg.NewsAPI.BaseURL), nil

	case "tavily":
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing: %w", search.ErrNotConfigured)
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing: %w", search.ErrNotConfigured)
		}
		return searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
