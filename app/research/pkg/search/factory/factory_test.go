package factory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/search"
)

func TestNewSearcher(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.SearchConfig
		want         string
		unconfigured bool
		wantErr      bool
	}{
		{name: "default provider without key", cfg: config.SearchConfig{}, unconfigured: true, wantErr: true},
		{name: "newsapi", cfg: config.SearchConfig{NewsAPI: config.NewsAPIConfig{APIKey: "k"}}, want: "newsapi"},
		{name: "tavily", cfg: config.SearchConfig{Provider: "tavily", Tavily: config.TavilyConfig{APIKey: "k"}}, want: "tavily"},
		{name: "tavily without key", cfg: config.SearchConfig{Provider: "tavily"}, unconfigured: true, wantErr: true},
		{name: "searxng", cfg: config.SearchConfig{Provider: "searxng", SearXNG: config.SearXNGConfig{BaseURL: "http://localhost:8888"}}, want: "searxng"},
		{name: "searxng without url", cfg: config.SearchConfig{Provider: "searxng"}, unconfigured: true, wantErr: true},
		{name: "unknown", cfg: config.SearchConfig{Provider: "bing"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSearcher(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.unconfigured, errors.Is(err, search.ErrNotConfigured))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}
