package server

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_radar/app/research/internal/service"
	"github.com/iWorld-y/company_radar/app/research/pkg/cache"
	"github.com/iWorld-y/company_radar/app/research/pkg/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	// 百科全部返回 503，新闻和 LLM 未配置
	wiki := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	t.Cleanup(wiki.Close)

	cfg := config.Default()
	cfg.Wiki.BaseURL = wiki.URL + "/wiki/"
	cfg.Wiki.Timeout = 2

	eng, err := NewResearchEngine(cfg, cache.NewMemoryStore(time.Hour, nil), log.DefaultLogger)
	require.NoError(t, err)

	srv := NewHTTPServer(cfg, service.NewResearchService(eng, log.DefaultLogger), log.DefaultLogger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func postResearch(t *testing.T, ts *httptest.Server, body string) (*nethttp.Response, map[string]any) {
	t.Helper()
	resp, err := nethttp.Post(ts.URL+"/research", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestResearch_EmptyCompanyName(t *testing.T) {
	ts := newTestServer(t)

	resp, out := postResearch(t, ts, `{"company_name": "   "}`)

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "COMPANY_NAME_REQUIRED", out["reason"])
	assert.Equal(t, "Company name is required", out["message"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestResearch_MalformedBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := nethttp.Post(ts.URL+"/research", "application/json", strings.NewReader(`{"company_name":`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestResearch_DegradedUpstreams(t *testing.T) {
	ts := newTestServer(t)

	resp, out := postResearch(t, ts, `{"company_name": "Acme Corp", "job_role": "Engineer"}`)

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corp", out["company_name"])
	assert.Equal(t, "Engineer", out["job_role"])
	assert.Equal(t, "success", out["status"])

	info := out["company_info"].(map[string]any)
	assert.Equal(t, "limited", info["status"])
	details := info["details"].(map[string]any)
	assert.Equal(t, "Acme Corp", details["Name"])

	news := out["news"].(map[string]any)
	assert.Equal(t, "warning", news["status"])
	assert.Equal(t, "News API key not configured", news["message"])
	assert.NotEmpty(t, news["articles"])

	assert.NotEmpty(t, out["reviews"])
	assert.Contains(t, out["ai_summary"], "# Company Analysis: Acme Corp")
	assert.Contains(t, out["ai_summary_html"], "<h1")
	_, ok := out["processing_time"].(float64)
	assert.True(t, ok)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := nethttp.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", out["status"])
	assert.Greater(t, out["timestamp"].(float64), 0.0)
}

func TestIndexAndStatic(t *testing.T) {
	ts := newTestServer(t)

	resp, err := nethttp.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp, err = nethttp.Get(ts.URL + "/static/script.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := nethttp.NewRequest(nethttp.MethodOptions, ts.URL+"/research", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestServerTimeout(t *testing.T) {
	helper := log.NewHelper(log.DefaultLogger)
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", DefaultTimeout},
		{"120", DefaultTimeout},
		{"soon", DefaultTimeout},
		{"-5s", DefaultTimeout},
		{"30s", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, serverTimeout(tt.raw, helper))
		})
	}
}

func TestResearch_BadTimeoutConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Timeout = "120"
	eng, err := NewResearchEngine(cfg, cache.NewMemoryStore(time.Hour, nil), log.DefaultLogger)
	require.NoError(t, err)

	srv := NewHTTPServer(cfg, service.NewResearchService(eng, log.DefaultLogger), log.DefaultLogger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	resp, err := nethttp.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
