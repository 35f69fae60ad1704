package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iWorld-y/company_radar/app/research/pkg/search"
)

// DefaultBaseURL newsapi.org everything 接口
const DefaultBaseURL = "https://newsapi.org/v2/everything"

// Client newsapi.org 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 newsapi 客户端
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Ensure Client implements search.NewsSearchClient
var _ search.NewsSearchClient = (*Client)(nil)

// Name 服务名称
func (c *Client) Name() string {
	return "newsapi"
}

// SearchResponse newsapi 响应结构
type SearchResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Article newsapi 单条文章
type Article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Search implements search.NewsSearchClient
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "publishedAt"
	}
	pageSize := req.MaxResults
	if pageSize <= 0 {
		pageSize = 10
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("sortBy", sortBy)
	q.Set("pageSize", strconv.Itoa(pageSize))
	if req.StartDate != "" {
		q.Set("from", req.StartDate)
	}
	if req.EndDate != "" {
		q.Set("to", req.EndDate)
	}
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if searchResp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error (%s): %s", searchResp.Code, searchResp.Message)
	}

	results := make([]search.Result, 0, len(searchResp.Articles))
	for _, a := range searchResp.Articles {
		results = append(results, search.Result{
			Title:         a.Title,
			Description:   a.Description,
			URL:           a.URL,
			Source:        a.Source.Name,
			PublishedDate: a.PublishedAt,
		})
	}

	return &search.Response{Results: results}, nil
}
