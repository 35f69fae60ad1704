package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
)

// ErrEmptyResponse 模型返回了空内容
var ErrEmptyResponse = errors.New("llm returned empty content")

// CompletionRequest 一次对话补全请求
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// TextCompletionClient 文本补全客户端
type TextCompletionClient interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// ChatClient 基于 eino ChatModel 的实现，调用前经过限流器
type ChatClient struct {
	chatModel model.BaseChatModel
	limiter   *rate.Limiter
}

// NewChatClient limiter 为 nil 时不限流
func NewChatClient(cm model.BaseChatModel, limiter *rate.Limiter) *ChatClient {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &ChatClient{chatModel: cm, limiter: limiter}
}

// NewLimiter 按 RPM/QPS 构造令牌桶，RPM 为 0 时不限流
func NewLimiter(c config.ConcurrencyConfig) *rate.Limiter {
	if c.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := c.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(c.RPM)/60.0), burst)
}

// NewFromConfig 未配置 API Key 时返回 nil，调用方直接走兜底摘要
func NewFromConfig(ctx context.Context, cfg *config.Config) (TextCompletionClient, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, nil
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: config.Seconds(cfg.LLM.Timeout, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatClient(cm, NewLimiter(cfg.Concurrency)), nil
}

// Complete 发送 system + user 两条消息，返回回复文本
func (c *ChatClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: req.System},
		{Role: schema.User, Content: req.User},
	}

	var opts []model.Option
	if req.Temperature > 0 {
		opts = append(opts, model.WithTemperature(req.Temperature))
	}
	if req.TopP > 0 {
		opts = append(opts, model.WithTopP(req.TopP))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
