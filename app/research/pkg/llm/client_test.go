package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
)

type stubChatModel struct {
	reply    *schema.Message
	err      error
	messages []*schema.Message
	opts     *model.Options
}

func (s *stubChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	s.messages = input
	s.opts = model.GetCommonOptions(nil, opts...)
	return s.reply, s.err
}

func (s *stubChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestComplete(t *testing.T) {
	cm := &stubChatModel{reply: &schema.Message{Role: schema.Assistant, Content: "# Analysis"}}
	c := NewChatClient(cm, nil)

	out, err := c.Complete(context.Background(), &CompletionRequest{
		System:      "sys",
		User:        "user",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   2000,
	})

	require.NoError(t, err)
	assert.Equal(t, "# Analysis", out)
	require.Len(t, cm.messages, 2)
	assert.Equal(t, schema.System, cm.messages[0].Role)
	assert.Equal(t, "user", cm.messages[1].Content)
	require.NotNil(t, cm.opts.Temperature)
	assert.InDelta(t, 0.7, *cm.opts.Temperature, 1e-6)
	require.NotNil(t, cm.opts.MaxTokens)
	assert.Equal(t, 2000, *cm.opts.MaxTokens)
}

func TestComplete_Errors(t *testing.T) {
	_, err := NewChatClient(&stubChatModel{err: errors.New("429")}, nil).
		Complete(context.Background(), &CompletionRequest{User: "x"})
	assert.Error(t, err)

	_, err = NewChatClient(&stubChatModel{reply: &schema.Message{Content: "  "}}, nil).
		Complete(context.Background(), &CompletionRequest{User: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestComplete_LimiterHonoursContext(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChatClient(&stubChatModel{reply: &schema.Message{Content: "ok"}}, limiter).
		Complete(ctx, &CompletionRequest{User: "x"})
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(config.ConcurrencyConfig{}).Limit())

	l := NewLimiter(config.ConcurrencyConfig{QPS: 2, RPM: 60})
	assert.Equal(t, rate.Limit(1), l.Limit())
	assert.Equal(t, 2, l.Burst())
}

func TestNewFromConfig_NoKey(t *testing.T) {
	c, err := NewFromConfig(context.Background(), config.Default())
	require.NoError(t, err)
	assert.Nil(t, c)
}
