package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_radar/app/research/pkg/llm"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

type stubClient struct {
	reply string
	err   error
	req   *llm.CompletionRequest
}

func (s *stubClient) Complete(_ context.Context, req *llm.CompletionRequest) (string, error) {
	s.req = req
	return s.reply, s.err
}

func sampleInput() *Input {
	details := model.NewAttributes()
	for i := 1; i <= 10; i++ {
		details.Set(fmt.Sprintf("Key%d", i), fmt.Sprintf("Value%d", i))
	}
	extra := model.NewAttributes()
	extra.Set("History", strings.Repeat("h", 400))

	return &Input{
		CompanyName: "Acme",
		Info: model.CompanyInfo{
			Summary:        strings.Repeat("s", 1200),
			Details:        details,
			AdditionalInfo: extra,
		},
		News: model.NewsBundle{Articles: []model.Article{
			{Title: "T1", Description: "D1"}, {Title: "T2", Description: "D2"},
			{Title: "T3", Description: "D3"}, {Title: "T4", Description: "D4"},
		}},
		Reviews: []model.Review{
			{Role: "Engineer", Rating: 4.3, Title: "Great", Pros: strings.Repeat("p", 250), Cons: "slow"},
		},
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(sampleInput())

	parts := strings.Split(ctx, "\n\n")
	assert.Equal(t, "Company: Acme", parts[0])
	assert.Equal(t, "Company Overview: "+strings.Repeat("s", 1000), parts[1])
	assert.Contains(t, ctx, "- Key8: Value8")
	assert.NotContains(t, ctx, "Key9")
	assert.Contains(t, ctx, "History: "+strings.Repeat("h", 300)+"\n")
	assert.Contains(t, ctx, "- T3: D3")
	assert.NotContains(t, ctx, "T4")
	assert.Contains(t, ctx, "- Engineer (Rating: 4.3/5): Great")
	assert.Contains(t, ctx, "  Pros: "+strings.Repeat("p", 200)+"...")
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "Company: Acme", BuildContext(&Input{CompanyName: "Acme"}))
}

func TestPrompt_JobContext(t *testing.T) {
	in := &Input{CompanyName: "Acme", JobRole: "Data Scientist"}
	assert.Contains(t, Prompt(in), "The candidate is preparing for a Data Scientist interview at Acme.")

	in.JobRole = ""
	assert.Contains(t, Prompt(in), "The candidate is researching Acme for a potential job opportunity.")
	assert.Contains(t, Prompt(in), "5. **Strategic Questions to Ask**")
}

func TestSummarize_UsesClient(t *testing.T) {
	c := &stubClient{reply: "## Insights"}
	out := NewSummarizer(c).Summarize(context.Background(), sampleInput())

	assert.Equal(t, "## Insights", out)
	require.NotNil(t, c.req)
	assert.Equal(t, systemMessage, c.req.System)
	assert.InDelta(t, 0.7, c.req.Temperature, 1e-6)
	assert.InDelta(t, 0.9, c.req.TopP, 1e-6)
	assert.Equal(t, 2000, c.req.MaxTokens)
}

func TestSummarize_FallbackOnError(t *testing.T) {
	out := NewSummarizer(&stubClient{err: errors.New("503")}).Summarize(context.Background(), sampleInput())

	assert.True(t, strings.HasPrefix(out, "# Company Analysis: Acme"))
	assert.Contains(t, out, "## Key Information\n- Key1: Value1\n")
	assert.Contains(t, out, "- Key5: Value5\n\n")
	assert.NotContains(t, out, "Key6")
	assert.Contains(t, out, "- T1\n- T2\n- T3")
}

func TestSummarize_NoClient(t *testing.T) {
	out := NewSummarizer(nil).Summarize(context.Background(), &Input{CompanyName: "Acme"})

	assert.Contains(t, out, "# Company Analysis: Acme")
	assert.Contains(t, out, "Acme is a company in the industry with various business operations.")
	assert.Contains(t, out, "## Employee Perspectives")
}

func TestRenderHTML(t *testing.T) {
	out := RenderHTML("# Title\n\n[link](https://example.com)\n\n<script>alert(1)</script>")

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Title</h1>")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.NotContains(t, out, "<script>")
	assert.Empty(t, RenderHTML(""))
}
