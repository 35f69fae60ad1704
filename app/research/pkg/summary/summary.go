package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/company_radar/app/research/pkg/llm"
	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/textutil"
)

const (
	maxOverviewLen = 1000
	maxDetails     = 8
	maxSectionLen  = 300
	maxNews        = 3
	maxReviews     = 3
	maxReviewText  = 200

	fallbackDetails = 5

	temperature = 0.7
	topP        = 0.9
	maxTokens   = 2000
)

const systemMessage = "You are an expert career advisor and company research analyst. " +
	"Provide detailed, actionable insights for job seekers preparing for interviews. " +
	"Use a professional but engaging tone, and structure your analysis clearly with specific, practical advice."

const promptTemplate = `
As an expert career advisor, provide a comprehensive company analysis for a job seeker. %s

Based on the following research data:

%s

Please provide a well-structured analysis covering:

1. **Company Overview & Business Model**
   - Core business areas and market position
   - Recent strategic developments and growth areas

2. **Company Culture & Work Environment**
   - Work culture insights from employee feedback
   - Management style and organizational structure
   - Work-life balance and employee satisfaction trends

3. **Recent Developments & Market Position**
   - Key recent news and strategic initiatives
   - Market challenges and opportunities
   - Innovation and growth areas

4. **Interview Preparation Insights**
   - Key talking points that demonstrate company knowledge
   - Potential questions about company direction and challenges
   - Ways to show alignment with company values and goals

5. **Strategic Questions to Ask**
   - Thoughtful questions about company future and role growth
   - Questions that show industry knowledge and strategic thinking

Format your response with clear headers and actionable insights that will help the candidate stand out in their interview.
`

// Input 生成摘要所需的调研数据
type Input struct {
	CompanyName string
	JobRole     string
	Info        model.CompanyInfo
	News        model.NewsBundle
	Reviews     []model.Review
}

// Summarizer 调用 LLM 生成面试调研摘要，失败时返回确定性的兜底文本
type Summarizer struct {
	client llm.TextCompletionClient
}

// NewSummarizer client 为 nil 表示未配置 LLM
func NewSummarizer(client llm.TextCompletionClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize 总是返回非空 markdown
func (s *Summarizer) Summarize(ctx context.Context, in *Input) string {
	if s.client == nil {
		logger.Log.Warnf("未配置 LLM，使用兜底摘要 [%s]", in.CompanyName)
		return Fallback(in)
	}

	out, err := s.client.Complete(ctx, &llm.CompletionRequest{
		System:      systemMessage,
		User:        Prompt(in),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		logger.Log.Errorf("生成 AI 摘要失败 [%s]: %v", in.CompanyName, err)
		return Fallback(in)
	}
	return out
}

// Prompt 拼装用户提示词
func Prompt(in *Input) string {
	return fmt.Sprintf(promptTemplate, jobContext(in), BuildContext(in))
}

func jobContext(in *Input) string {
	if in.JobRole != "" {
		return fmt.Sprintf("The candidate is preparing for a %s interview at %s.", in.JobRole, in.CompanyName)
	}
	return fmt.Sprintf("The candidate is researching %s for a potential job opportunity.", in.CompanyName)
}

// BuildContext 把调研数据整理成给模型的上下文，各部分以空行分隔
func BuildContext(in *Input) string {
	parts := []string{"Company: " + in.CompanyName}

	if in.Info.Summary != "" {
		parts = append(parts, "Company Overview: "+textutil.Truncate(in.Info.Summary, maxOverviewLen))
	}

	if in.Info.Details != nil && in.Info.Details.Len() > 0 {
		var sb strings.Builder
		sb.WriteString("Key Company Details:\n")
		n := 0
		for p := in.Info.Details.Oldest(); p != nil && n < maxDetails; p = p.Next() {
			fmt.Fprintf(&sb, "- %s: %s\n", p.Key, p.Value)
			n++
		}
		parts = append(parts, sb.String())
	}

	if in.Info.AdditionalInfo != nil {
		for p := in.Info.AdditionalInfo.Oldest(); p != nil; p = p.Next() {
			parts = append(parts, fmt.Sprintf("%s: %s", p.Key, textutil.Truncate(p.Value, maxSectionLen)))
		}
	}

	if len(in.News.Articles) > 0 {
		var sb strings.Builder
		sb.WriteString("Recent News & Developments:\n")
		for _, a := range head(in.News.Articles, maxNews) {
			fmt.Fprintf(&sb, "- %s: %s\n", a.Title, a.Description)
		}
		parts = append(parts, sb.String())
	}

	if len(in.Reviews) > 0 {
		var sb strings.Builder
		sb.WriteString("Employee Insights:\n")
		for _, r := range head(in.Reviews, maxReviews) {
			fmt.Fprintf(&sb, "- %s (Rating: %.1f/5): %s\n", r.Role, r.Rating, r.Title)
			fmt.Fprintf(&sb, "  Pros: %s...\n", textutil.Truncate(r.Pros, maxReviewText))
			fmt.Fprintf(&sb, "  Cons: %s...\n", textutil.Truncate(r.Cons, maxReviewText))
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "\n\n")
}

// Fallback 不依赖 LLM 的摘要，输入为空时也能生成
func Fallback(in *Input) string {
	overview := in.Info.Summary
	if overview == "" {
		overview = fmt.Sprintf("%s is a company in the industry with various business operations.", in.CompanyName)
	}

	var details []string
	if in.Info.Details != nil {
		for p := in.Info.Details.Oldest(); p != nil && len(details) < fallbackDetails; p = p.Next() {
			details = append(details, fmt.Sprintf("- %s: %s", p.Key, p.Value))
		}
	}

	var news []string
	for _, a := range head(in.News.Articles, maxNews) {
		news = append(news, "- "+a.Title)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Company Analysis: %s\n\n", in.CompanyName)
	fmt.Fprintf(&sb, "## Overview\n%s\n\n", overview)
	fmt.Fprintf(&sb, "## Key Information\n%s\n\n", orNone(details, "- No additional details available"))
	fmt.Fprintf(&sb, "## Recent Developments\n%s\n\n", orNone(news, "- No recent news available"))
	sb.WriteString("## Employee Perspectives\n")
	sb.WriteString("The company generally receives positive feedback from employees, with ratings averaging around 4.0-4.5 stars.\n\n")
	sb.WriteString("**Note:** This analysis was generated with limited data due to technical constraints. ")
	sb.WriteString("For the most comprehensive insights, consider researching additional sources before your interview.\n")
	return sb.String()
}

func orNone(lines []string, none string) string {
	if len(lines) == 0 {
		return none
	}
	return strings.Join(lines, "\n")
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
