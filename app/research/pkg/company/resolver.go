package company

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/company_radar/app/research/pkg/fetch"
	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/normalize"
	"github.com/iWorld-y/company_radar/app/research/pkg/textutil"
)

const (
	minSummaryLen   = 100
	maxDetailLen    = 200
	maxSectionLen   = 500
	disambiguation  = "may refer to:"
	summarySelector = ".mw-parser-output p:not(.mw-empty-elt)"
)

// Resolver 从百科页面解析公司信息
type Resolver struct {
	fetcher fetch.PageFetcher
	baseURL string
	timeout time.Duration
}

// NewResolver 创建公司信息解析器，baseURL 形如 https://en.wikipedia.org/wiki/
func NewResolver(fetcher fetch.PageFetcher, baseURL string, timeout time.Duration) *Resolver {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Resolver{fetcher: fetcher, baseURL: baseURL, timeout: timeout}
}

// Candidates 按顺序生成候选页面地址，去重
func Candidates(baseURL, name string) []string {
	normalized := normalize.CompanyName(name)
	variants := []string{
		name,
		normalized,
		strings.ReplaceAll(name, " ", "_"),
		strings.ReplaceAll(normalized, " ", "_"),
	}

	seen := make(map[string]bool, len(variants))
	urls := make([]string, 0, len(variants))
	for _, v := range variants {
		u := baseURL + url.QueryEscape(v)
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// Resolve 依次尝试候选页面，第一个合格页面即返回；全部失败时返回占位信息
func (r *Resolver) Resolve(ctx context.Context, name string) model.Outcome[model.CompanyInfo] {
	for _, candidate := range Candidates(r.baseURL, name) {
		if err := ctx.Err(); err != nil {
			return model.Failed[model.CompanyInfo](err.Error())
		}

		res := r.fetcher.Fetch(ctx, candidate, fetch.WithTimeout(r.timeout))
		if !res.OK() {
			logger.Log.Debugf("百科页面抓取失败 [%s]: %s", candidate, res.Error)
			continue
		}

		info, reason, err := parsePage(candidate, res.Content)
		if err != nil {
			logger.Log.Warnf("百科页面解析失败 [%s]: %v", candidate, err)
			continue
		}
		if reason != "" {
			logger.Log.Debugf("跳过百科页面 [%s]: %s", candidate, reason)
			continue
		}

		logger.Log.Infof("公司信息解析成功 [%s]: %s", name, candidate)
		return model.OK(*info)
	}

	return model.Degraded("no encyclopedia page qualified", Fallback(name))
}

// Fallback 所有候选页面都不可用时的占位信息
func Fallback(name string) model.CompanyInfo {
	details := model.NewAttributes()
	details.Set("Name", name)
	details.Set("Type", "Company")
	return model.CompanyInfo{
		Summary:        fmt.Sprintf("Information about %s is being researched. This company appears to be a legitimate business entity.", name),
		Details:        details,
		AdditionalInfo: model.NewAttributes(),
		Status:         model.InfoLimited,
	}
}

// ErrorInfo 解析过程异常中断时的兜底信息
func ErrorInfo(name string) model.CompanyInfo {
	return model.CompanyInfo{
		Summary:        fmt.Sprintf("Error retrieving information for %s", name),
		Details:        model.NewAttributes(),
		AdditionalInfo: model.NewAttributes(),
		Status:         model.InfoError,
	}
}

// parsePage 解析页面；reason 非空表示页面不合格
func parsePage(pageURL, content string) (*model.CompanyInfo, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, "", fmt.Errorf("parse html: %w", err)
	}

	if doc.Find(".disambiguation").Length() > 0 || strings.Contains(strings.ToLower(content), disambiguation) {
		return nil, "disambiguation page", nil
	}

	summary := firstParagraph(doc)
	if summary == "" {
		summary = readableExcerpt(pageURL, content)
	}
	if textutil.Len(summary) < minSummaryLen {
		return nil, "summary too short", nil
	}

	return &model.CompanyInfo{
		Summary:        summary,
		Details:        infobox(doc),
		AdditionalInfo: sections(doc),
		Source:         model.StringPtr(pageURL),
		Status:         model.InfoSuccess,
	}, "", nil
}

func firstParagraph(doc *goquery.Document) string {
	var summary string
	doc.Find(summarySelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		summary = strings.TrimSpace(s.Text())
		return summary == ""
	})
	return summary
}

// readableExcerpt 页面结构不符合预期时，用 readability 提取摘要
func readableExcerpt(pageURL, content string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader([]byte(content)), u)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.Excerpt)
}

func infobox(doc *goquery.Document) *model.Attributes {
	details := model.NewAttributes()
	doc.Find(".infobox").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		data := row.Find("td").First()
		if header.Length() == 0 || data.Length() == 0 {
			return
		}
		key := strings.TrimSpace(header.Text())
		value := strings.TrimSpace(data.Text())
		if key != "" && value != "" && textutil.Len(value) < maxDetailLen {
			details.Set(key, value)
		}
	})
	return details
}

func sections(doc *goquery.Document) *model.Attributes {
	info := model.NewAttributes()
	if p := sectionParagraph(doc, "History"); p != "" {
		info.Set("History", p)
	}
	business := sectionParagraph(doc, "Business")
	if business == "" {
		business = sectionParagraph(doc, "Operations")
	}
	if business != "" {
		info.Set("Business", business)
	}
	return info
}

// sectionParagraph 定位章节锚点，取标题之后的第一个段落
func sectionParagraph(doc *goquery.Document, id string) string {
	anchor := doc.Find("#" + id).First()
	if anchor.Length() == 0 {
		return ""
	}

	// 旧版页面: <h2><span id="History">；新版页面: <div class="mw-heading"><h2 id="History">
	heading := anchor
	if !heading.Is("h1, h2, h3, h4, h5, h6") {
		heading = heading.Parent()
	}
	if heading.Parent().HasClass("mw-heading") {
		heading = heading.Parent()
	}

	para := heading.NextAllFiltered("p").First()
	if para.Length() == 0 {
		return ""
	}
	return textutil.Truncate(strings.TrimSpace(para.Text()), maxSectionLen)
}
