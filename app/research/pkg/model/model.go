package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes 保持插入顺序的键值表，JSON 序列化时顺序不变
type Attributes = orderedmap.OrderedMap[string, string]

// NewAttributes 创建空的有序键值表
func NewAttributes() *Attributes {
	return orderedmap.New[string, string]()
}

// ResearchRequest 调研请求
type ResearchRequest struct {
	CompanyName string  `json:"company_name"`
	JobRole     *string `json:"job_role"`
}

// Role 返回岗位名称，未指定时为空串
func (r *ResearchRequest) Role() string {
	if r.JobRole == nil {
		return ""
	}
	return *r.JobRole
}

// 公司信息状态
const (
	InfoSuccess = "success"
	InfoLimited = "limited"
	InfoError   = "error"
)

// CompanyInfo 公司百科信息
type CompanyInfo struct {
	Summary        string      `json:"summary"`
	Details        *Attributes `json:"details"`
	AdditionalInfo *Attributes `json:"additional_info"`
	Source         *string     `json:"source"`
	Status         string      `json:"status"`
}

// 新闻状态
const (
	NewsSuccess = "success"
	NewsWarning = "warning"
	NewsError   = "error"
)

// NewsBundle 新闻结果
type NewsBundle struct {
	Status   string    `json:"status"`
	Message  *string   `json:"message,omitempty"`
	Articles []Article `json:"articles"`
}

// Article 单条新闻
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Review 员工评价样本
type Review struct {
	Rating float64 `json:"rating"`
	Title  string  `json:"title"`
	Pros   string  `json:"pros"`
	Cons   string  `json:"cons"`
	Role   string  `json:"role"`
	Date   string  `json:"date"`
}

// ResearchResult 调研结果，写入缓存后不再修改
type ResearchResult struct {
	CompanyName    string      `json:"company_name"`
	JobRole        *string     `json:"job_role"`
	CompanyInfo    CompanyInfo `json:"company_info"`
	News           NewsBundle  `json:"news"`
	Reviews        []Review    `json:"reviews"`
	AISummary      string      `json:"ai_summary"`
	AISummaryHTML  string      `json:"ai_summary_html"`
	ProcessingTime float64     `json:"processing_time"`
	Status         string      `json:"status"`
}

// StringPtr 返回字符串指针，空串返回 nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Clone 深拷贝，缓存条目与调用方互不共享指针和切片
func (r ResearchResult) Clone() ResearchResult {
	out := r
	out.JobRole = cloneString(r.JobRole)
	out.CompanyInfo.Details = cloneAttributes(r.CompanyInfo.Details)
	out.CompanyInfo.AdditionalInfo = cloneAttributes(r.CompanyInfo.AdditionalInfo)
	out.CompanyInfo.Source = cloneString(r.CompanyInfo.Source)
	out.News.Message = cloneString(r.News.Message)
	if r.News.Articles != nil {
		out.News.Articles = append([]Article(nil), r.News.Articles...)
	}
	if r.Reviews != nil {
		out.Reviews = append([]Review(nil), r.Reviews...)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneAttributes(a *Attributes) *Attributes {
	if a == nil {
		return nil
	}
	c := NewAttributes()
	for p := a.Oldest(); p != nil; p = p.Next() {
		c.Set(p.Key, p.Value)
	}
	return c
}
