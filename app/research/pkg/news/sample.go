package news

import (
	"fmt"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/normalize"
)

const sampleCount = 3

type articleTemplate struct {
	title       string
	description string
	daysAgo     int
}

var sampleSources = []string{"Business Wire", "PR Newswire", "Market Watch", "Industry News"}

func articleTemplates(name string) []articleTemplate {
	return []articleTemplate{
		{
			title:       fmt.Sprintf("%s Reports Strong Quarterly Performance", name),
			description: fmt.Sprintf("%s exceeded market expectations with robust financial results, showing strong growth across key business segments.", name),
			daysAgo:     5,
		},
		{
			title:       fmt.Sprintf("%s Announces Strategic Partnership Initiative", name),
			description: fmt.Sprintf("%s has formed new strategic alliances to expand market reach and enhance service offerings.", name),
			daysAgo:     12,
		},
		{
			title:       fmt.Sprintf("%s Invests in Digital Transformation", name),
			description: fmt.Sprintf("%s is accelerating digital initiatives to improve customer experience and operational efficiency.", name),
			daysAgo:     18,
		},
		{
			title:       fmt.Sprintf("%s Commits to Sustainability Goals", name),
			description: fmt.Sprintf("%s announced comprehensive environmental initiatives targeting carbon neutrality and sustainable practices.", name),
			daysAgo:     25,
		},
		{
			title:       fmt.Sprintf("%s Expands Workforce with New Hiring Initiative", name),
			description: fmt.Sprintf("%s plans to hire hundreds of new employees across multiple departments to support growth.", name),
			daysAgo:     30,
		},
	}
}

// SampleArticles 生成示例新闻：从 5 个模板中不重复地选 3 个
func (r *Resolver) SampleArticles(name string) []model.Article {
	templates := articleTemplates(normalize.CompanyName(name))
	now := r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	perm := r.rng.Perm(len(templates))
	articles := make([]model.Article, 0, sampleCount)
	for _, idx := range perm[:sampleCount] {
		t := templates[idx]
		articles = append(articles, model.Article{
			Title:       t.title,
			Description: t.description,
			PublishedAt: now.Add(-time.Duration(t.daysAgo) * 24 * time.Hour).Format(time.DateOnly),
			URL:         "#",
			Source:      sampleSources[r.rng.IntN(len(sampleSources))],
		})
	}
	return articles
}
