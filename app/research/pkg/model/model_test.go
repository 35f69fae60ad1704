package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResearchResult_Clone(t *testing.T) {
	details := NewAttributes()
	details.Set("Name", "Acme")
	details.Set("Industry", "Retail")
	msg := "ok"
	orig := ResearchResult{
		CompanyName: "Acme",
		JobRole:     StringPtr("Engineer"),
		CompanyInfo: CompanyInfo{Details: details, AdditionalInfo: NewAttributes(), Source: StringPtr("wiki")},
		News:        NewsBundle{Message: &msg, Articles: []Article{{Title: "a"}}},
		Reviews:     []Review{{Title: "r", Rating: 4.1}},
	}

	c := orig.Clone()
	assert.Equal(t, orig.Reviews, c.Reviews)
	assert.Equal(t, orig.News.Articles, c.News.Articles)
	assert.Equal(t, []string{"Name", "Industry"}, keys(c.CompanyInfo.Details))

	c.CompanyInfo.Details.Set("Name", "Changed")
	c.News.Articles[0].Title = "changed"
	c.Reviews[0].Rating = 1
	*c.JobRole = "Manager"
	*c.News.Message = "changed"

	name, _ := orig.CompanyInfo.Details.Get("Name")
	assert.Equal(t, "Acme", name)
	assert.Equal(t, "a", orig.News.Articles[0].Title)
	assert.Equal(t, 4.1, orig.Reviews[0].Rating)
	assert.Equal(t, "Engineer", *orig.JobRole)
	assert.Equal(t, "ok", msg)
}

func TestResearchResult_CloneNil(t *testing.T) {
	c := ResearchResult{CompanyName: "Acme"}.Clone()
	assert.Nil(t, c.JobRole)
	assert.Nil(t, c.CompanyInfo.Details)
	assert.Nil(t, c.Reviews)
}

func keys(a *Attributes) []string {
	var out []string
	for p := a.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}
