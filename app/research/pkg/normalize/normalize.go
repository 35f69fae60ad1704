package normalize

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// suffixes 公司后缀，较长的后缀排在其前缀之前（Corporation 在 Corp 之前）
var suffixes = []string{" Inc", " LLC", " Ltd", " Corporation", " Corp", " Company", " Co"}

var memo = mustCache(100)

func mustCache(size int) *lru.Cache[string, string] {
	c, err := lru.New[string, string](size)
	if err != nil {
		panic(err)
	}
	return c
}

// CompanyName 去掉末尾的一个公司后缀，便于搜索命中
func CompanyName(name string) string {
	if v, ok := memo.Get(name); ok {
		return v
	}
	v := stripSuffix(name)
	memo.Add(name, v)
	return v
}

func stripSuffix(name string) string {
	name = strings.TrimSpace(name)
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	return strings.TrimSpace(name)
}
