package textutil

// Truncate 按字符（rune）截断到 n 个字符以内
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Len 返回字符数
func Len(s string) int {
	return len([]rune(s))
}
