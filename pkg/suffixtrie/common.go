package suffixtrie

import "unicode/utf8"

// SplitString 按Unicode字符分割字符串
func SplitString(s string) []string {
	result := make([]string, 0, utf8.RuneCountInString(s))
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		result = append(result, s[:size])
		s = s[size:]
	}
	return result
}

// firstChar 返回s的第一个Unicode字符及剩余部分, s为空时ok为false
func firstChar(s string) (char, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], s[size:], true
}
