package participle

import "regexp"

// specialChars 标点符号、符号及分隔符
var specialChars = regexp.MustCompile(`^[\p{P}\p{S}\p{Z}]+$`)

// IsSpecialChar 判断字符串是否全部由特殊符号组成
func IsSpecialChar(s string) bool {
	if s == "" {
		return false
	}
	return specialChars.MatchString(s)
}
