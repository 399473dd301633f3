package util

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

var hashtagRegex = regexp.MustCompile(`#(\S+)`)

const digits = "0123456789"

// ExtractHashtags 只负责提取去重后的标签列表
func ExtractHashtags(rawContent string) []string {
	matches := hashtagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		if len(m) > 1 {
			tagName := m[1]

			tagName = strings.Trim(tagName, ".,，。!?！？#")

			if tagName != "" {
				if _, exists := tagSet[tagName]; !exists {
					tagSet[tagName] = struct{}{}
					tags = append(tags, tagName)
				}
			}
		}
	}

	return tags
}

// GenerateCode 生成指定长度的数字验证码
func GenerateCode(length int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[r.Intn(len(digits))]
	}
	return string(code)
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}
