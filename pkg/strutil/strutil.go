// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// htmlTagRegexp HTML 태그 제거에 사용하는 정규식입니다.
// < 다음에 영문자가 오는 경우만 태그로 인식하여 수학 기호(<) 오탐지를 방지합니다.
// 예: "3 < 5"는 유지되고, "<br>"이나 "<b>"는 제거됩니다.
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// StripHTMLTags 문자열에서 HTML 태그를 제거합니다.
func StripHTMLTags(s string) string {
	return htmlTagRegexp.ReplaceAllString(s, "")
}

// NormalizeSpaces 문자열의 앞뒤 공백을 제거하고 연속된 공백(개행 포함)을 하나로 축약합니다.
// 예: "  hello \n  world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

// Truncate 문자열을 최대 maxLen 바이트로 자릅니다.
//
// 단어 경계를 고려하지 않는 단순한 절단(Plain Cut)입니다. UTF-8 문자 중간에서
// 잘리지 않도록 유효한 룬 경계까지 뒤로 이동합니다.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}

	cut := s[:maxLen]

	// 멀티바이트 문자의 중간을 자른 경우 직전의 유효한 룬 경계로 되돌린다.
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}

	return cut
}

// ContainsFold 대소문자를 구분하지 않고 substr 포함 여부를 확인합니다.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
