package strutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStripHTMLTags HTML 태그 제거 규칙을 검증합니다.
func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "일반 태그 제거",
			input:    "<p>Ergonomisch <b>bureau</b></p>",
			expected: "Ergonomisch bureau",
		},
		{
			name:     "속성이 있는 태그 제거",
			input:    `<a href="https://example.com">link</a>`,
			expected: "link",
		},
		{
			name:     "수학 기호는 유지",
			input:    "hoogte 3 < 5 cm",
			expected: "hoogte 3 < 5 cm",
		},
		{
			name:     "태그 없는 문자열은 그대로",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTMLTags(tt.input))
		})
	}
}

// TestNormalizeSpaces 공백 정규화 규칙을 검증합니다.
func TestNormalizeSpaces(t *testing.T) {
	assert.Equal(t, "hello world", NormalizeSpaces("  hello \n\n  world  "))
	assert.Equal(t, "", NormalizeSpaces("   \n \t "))
}

// TestTruncate 절단 규칙을 검증합니다.
func TestTruncate(t *testing.T) {
	t.Run("짧은 문자열은 그대로 반환", func(t *testing.T) {
		assert.Equal(t, "abc", Truncate("abc", 10))
	})

	t.Run("긴 문자열은 단순 절단", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		got := Truncate(long, 150)
		assert.Len(t, got, 150)
	})

	t.Run("멀티바이트 문자의 중간에서 자르지 않음", func(t *testing.T) {
		// "개"는 3바이트이므로 4바이트 절단 시 한 글자만 남아야 한다.
		got := Truncate("개개개", 4)
		assert.Equal(t, "개", got)
	})

	t.Run("0 이하의 길이는 빈 문자열", func(t *testing.T) {
		assert.Equal(t, "", Truncate("abc", 0))
	})
}

// TestContainsFold 대소문자 무시 포함 검사를 검증합니다.
func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("HomeOffice Desk Pro", "desk"))
	assert.True(t, ContainsFold("bureaustoel", "STOEL"))
	assert.False(t, ContainsFold("monitor arm", "chair"))
}
