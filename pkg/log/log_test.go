package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMaskSensitiveData 민감 정보 마스킹 규칙을 검증합니다.
func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "빈 문자열은 그대로 반환",
			input:    "",
			expected: "",
		},
		{
			name:     "3자 이하는 전체 마스킹",
			input:    "abc",
			expected: "***",
		},
		{
			name:     "12자 이하는 앞 4자만 노출",
			input:    "abcdefgh",
			expected: "abcd***",
		},
		{
			name:     "긴 토큰은 앞뒤 4자만 노출",
			input:    "pk_0123456789abcdef",
			expected: "pk_0***cdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskSensitiveData(tt.input))
		})
	}
}

// TestWithComponent component 필드가 로그 Entry에 포함되는지 검증합니다.
func TestWithComponent(t *testing.T) {
	entry := WithComponent("feed.service")
	assert.Equal(t, "feed.service", entry.Data["component"])

	entry = WithComponentAndFields("subscription.service", Fields{"email": "a@b.com"})
	assert.Equal(t, "subscription.service", entry.Data["component"])
	assert.Equal(t, "a@b.com", entry.Data["email"])
}

// TestOptionsValidate 로그 옵션 검증 로직을 확인합니다.
func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{
			name:    "성공: 최소 유효 옵션",
			opts:    Options{Name: "stylo-server"},
			wantErr: false,
		},
		{
			name:    "실패: Name 누락",
			opts:    Options{},
			wantErr: true,
		},
		{
			name:    "실패: 음수 MaxAge",
			opts:    Options{Name: "stylo-server", MaxAge: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
