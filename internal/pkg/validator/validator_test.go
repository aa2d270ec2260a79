package validator_test

import (
	"sync"
	"testing"

	"github.com/danieltjaarda/stylo-sub000/internal/pkg/validator"
	go_validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGet_Concurrency 동시 호출 시에도 동일한 싱글톤 인스턴스가 반환되는지 검증합니다.
func TestGet_Concurrency(t *testing.T) {
	var wg sync.WaitGroup
	const routines = 100
	validators := make([]*go_validator.Validate, routines)

	wg.Add(routines)
	for i := 0; i < routines; i++ {
		go func(index int) {
			defer wg.Done()
			validators[index] = validator.Get()
		}(i)
	}
	wg.Wait()

	first := validators[0]
	for i := 1; i < routines; i++ {
		assert.Same(t, first, validators[i], "모든 validator 인스턴스는 동일해야 합니다")
	}
}

// TestVar_Email 이메일 검증 규칙을 확인합니다.
func TestVar_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "성공: 일반 이메일", email: "a@b.com", wantErr: false},
		{name: "성공: 서브도메인", email: "user@mail.example.nl", wantErr: false},
		{name: "실패: @ 누락", email: "not-an-email", wantErr: true},
		{name: "실패: 빈 문자열", email: "", wantErr: true},
		{name: "실패: 도메인 누락", email: "user@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Var(tt.email, "required,email")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestFormatValidationError 검증 에러가 사용자 친화적 메시지로 변환되는지 확인합니다.
func TestFormatValidationError(t *testing.T) {
	type subscribeRequest struct {
		Email string `validate:"required,email"`
	}

	err := validator.Struct(subscribeRequest{Email: "invalid"})
	require.Error(t, err)

	msg := validator.FormatValidationError(err)
	assert.Contains(t, msg, "email")
	assert.NotContains(t, msg, "Field validation", "내부 에러 메시지가 노출되면 안 됩니다")

	assert.Equal(t, "", validator.FormatValidationError(nil))
}
