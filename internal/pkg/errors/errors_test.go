package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAndWrap 에러 생성과 래핑의 기본 동작을 검증합니다.
func TestNewAndWrap(t *testing.T) {
	t.Run("New는 타입과 메시지를 보존한다", func(t *testing.T) {
		err := New(NotFound, "구독 정보를 찾을 수 없습니다")

		var appErr *AppError
		require.True(t, As(err, &appErr))
		assert.Equal(t, NotFound, appErr.Type())
		assert.Equal(t, "구독 정보를 찾을 수 없습니다", appErr.Message())
		assert.Contains(t, err.Error(), "[NotFound]")
	})

	t.Run("Wrap은 원인 에러를 체인에 보존한다", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := Wrap(cause, System, "커머스 백엔드 호출 실패")

		assert.Equal(t, cause, RootCause(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Wrap에 nil을 전달하면 nil을 반환한다", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, System, "무시됨"))
		assert.Nil(t, Wrapf(nil, System, "무시됨 %d", 1))
	})
}

// TestIs 타입 기반 에러 검사를 검증합니다.
func TestIs(t *testing.T) {
	err := Wrap(New(InvalidInput, "이메일 형식 오류"), ExecutionFailed, "구독 처리 실패")

	assert.True(t, Is(err, InvalidInput))
	assert.True(t, Is(err, ExecutionFailed))
	assert.False(t, Is(err, NotFound))
	assert.False(t, Is(nil, InvalidInput))
}

// TestUnderlyingType 체인의 가장 안쪽 AppError 타입을 반환하는지 검증합니다.
func TestUnderlyingType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{
			name:     "단일 AppError",
			err:      New(Timeout, "요청 시간 초과"),
			expected: Timeout,
		},
		{
			name:     "AppError 체인은 가장 안쪽 타입을 반환",
			err:      Wrap(New(ParsingFailed, "JSON 디코딩 실패"), ExecutionFailed, "피드 생성 실패"),
			expected: ParsingFailed,
		},
		{
			name:     "외부 에러를 감싼 경우 래핑 타입을 반환",
			err:      Wrap(stderrors.New("eof"), System, "네트워크 오류"),
			expected: System,
		},
		{
			name:     "nil은 Unknown",
			err:      nil,
			expected: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnderlyingType(tt.err))
		})
	}
}

// TestFormat %+v 포맷 출력에 스택과 원인이 포함되는지 검증합니다.
func TestFormat(t *testing.T) {
	cause := stderrors.New("tcp reset")
	err := Wrap(cause, System, "외부 호출 실패")

	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "[System] 외부 호출 실패")
	assert.Contains(t, formatted, "Stack trace:")
	assert.Contains(t, formatted, "Caused by:")
	assert.Contains(t, formatted, "tcp reset")
}
