package subscription

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
)

const (
	// codePrefix 할인 코드의 고정 접두사입니다.
	codePrefix = "STYLO"

	// codeRandomBytes 코드 난수부의 바이트 수입니다. (16진수 6자리 = 3바이트)
	codeRandomBytes = 3

	// CodeValidity 할인 코드의 유효 기간입니다.
	CodeValidity = 30 * 24 * time.Hour
)

// GenerateCode 새 할인 코드를 생성합니다.
//
// 형식: 접두사 + 대문자 16진수 6자리 (예: "STYLOA1B2C3")
// 난수부는 암호학적 난수 생성기를 사용하므로 추측이 어렵습니다.
func GenerateCode() (string, error) {
	buf := make([]byte, codeRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "할인 코드 난수 생성에 실패했습니다")
	}

	return codePrefix + strings.ToUpper(hex.EncodeToString(buf)), nil
}
