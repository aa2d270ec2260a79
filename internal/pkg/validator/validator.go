// Package validator 프로세스 전역에서 공유되는 구조체 검증기를 제공합니다.
//
// go-playground/validator 인스턴스는 내부적으로 구조체 메타데이터를 캐싱하므로,
// 매 요청마다 새로 생성하지 않고 싱글톤으로 재사용합니다.
package validator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get 전역 validator 인스턴스를 반환합니다. 동시 호출에 안전합니다.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// Struct 구조체의 validate 태그를 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// Var 단일 값을 지정된 태그 규칙으로 검증합니다.
// 예: Var(email, "required,email")
func Var(field any, tag string) error {
	return Get().Var(field, tag)
}

// FormatValidationError 검증 에러를 사용자에게 보여줄 수 있는 메시지로 변환합니다.
//
// validator의 기본 에러 메시지는 내부 필드명과 태그를 그대로 노출하므로,
// API 응답에 담기 전에 이 함수를 거쳐 친화적인 형태로 정리합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "요청 형식이 올바르지 않습니다"
	}

	var messages []string
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())

		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s은(는) 필수입니다", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s 형식이 올바르지 않습니다", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s은(는) 최소 %s자 이상이어야 합니다", field, fieldErr.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s은(는) 최대 %s자 이하여야 합니다", field, fieldErr.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s 값이 올바르지 않습니다", field))
		}
	}

	return strings.Join(messages, ", ")
}
