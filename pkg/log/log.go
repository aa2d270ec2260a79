package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger 프로세스 전역의 logrus 표준 로거를 반환합니다.
// 외부 라이브러리(echo, cron 등)의 내부 로그를 애플리케이션 로거로 통합할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 런타임에 로그 레벨을 변경합니다.
// 환경설정 로드 이후 최종 로그 레벨을 확정할 때 사용합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// MaskSensitiveData 민감한 정보를 마스킹합니다.
// API 키, 토큰 등의 민감 정보를 안전하게 로깅하기 위해 사용합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 토큰은 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
// 모든 로그에 component 필드를 일관되게 추가하기 위해 사용합니다.
func WithComponent(component string) *Entry {
	return logrus.WithFields(Fields{
		"component": component,
	})
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}
