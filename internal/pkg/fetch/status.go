package fetch

import (
	"fmt"
	"net/http"
)

// HTTPStatusError 2xx가 아닌 HTTP 응답을 나타내는 에러입니다.
//
// 마케팅 API 어댑터의 폴백 체인은 이 에러를 '복구 가능한 실패'로 취급하여
// 다음 전략으로 넘어가고, 네트워크 수준의 에러만 요청 전체를 중단시킵니다.
type HTTPStatusError struct {
	StatusCode int    // HTTP 상태 코드
	URL        string // 요청 URL
	Body       string // 응답 본문 일부 (진단용, 최대 512바이트)
}

func (e *HTTPStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.URL)
}

// IsRetryable 재시도할 가치가 있는 상태 코드인지 반환합니다.
// 429(Too Many Requests)와 5xx 계열만 일시적 장애로 간주합니다.
func (e *HTTPStatusError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
