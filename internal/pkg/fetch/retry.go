package fetch

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

const (
	// maxAllowedRetries 허용 가능한 최대 재시도 횟수입니다.
	maxAllowedRetries = 10

	// defaultMaxRetryDelay 재시도 대기 시간의 상한 기본값입니다.
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher HTTP 요청 실패 시 자동으로 재시도를 수행하는 데코레이터입니다.
//
// 주요 특징:
//   - 지수 백오프(Exponential Backoff): 재시도 간격을 지수적으로 증가시켜 서버 부하를 분산
//   - Jitter: 무작위 지연을 추가하여 동시 다발적인 재시도 집중을 방지
//   - 컨텍스트 취소 감지: 요청 취소 시 즉시 재시도 중단
//
// GET과 같이 멱등한 요청에만 사용해야 합니다. 카탈로그 페이지 조회가 주 사용처이며,
// 재시도가 모두 소진된 뒤의 실패는 호출자에게 그대로 전파됩니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int           // 최대 재시도 횟수 (0 ~ maxAllowedRetries로 정규화)
	minRetryDelay time.Duration // 지수 백오프의 시작 간격
	maxRetryDelay time.Duration // 지수 백오프 증가 시 상한선
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher 인스턴스를 생성합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay time.Duration) *RetryFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxRetries > maxAllowedRetries {
		maxRetries = maxAllowedRetries
	}
	if minRetryDelay < time.Second {
		minRetryDelay = time.Second
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: defaultMaxRetryDelay,
	}
}

// Do HTTP 요청을 수행하며, 일시적 실패 시 설정된 정책에 따라 자동으로 재시도합니다.
func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.backoffDelay(attempt)

			applog.WithComponentAndFields(component, applog.Fields{
				"url":     req.URL.Redacted(),
				"attempt": attempt,
				"delay":   delay.String(),
			}).Warn("HTTP 요청 재시도 대기")

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// 재시도 불가능한 실패는 즉시 반환한다.
		if err != nil && !isRetryableError(err) {
			return resp, err
		}

		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		lastErr = err
		lastResp = nil

		if err == nil {
			lastErr = &HTTPStatusError{StatusCode: resp.StatusCode, URL: req.URL.Redacted()}
		}
	}

	return lastResp, lastErr
}

// backoffDelay n번째 재시도의 대기 시간을 계산합니다. (지수 백오프 + Jitter)
func (f *RetryFetcher) backoffDelay(attempt int) time.Duration {
	delay := f.minRetryDelay << (attempt - 1)
	if delay > f.maxRetryDelay || delay <= 0 {
		delay = f.maxRetryDelay
	}

	// 대기 시간의 최대 25%를 무작위로 가산하여 재시도 시점을 분산시킨다.
	jitter := time.Duration(rand.Int64N(int64(delay) / 4))
	return delay + jitter
}

// isRetryableError 네트워크 수준에서 재시도할 가치가 있는 에러인지 판단합니다.
func isRetryableError(err error) bool {
	// 호출자가 취소한 요청은 재시도하지 않는다.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// 커넥션 리셋 등 일시적인 전송 오류로 간주한다.
	return true
}
