package middleware

import (
	"sync"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/httputil"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter IP 주소별로 Rate Limiter를 관리하는 구조체입니다.
//
// Token Bucket 알고리즘 기반으로 IP별 독립적인 rate.Limiter 인스턴스를 관리하며,
// sync.RWMutex를 사용하여 동시성 안전하게 접근합니다.
//
// 메모리 관리: IP 주소는 한 번 추가되면 서버 재시작 전까지 메모리에 유지됩니다.
// 현재 트래픽 규모에서는 문제없으나, 대규모 환경에서는 LRU 캐시나
// 주기적인 정리 작업 도입을 고려해야 합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit // 초당 허용 요청 수
	burst    int        // 버스트 허용량
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter 특정 IP 주소에 대한 Rate Limiter를 반환합니다.
// IP에 대한 Limiter가 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	// 먼저 읽기 락으로 확인
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double-check: 다른 고루틴이 이미 생성했을 수 있음
	limiter, exists = i.limiters[ip]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimiting IP 기반 Rate Limiting 미들웨어를 반환합니다.
//
// IP 주소별로 독립적인 요청 제한을 적용하며, 제한 초과 시
// Retry-After 헤더와 함께 429 Too Many Requests 응답을 반환합니다.
//
// Panics:
//   - requestsPerSecond 또는 burst가 0 이하인 경우
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic("[RateLimiting] requestsPerSecond는 양수여야 합니다")
	}
	if burst <= 0 {
		panic("[RateLimiting] burst는 양수여야 합니다")
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ipLimiter := limiter.getLimiter(ip)

			if !ipLimiter.Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("Rate limit 초과")

				// 1초 후 재시도 권장
				c.Response().Header().Set("Retry-After", "1")

				return httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
