package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// defaultBytesIn Content-Length 헤더가 존재하지 않는 경우(예: Chunked Transfer Encoding 사용 시)
	// bytes_in 로그 필드에 기록될 기본값입니다.
	defaultBytesIn = "0"
)

// sensitiveQueryParams HTTP 요청 로깅 시 값을 마스킹 처리해야 하는 쿼리 파라미터 키 목록입니다.
var sensitiveQueryParams = []string{
	"api_key",
	"token",
	"email",
	"secret",
}

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 기록되는 정보:
//   - 요청: IP, 메서드, URI, User-Agent, Content-Length
//   - 응답: 상태 코드, 응답 크기, Request ID
//   - 성능: 처리 시간 (마이크로초 및 사람이 읽기 쉬운 형식)
//   - 보안: 민감한 쿼리 파라미터 자동 마스킹 (email, token 등)
func HTTPLogger() echo.MiddlewareFunc {
	return httpLogger
}

func httpLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return httpLoggerHandler(c, next)
	}
}

// httpLoggerHandler HTTP 요청/응답을 로깅하는 핵심 핸들러입니다.
func httpLoggerHandler(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	res := c.Response()
	start := time.Now()

	// defer를 사용하여 패닉 발생 시에도 로그가 기록되도록 보장
	defer func() {
		stop := time.Now()
		latency := stop.Sub(start)

		path := req.URL.Path
		if path == "" {
			path = "/"
		}

		bytesIn := req.Header.Get(echo.HeaderContentLength)
		if bytesIn == "" {
			bytesIn = defaultBytesIn
		}

		uri := maskSensitiveQueryParams(req.RequestURI)

		applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
			"time_rfc3339": stop.Format(time.RFC3339),

			"method":   req.Method,
			"path":     path,
			"uri":      uri,
			"host":     req.Host,
			"protocol": req.Proto,

			"remote_ip":  c.RealIP(),
			"user_agent": req.UserAgent(),
			"referer":    req.Referer(),

			"status":    res.Status,
			"bytes_in":  bytesIn,
			"bytes_out": strconv.FormatInt(res.Size, 10),

			"latency":       strconv.FormatInt(latency.Nanoseconds()/1000, 10),
			"latency_human": latency.String(),

			"request_id": res.Header().Get(echo.HeaderXRequestID),
		}).Info("HTTP 요청")
	}()

	if err := next(c); err != nil {
		c.Error(err)
	}

	return nil
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터를 마스킹합니다.
// URI 파싱 실패 시 원본을 반환하여 로깅이 중단되지 않도록 합니다.
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range sensitiveQueryParams {
		if q.Has(param) {
			val := q.Get(param)
			q.Set(param, applog.MaskSensitiveData(val))
			masked = true
		}
	}

	if masked {
		u.RawQuery = q.Encode()
		return u.String()
	}

	return uri
}
