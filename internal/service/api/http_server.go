package api

import (
	"net/http"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/httputil"
	appmiddleware "github.com/danieltjaarda/stylo-sub000/internal/service/api/middleware"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	// 개발 환경: ["*"] 또는 ["http://localhost:3000"]
	// 프로덕션 환경: 특정 도메인만 명시 (예: ["https://www.stylo.nl"])
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 60초)
	// 타임아웃 초과 시 컨텍스트를 취소하고 503 응답을 반환하여 리소스 고갈을 방지합니다.
	RequestTimeout time.Duration
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다 (순서가 중요합니다):
//
//  1. PanicRecovery - 패닉 복구 및 로깅
//  2. RequestID - 각 요청에 고유 ID 부여 (X-Request-ID 헤더)
//  3. ServerHeader - Server 헤더 제거로 기술 스택 노출 방지
//  4. HTTPLogger - 요청/응답 구조화 로깅 (민감 정보 마스킹 포함)
//  5. RateLimiting - IP별 초당 요청 수 제한 (초과 시 429)
//  6. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. CORS - 허용된 Origin에서의 크로스 도메인 요청 처리
//  9. Secure - 보안 헤더 자동 추가 (X-Content-Type-Options 등)
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true

	// 보안 및 리소스 관리를 위한 HTTP 서버 타임아웃 설정
	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	// 전역 HTTP 에러 핸들러 설정
	e.HTTPErrorHandler = httputil.ErrorHandler

	// 타임아웃 미설정 시 기본값(60초)을 적용하여 무한 대기를 방지합니다.
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	// 미들웨어 적용 (권장 순서)

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(middleware.RequestID())
	// 3. Server 헤더 제거 (보안 강화)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	// 4. HTTP 로깅 (RateLimit/Timeout 이전에 위치하여 429/503 에러도 기록)
	e.Use(appmiddleware.HTTPLogger())
	// 5. Rate Limiting
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	// 6. Body Limit
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	// 7. Timeout
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	// 8. CORS 설정
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	// 9. 보안 헤더
	e.Use(middleware.Secure())

	return e
}
