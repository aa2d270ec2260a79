// Package constants API 서비스 전반에서 사용되는 상수를 정의합니다.
package constants

import "time"

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentService 서비스 컴포넌트 이름
	ComponentService = "api.service"

	// ComponentHandler 핸들러 컴포넌트 이름
	ComponentHandler = "api.handler"

	// ComponentMiddleware 미들웨어 컴포넌트 이름
	ComponentMiddleware = "api.middleware"

	// ComponentErrorHandler 에러 핸들러 컴포넌트 이름
	ComponentErrorHandler = "api.error_handler"
)

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간
	// 피드 생성은 카탈로그 전체 페이지 조회를 포함하므로 넉넉하게 설정합니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 제한
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더 읽기 제한
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한
	DefaultWriteTimeout = 90 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 120 * time.Second

	// DefaultMaxBodySize 요청 본문 크기 제한
	DefaultMaxBodySize = "64K"

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 40
)

// 피드 응답 관련 상수입니다.
const (
	// FeedCacheControl 피드 응답의 Cache-Control 헤더 값 (1시간)
	FeedCacheControl = "public, max-age=3600"

	// FeedContentType 피드 응답의 Content-Type 헤더 값
	FeedContentType = "application/xml; charset=utf-8"
)

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 400 Bad Request
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgBadRequestEmail       = "올바른 이메일 주소를 입력해주세요"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgFeedGeneration     = "피드 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	ErrMsgSubscriptionFailed = "구독 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
)

// 헬스체크 상태값 상수입니다.
const (
	// HealthStatusHealthy 정상 상태
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 비정상 상태
	HealthStatusUnhealthy = "unhealthy"

	// DependencyNotificationService 알림 서비스 의존성 이름
	DependencyNotificationService = "notification_service"
)

// Panic 메시지 상수입니다.
const (
	// PanicMsgAppConfigRequired AppConfig 미주입
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"

	// PanicMsgFeedGeneratorRequired FeedGenerator 미주입
	PanicMsgFeedGeneratorRequired = "FeedGenerator는 필수입니다"

	// PanicMsgSubscriptionGatewayRequired SubscriptionGateway 미주입
	PanicMsgSubscriptionGatewayRequired = "SubscriptionGateway는 필수입니다"

	// PanicMsgNotificationSenderRequired NotificationSender 미주입
	PanicMsgNotificationSenderRequired = "NotificationSender는 필수입니다"
)
