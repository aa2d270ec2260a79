package response

import "time"

// SubscriptionResponse 뉴스레터 구독 처리 결과 응답
//
// 부분 실패(프로필 생성 실패, 리스트 구독 실패)를 포함한 모든 성공 경로에서
// 반환되며, 항상 유효한 할인 코드를 포함합니다.
type SubscriptionResponse struct {
	// Success 요청 처리 성공 여부 (이 응답이 반환되면 항상 true)
	Success bool `json:"success" example:"true"`

	// DiscountCode 발급된 할인 코드
	DiscountCode string `json:"discount_code" example:"STYLOA1B2C3"`

	// ExpiresAt 할인 코드 만료 시각
	ExpiresAt time.Time `json:"expires_at" example:"2025-07-01T12:00:00Z"`

	// SubscriptionStatus 구독 상태 (subscribed, pending, profile_creation_failed, demo)
	SubscriptionStatus string `json:"subscription_status" example:"subscribed"`

	// DoubleOptInEnabled 이중 수신 동의 사용 여부
	DoubleOptInEnabled bool `json:"double_opt_in_enabled" example:"false"`

	// ListSubscriptionSuccess 리스트 구독 성공 여부
	ListSubscriptionSuccess bool `json:"list_subscription_success" example:"true"`

	// IsIdempotent 기존 구독 레코드로 응답했는지 여부
	IsIdempotent bool `json:"is_idempotent" example:"false"`

	// DemoMode 데모 모드 동작 여부 (마케팅 API 키 미설정)
	DemoMode bool `json:"demo_mode" example:"false"`

	// ProfileID 마케팅 플랫폼에 생성된 프로필 ID (생성 실패시 생략)
	ProfileID string `json:"profile_id,omitempty" example:"01GDDKASAP8TKDDA2GRZDSVP4H"`

	// Message 사용자에게 보여줄 안내 메시지
	Message string `json:"message" example:"Bedankt voor je aanmelding!"`
}
