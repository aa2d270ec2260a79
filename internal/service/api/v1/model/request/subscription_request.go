package request

// SubscriptionRequest 뉴스레터 구독 요청
type SubscriptionRequest struct {
	// 구독자 이메일 주소
	Email string `json:"email" form:"email" validate:"required,email" example:"jan@example.nl"`
	// 기본 설정 대신 사용할 뉴스레터 리스트 ID (선택)
	NewsletterListID string `json:"newsletter_list_id,omitempty" form:"newsletter_list_id" example:"XyZ123"`
	// 프로필에 저장할 추가 속성 (선택)
	Properties map[string]any `json:"properties,omitempty"`
}
