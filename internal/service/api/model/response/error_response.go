package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 500)
	ResultCode int `json:"result_code" example:"400"`

	// Message 에러 메시지
	Message string `json:"message" example:"올바른 이메일 주소를 입력해주세요"`
}
