package system

// DependencyStatus 외부 의존성 1건의 상태입니다.
type DependencyStatus struct {
	// Status 의존성 상태 (healthy, unhealthy)
	Status string `json:"status" example:"healthy"`

	// Message 상태 설명
	Message string `json:"message" example:"정상"`
}

// HealthResponse 헬스체크 응답
type HealthResponse struct {
	// Status 전체 서버 상태 (healthy, unhealthy)
	Status string `json:"status" example:"healthy"`

	// Uptime 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	// Dependencies 외부 의존성별 상태
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// VersionResponse 버전 정보 응답
type VersionResponse struct {
	Version     string `json:"version" example:"1.2.0"`
	BuildDate   string `json:"build_date" example:"2025-06-01T00:00:00Z"`
	BuildNumber string `json:"build_number" example:"42"`
	GoVersion   string `json:"go_version" example:"go1.24.0"`
}
