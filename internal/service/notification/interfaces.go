package notification

// Sender 운영 알림 발송 기능을 제공하는 인터페이스입니다.
// API 서버와 구독 게이트웨이는 이 인터페이스를 통해 관리자에게 장애 상황을 알립니다.
type Sender interface {
	// NotifyDefault 기본 알림 채널로 메시지를 발송합니다.
	//
	// 반환값:
	//   - error: 발송 요청이 정상적으로 큐에 등록(실제 전송 결과와는 무관)되면 nil, 실패 시 에러 반환
	NotifyDefault(message string) error

	// NotifyDefaultWithError 기본 알림 채널로 "오류" 성격의 메시지를 발송합니다.
	// 시스템 내부 에러, 피드 생성 실패 등 관리자의 주의가 필요한 긴급 상황 알림에 적합합니다.
	//
	// 반환값:
	//   - error: 발송 요청이 정상적으로 큐에 등록(실제 전송 결과와는 무관)되면 nil, 실패 시 에러 반환
	NotifyDefaultWithError(message string) error

	// Health 알림 서비스의 동작 상태를 확인합니다. 정상이면 nil을 반환합니다.
	Health() error
}
