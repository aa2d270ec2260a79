package notification

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// component 로깅용 컴포넌트 이름
	component = "notification"

	// notificationQueueSize 발송 대기 큐의 최대 크기입니다.
	// 큐가 가득 차면 새 알림 요청은 즉시 에러로 반환됩니다. (무한 대기 방지)
	notificationQueueSize = 100

	// messageMaxLength 텔레그램 Bot API가 허용하는 단일 메시지의 최대 길이(바이트)입니다.
	messageMaxLength = 4096

	// drainTimeout 서비스 종료 시 큐에 남은 알림을 처리하는 최대 대기 시간입니다.
	drainTimeout = 10 * time.Second
)

var (
	// ErrServiceStopped 서비스가 실행 중이 아닐 때 알림 발송을 요청하면 반환되는 에러입니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "알림 서비스가 실행 중이 아닙니다")

	// ErrQueueFull 발송 대기 큐가 가득 차서 새 알림을 수용할 수 없을 때 반환되는 에러입니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "알림 발송 대기 큐가 가득 찼습니다")
)

// notification 발송 대기 큐에 저장되는 알림 요청입니다.
type notification struct {
	message       string
	errorOccurred bool
}

// botAPI 텔레그램 Bot API 클라이언트의 최소 인터페이스입니다. (테스트 대역 주입용)
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Service 텔레그램을 통해 운영 알림을 발송하는 서비스입니다.
//
// 알림 요청은 내부 큐에 적재된 후 별도의 Sender 고루틴이 순차적으로 발송합니다.
// 발송 지연이 호출자(API 핸들러 등)를 블로킹하지 않도록 큐 등록과 실제 전송을 분리했습니다.
//
// 텔레그램 설정이 비활성화된 경우에도 서비스는 정상 동작하며,
// 알림은 전송 대신 로그로만 기록됩니다.
type Service struct {
	appConfig *config.AppConfig

	bot           botAPI
	notificationC chan *notification

	running   bool
	runningMu sync.Mutex
}

var _ Sender = (*Service)(nil)

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig) *Service {
	if appConfig == nil {
		panic("초기화 치명적 오류: AppConfig가 nil입니다")
	}

	return &Service{
		appConfig: appConfig,

		notificationC: make(chan *notification, notificationQueueSize),
	}
}

// Start 알림 서비스를 시작합니다.
//
// 텔레그램 설정이 활성화된 경우 Bot API 클라이언트를 초기화하고 Sender 고루틴을 구동합니다.
// 초기화 실패(잘못된 토큰 등)는 에러로 반환되어 서버 기동을 중단시킵니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("알림 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("알림 서비스가 이미 시작됨!!!")
		return nil
	}

	telegramConfig := s.appConfig.Notifier.Telegram
	if telegramConfig.Enabled && s.bot == nil {
		bot, err := tgbotapi.NewBotAPI(telegramConfig.BotToken)
		if err != nil {
			defer serviceStopWG.Done()
			return apperrors.Wrap(err, apperrors.System, "텔레그램 Bot API 클라이언트 초기화에 실패했습니다")
		}
		s.bot = bot

		applog.WithComponentAndFields(component, applog.Fields{
			"bot_username": bot.Self.UserName,
		}).Info("텔레그램 Bot API 인증 완료")
	}

	s.running = true

	go s.runSenderLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(component).Info("알림 서비스 시작됨")

	return nil
}

// NotifyDefault 기본 알림 채널로 메시지를 발송합니다.
func (s *Service) NotifyDefault(message string) error {
	return s.enqueue(&notification{message: message})
}

// NotifyDefaultWithError 기본 알림 채널로 "오류" 성격의 메시지를 발송합니다.
func (s *Service) NotifyDefaultWithError(message string) error {
	return s.enqueue(&notification{message: message, errorOccurred: true})
}

// Health 알림 서비스의 동작 상태를 확인합니다.
func (s *Service) Health() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return ErrServiceStopped
	}
	return nil
}

// enqueue 알림 요청을 발송 대기 큐에 등록합니다.
func (s *Service) enqueue(n *notification) error {
	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	if !running {
		return ErrServiceStopped
	}

	select {
	case s.notificationC <- n:
		return nil
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"queue_size": notificationQueueSize,
		}).Error("알림 발송 대기 큐가 가득 차서 메시지를 유실합니다")
		return ErrQueueFull
	}
}

// runSenderLoop 큐에 등록된 알림을 순차적으로 발송하는 Sender 고루틴입니다.
//
// 종료 신호 수신 시 drainTimeout 동안 큐에 남은 알림을 최대한 발송한 후 종료합니다.
func (s *Service) runSenderLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("알림 발송 고루틴에서 패닉 발생 (서비스 재시작 필요)")
		}

		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()

		applog.WithComponent(component).Info("알림 서비스 중지됨")
	}()

	for {
		select {
		case n := <-s.notificationC:
			s.send(n)
		case <-serviceStopCtx.Done():
			applog.WithComponent(component).Info("알림 서비스 중지중...")
			s.drainRemainingNotifications()
			return
		}
	}
}

// drainRemainingNotifications 종료 시점에 큐에 남아있는 알림을 발송합니다.
// drainTimeout을 초과하면 남은 알림은 유실될 수 있습니다.
func (s *Service) drainRemainingNotifications() {
	deadline := time.After(drainTimeout)

	for {
		select {
		case n := <-s.notificationC:
			s.send(n)
		case <-deadline:
			if remaining := len(s.notificationC); remaining > 0 {
				applog.WithComponentAndFields(component, applog.Fields{
					"remaining": remaining,
				}).Warn("종료 대기 시간 초과로 남은 알림을 유실합니다")
			}
			return
		default:
			return
		}
	}
}

// send 단일 알림을 텔레그램으로 발송합니다.
// 텔레그램이 비활성화된 경우 로그로만 기록합니다.
func (s *Service) send(n *notification) {
	message := n.message
	if n.errorOccurred {
		message = fmt.Sprintf("〔오류〕%s", message)
	}

	if !s.appConfig.Notifier.Telegram.Enabled || s.bot == nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error_occurred": n.errorOccurred,
		}).Info(fmt.Sprintf("알림(텔레그램 비활성화, 로그로 대체): %s", message))
		return
	}

	// 텔레그램 메시지 길이 제한에 맞춰 분할 발송한다.
	for _, chunk := range splitMessage(message, messageMaxLength) {
		msg := tgbotapi.NewMessage(s.appConfig.Notifier.Telegram.ChatID, chunk)
		if _, err := s.bot.Send(msg); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": s.appConfig.Notifier.Telegram.ChatID,
				"error":   err,
			}).Error("텔레그램 메시지 발송 실패")
			return
		}
	}
}

// splitMessage 메시지를 최대 길이 이하의 청크로 분할합니다.
// UTF-8 문자 경계를 존중하여 멀티바이트 문자(한글, 이모지 등)가 깨지지 않도록 합니다.
func splitMessage(message string, maxLength int) []string {
	if len(message) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(message) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLength
		}

		chunks = append(chunks, message[:cut])
		message = message[cut:]
	}

	if len(message) > 0 {
		chunks = append(chunks, message)
	}

	return chunks
}
