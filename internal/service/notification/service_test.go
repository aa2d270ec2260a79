package notification

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Sender Compliance Check
var _ Sender = (*Service)(nil)

// TestMain 테스트 종료 시 고루틴 누수 여부를 검사합니다.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBotAPI 발송된 메시지를 기록하는 테스트 대역입니다.
type fakeBotAPI struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBotAPI) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func newTestConfig(telegramEnabled bool) *config.AppConfig {
	return &config.AppConfig{
		Notifier: config.NotifierConfig{
			Telegram: config.TelegramConfig{
				Enabled:  telegramEnabled,
				BotToken: "123456789:ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
				ChatID:   100,
			},
		},
	}
}

// startTestService 테스트용 서비스를 시작하고 종료 함수를 반환합니다.
func startTestService(t *testing.T, s *Service) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	return func() {
		cancel()
		wg.Wait()
	}
}

// waitForSent 발송된 메시지 개수가 기대값에 도달할 때까지 대기합니다.
func waitForSent(t *testing.T, bot *fakeBotAPI, count int) []string {
	t.Helper()

	require.Eventually(t, func() bool {
		return len(bot.sent()) >= count
	}, 2*time.Second, 10*time.Millisecond)

	return bot.sent()
}

func TestService_NotifyDefault(t *testing.T) {
	t.Run("성공: 일반 알림 발송", func(t *testing.T) {
		bot := &fakeBotAPI{}
		s := NewService(newTestConfig(true))
		s.bot = bot
		stop := startTestService(t, s)
		defer stop()

		require.NoError(t, s.NotifyDefault("피드 생성 완료"))

		sent := waitForSent(t, bot, 1)
		assert.Equal(t, "피드 생성 완료", sent[0])
	})

	t.Run("성공: 오류 알림에 오류 표식 추가", func(t *testing.T) {
		bot := &fakeBotAPI{}
		s := NewService(newTestConfig(true))
		s.bot = bot
		stop := startTestService(t, s)
		defer stop()

		require.NoError(t, s.NotifyDefaultWithError("카탈로그 조회 실패"))

		sent := waitForSent(t, bot, 1)
		assert.Equal(t, "〔오류〕카탈로그 조회 실패", sent[0])
	})

	t.Run("성공: 텔레그램 비활성화 시에도 에러 없이 처리", func(t *testing.T) {
		s := NewService(newTestConfig(false))
		stop := startTestService(t, s)
		defer stop()

		assert.NoError(t, s.NotifyDefault("로그로만 기록되는 알림"))
	})

	t.Run("실패: 서비스 미시작 상태에서 발송 요청", func(t *testing.T) {
		s := NewService(newTestConfig(true))

		err := s.NotifyDefault("전송 불가")

		assert.ErrorIs(t, err, ErrServiceStopped)
	})

	t.Run("성공: 종료 시 큐에 남은 알림 Drain", func(t *testing.T) {
		bot := &fakeBotAPI{}
		s := NewService(newTestConfig(true))
		s.bot = bot
		stop := startTestService(t, s)

		require.NoError(t, s.NotifyDefault("첫 번째"))
		require.NoError(t, s.NotifyDefault("두 번째"))

		stop()

		assert.Len(t, bot.sent(), 2)
	})
}

func TestSplitMessage(t *testing.T) {
	t.Run("짧은 메시지는 분할하지 않음", func(t *testing.T) {
		chunks := splitMessage("short", 100)

		assert.Equal(t, []string{"short"}, chunks)
	})

	t.Run("긴 메시지는 최대 길이 이하로 분할", func(t *testing.T) {
		message := strings.Repeat("a", 250)

		chunks := splitMessage(message, 100)

		require.Len(t, chunks, 3)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 100)
		}
		assert.Equal(t, message, strings.Join(chunks, ""))
	})

	t.Run("멀티바이트 문자 경계를 존중", func(t *testing.T) {
		message := strings.Repeat("한", 100) // 3바이트 문자 * 100

		chunks := splitMessage(message, 100)

		for _, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk))
		}
		assert.Equal(t, message, strings.Join(chunks, ""))
	})
}
