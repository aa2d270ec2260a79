package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMarketing 게이트웨이 테스트용 MarketingAPI 구현체입니다.
// 호출 기록을 남기고 미리 설정된 결과를 반환합니다.
type fakeMarketing struct {
	upsertProfileID string
	upsertErr       error
	subscribeResult bool

	upsertCalls    int
	subscribeCalls []subscribeCall
	trackedEvents  []trackedEvent
}

type subscribeCall struct {
	listID      string
	profileID   string
	doubleOptIn bool
}

type trackedEvent struct {
	metricName string
	email      string
	properties map[string]any
}

func (m *fakeMarketing) UpsertProfile(_ context.Context, _ string, _ map[string]any) (string, error) {
	m.upsertCalls++
	return m.upsertProfileID, m.upsertErr
}

func (m *fakeMarketing) SubscribeToList(_ context.Context, listID, _, profileID string, doubleOptIn bool) bool {
	m.subscribeCalls = append(m.subscribeCalls, subscribeCall{listID: listID, profileID: profileID, doubleOptIn: doubleOptIn})
	return m.subscribeResult
}

func (m *fakeMarketing) TrackEvent(_ context.Context, metricName, email string, properties map[string]any) {
	m.trackedEvents = append(m.trackedEvents, trackedEvent{metricName: metricName, email: email, properties: properties})
}

func marketingAppConfig(listID string, doubleOptIn bool) *config.AppConfig {
	return &config.AppConfig{
		Marketing: config.MarketingConfig{
			APIKey:      "pk_test",
			ListID:      listID,
			DoubleOptIn: doubleOptIn,
		},
	}
}

func demoAppConfig() *config.AppConfig {
	return &config.AppConfig{Marketing: config.MarketingConfig{}}
}

func TestGatewaySubscribe(t *testing.T) {
	t.Run("성공: 정상 흐름에서 코드 발급과 리스트 구독이 완료된다", func(t *testing.T) {
		clock := newFakeClock()
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(NewCache(clock.Now), marketing, marketingAppConfig("LIST-123", false), clock.Now)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.Regexp(t, "^STYLO[0-9A-F]{6}$", result.DiscountCode)
		assert.Equal(t, clock.Now().Add(CodeValidity), result.ExpiresAt)
		assert.Equal(t, StatusSubscribed, result.SubscriptionStatus)
		assert.Equal(t, "PROF-001", result.ProfileID)
		assert.True(t, result.ListSubscriptionSuccess)
		assert.False(t, result.IsIdempotent)
		assert.False(t, result.DemoMode)

		require.Len(t, marketing.subscribeCalls, 1)
		assert.Equal(t, "LIST-123", marketing.subscribeCalls[0].listID)
		assert.Equal(t, "PROF-001", marketing.subscribeCalls[0].profileID)

		require.Len(t, marketing.trackedEvents, 1)
		assert.Equal(t, signupMetricName, marketing.trackedEvents[0].metricName)
		assert.Equal(t, result.DiscountCode, marketing.trackedEvents[0].properties["discount_code"])
	})

	t.Run("성공: 이중 수신 동의 활성화 시 pending 상태를 반환한다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", true), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.Equal(t, StatusPending, result.SubscriptionStatus)
		assert.True(t, result.DoubleOptInEnabled)
		require.Len(t, marketing.subscribeCalls, 1)
		assert.True(t, marketing.subscribeCalls[0].doubleOptIn)
	})

	t.Run("성공: 요청의 리스트 ID가 설정값보다 우선한다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		_, err := gateway.Subscribe(context.Background(), &Request{
			Email:            "jan@example.nl",
			NewsletterListID: "LIST-OVERRIDE",
		})
		require.NoError(t, err)

		require.Len(t, marketing.subscribeCalls, 1)
		assert.Equal(t, "LIST-OVERRIDE", marketing.subscribeCalls[0].listID)
	})

	t.Run("성공: 리스트 ID가 없으면 리스트 구독을 시도하지 않는다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001"}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("", false), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.Empty(t, marketing.subscribeCalls)
		assert.False(t, result.ListSubscriptionSuccess)
		assert.Equal(t, StatusSubscribed, result.SubscriptionStatus)
	})

	t.Run("성공: 모든 프로필 폴백 실패에도 할인 코드는 발급된다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: ""}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.Regexp(t, "^STYLO[0-9A-F]{6}$", result.DiscountCode)
		assert.Equal(t, StatusProfileCreationFailed, result.SubscriptionStatus)
		assert.Empty(t, result.ProfileID)
	})

	t.Run("성공: 리스트 구독 실패는 상태 필드로만 표현된다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: false}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.False(t, result.ListSubscriptionSuccess)
		assert.Equal(t, StatusSubscribed, result.SubscriptionStatus)
	})

	t.Run("실패: 이메일 형식이 올바르지 않으면 거부된다", func(t *testing.T) {
		marketing := &fakeMarketing{}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		for _, email := range []string{"", "geen-email", "jan@", "@example.nl", "jan @example.nl"} {
			result, err := gateway.Subscribe(context.Background(), &Request{Email: email})
			assert.ErrorIs(t, err, ErrInvalidEmail, "이메일: %q", email)
			assert.Nil(t, result)
		}

		assert.Zero(t, marketing.upsertCalls)
	})

	t.Run("실패: 치명적 오류 발생 시 멱등성 레코드가 제거된다", func(t *testing.T) {
		cache := NewCache(nil)
		fatalErr := apperrors.New(apperrors.ExecutionFailed, "마케팅 API 호출 중 치명적 오류가 발생했습니다")
		marketing := &fakeMarketing{upsertErr: fatalErr}
		gateway := NewGateway(cache, marketing, marketingAppConfig("LIST-123", false), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, fatalErr))
		assert.Nil(t, result)

		// 레코드가 삭제되어 즉시 재시도가 가능하다.
		assert.Equal(t, 0, cache.Len())

		marketing.upsertErr = nil
		marketing.upsertProfileID = "PROF-001"

		retry, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)
		assert.False(t, retry.IsIdempotent)
	})
}

func TestGatewayIdempotency(t *testing.T) {
	t.Run("성공: 같은 이메일 재요청 시 동일한 코드를 반환한다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		first, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		second, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.True(t, second.IsIdempotent)
		assert.Equal(t, first.DiscountCode, second.DiscountCode)
		assert.Equal(t, first.ExpiresAt, second.ExpiresAt)

		// 원격 호출은 최초 1회만 수행된다.
		assert.Equal(t, 1, marketing.upsertCalls)
		assert.Len(t, marketing.subscribeCalls, 1)
	})

	t.Run("성공: 이메일은 정규화 후 비교된다", func(t *testing.T) {
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(NewCache(nil), marketing, marketingAppConfig("LIST-123", false), nil)

		first, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		second, err := gateway.Subscribe(context.Background(), &Request{Email: "  Jan@Example.NL  "})
		require.NoError(t, err)

		assert.True(t, second.IsIdempotent)
		assert.Equal(t, first.DiscountCode, second.DiscountCode)
	})

	t.Run("성공: 스윕으로 레코드가 만료되면 새 코드가 발급된다", func(t *testing.T) {
		clock := newFakeClock()
		cache := NewCache(clock.Now)
		marketing := &fakeMarketing{upsertProfileID: "PROF-001", subscribeResult: true}
		gateway := NewGateway(cache, marketing, marketingAppConfig("LIST-123", false), clock.Now)

		first, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		clock.Advance(25 * time.Hour)
		require.Equal(t, 1, cache.Sweep())

		second, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.False(t, second.IsIdempotent)
		assert.NotEqual(t, first.DiscountCode, second.DiscountCode)
	})
}

func TestGatewayDemoMode(t *testing.T) {
	t.Run("성공: 데모 모드에서는 원격 호출 없이 코드를 발급한다", func(t *testing.T) {
		marketing := &fakeMarketing{}
		gateway := NewGateway(NewCache(nil), marketing, demoAppConfig(), nil)

		result, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)

		assert.True(t, result.DemoMode)
		assert.Equal(t, StatusDemo, result.SubscriptionStatus)
		assert.Regexp(t, "^STYLO[0-9A-F]{6}$", result.DiscountCode)

		assert.Zero(t, marketing.upsertCalls)
		assert.Empty(t, marketing.subscribeCalls)
		assert.Empty(t, marketing.trackedEvents)
	})

	t.Run("성공: 데모 모드에서도 멱등성이 유지된다", func(t *testing.T) {
		gateway := NewGateway(NewCache(nil), &fakeMarketing{}, demoAppConfig(), nil)

		first, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)
		assert.True(t, first.DemoMode)
		assert.False(t, first.IsIdempotent)

		second, err := gateway.Subscribe(context.Background(), &Request{Email: "jan@example.nl"})
		require.NoError(t, err)
		assert.True(t, second.IsIdempotent)
		assert.Equal(t, first.DiscountCode, second.DiscountCode)
		assert.Equal(t, StatusDemo, second.SubscriptionStatus)
	})
}
