package subscription

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "subscription"

// 구독 상태 표기값 (응답의 subscriptionStatus 필드)
const (
	// StatusSubscribed 리스트 구독 완료
	StatusSubscribed = "subscribed"

	// StatusPending 이중 수신 동의 확인 대기
	StatusPending = "pending"

	// StatusProfileCreationFailed 프로필 생성 실패 (코드는 정상 발급됨)
	StatusProfileCreationFailed = "profile_creation_failed"

	// StatusDemo 데모 모드 (외부 API 호출 없음)
	StatusDemo = "demo"
)

// signupMetricName 구독 완료 시 마케팅 플랫폼에 기록하는 이벤트 이름입니다.
const signupMetricName = "Newsletter Signup"

// emailRegexp 이메일 형식 검증용 정규식입니다. 기본적인 형태만 확인합니다.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidEmail 이메일 형식이 올바르지 않을 때 반환되는 에러입니다.
var ErrInvalidEmail = apperrors.New(apperrors.InvalidInput, "이메일 주소 형식이 올바르지 않습니다")

// MarketingAPI 구독 게이트웨이가 사용하는 마케팅 플랫폼 클라이언트 인터페이스입니다.
type MarketingAPI interface {
	// UpsertProfile 이메일로 프로필을 생성/갱신하고 프로필 ID를 반환합니다.
	// 모든 폴백이 실패하면 빈 ID와 nil 에러를 반환하며, 치명적 실패만 에러를 반환합니다.
	UpsertProfile(ctx context.Context, email string, properties map[string]any) (string, error)

	// SubscribeToList 프로필을 구독자 리스트에 등록합니다. 실패해도 에러를 반환하지 않습니다.
	SubscribeToList(ctx context.Context, listID, email, profileID string, doubleOptIn bool) bool

	// TrackEvent 이벤트를 기록합니다. (Fire-and-Forget)
	TrackEvent(ctx context.Context, metricName, email string, properties map[string]any)
}

// Request 구독 요청 1건의 입력입니다.
type Request struct {
	Email            string
	NewsletterListID string         // 지정 시 설정된 기본 리스트 대신 사용
	Properties       map[string]any // 프로필에 저장할 추가 속성
}

// Result 구독 처리 결과입니다.
//
// 유효성 검증 실패와 치명적 오류를 제외한 모든 경로에서 생성되며,
// 항상 유효한 할인 코드를 포함합니다. 부분 실패(프로필 생성 실패,
// 리스트 구독 실패)는 상태 필드로만 표현되고 요청 자체는 성공으로 처리됩니다.
type Result struct {
	DiscountCode            string
	ExpiresAt               time.Time
	SubscriptionStatus      string
	DoubleOptInEnabled      bool
	ListSubscriptionSuccess bool
	IsIdempotent            bool
	DemoMode                bool
	ProfileID               string
	Message                 string
}

// Gateway 구독 요청을 단계별로 처리하는 게이트웨이입니다.
//
// 처리 단계: 검증 → 멱등성 확인 → 코드 생성 → (데모 모드 | 프로필 업서트 →
// 리스트 구독 → 이벤트 기록) → 응답. 각 단계의 실패 정책은 "사용자는 항상
// 코드를 받는다"는 원칙을 따릅니다: 원격 호출의 부분 실패는 상태 필드로
// 강등되고, 치명적 오류만 요청 전체를 실패시킵니다.
type Gateway struct {
	cache     *Cache
	marketing MarketingAPI

	listID      string
	doubleOptIn bool
	demoMode    bool

	now func() time.Time
}

// NewGateway Gateway 인스턴스를 생성합니다. now가 nil이면 시스템 시계를 사용합니다.
func NewGateway(cache *Cache, marketingClient MarketingAPI, appConfig *config.AppConfig, now func() time.Time) *Gateway {
	if now == nil {
		now = time.Now
	}

	return &Gateway{
		cache:     cache,
		marketing: marketingClient,

		listID:      appConfig.Marketing.ListID,
		doubleOptIn: appConfig.Marketing.DoubleOptIn,
		demoMode:    appConfig.Marketing.DemoMode(),

		now: now,
	}
}

// Subscribe 구독 요청 1건을 처리합니다.
//
// 반환값:
//   - *Result: 처리 결과 (검증 실패와 치명적 오류 시 nil)
//   - error: ErrInvalidEmail 또는 치명적 오류
//
// 코드 생성 이후에 치명적 오류가 발생하면 방금 생성한 멱등성 레코드를 제거하여
// 해당 이메일의 재시도를 허용합니다.
func (g *Gateway) Subscribe(ctx context.Context, req *Request) (*Result, error) {
	// 1. 검증
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegexp.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	// 2. 멱등성 확인: 살아있는 레코드가 있으면 같은 코드로 즉시 응답한다.
	if record, ok := g.cache.Get(email); ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"email": applog.MaskSensitiveData(email),
		}).Debug("중복 구독 요청, 기존 할인 코드 반환")

		return &Result{
			DiscountCode:       record.DiscountCode,
			ExpiresAt:          record.ExpiresAt,
			SubscriptionStatus: g.idempotentStatus(),
			DoubleOptInEnabled: g.doubleOptIn,
			IsIdempotent:       true,
			DemoMode:           g.demoMode,
			Message:            "Je bent al aangemeld. Hier is je bestaande kortingscode.",
		}, nil
	}

	// 3. 할인 코드 생성 및 레코드 저장
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	now := g.now()
	g.cache.Set(email, &Record{
		Email:        email,
		DiscountCode: code,
		CreatedAt:    now,
		ExpiresAt:    now.Add(CodeValidity),
	})

	result := &Result{
		DiscountCode:       code,
		ExpiresAt:          now.Add(CodeValidity),
		DoubleOptInEnabled: g.doubleOptIn,
		Message:            "Bedankt voor je aanmelding! Gebruik deze kortingscode bij het afrekenen.",
	}

	// 4. 데모 모드: 원격 호출 없이 코드만 발급하는 정상 종료 경로
	if g.demoMode {
		result.SubscriptionStatus = StatusDemo
		result.DemoMode = true
		return result, nil
	}

	// 5. 프로필 업서트: 치명적 오류만 요청을 중단시킨다.
	profileID, err := g.marketing.UpsertProfile(ctx, email, req.Properties)
	if err != nil {
		g.cache.Delete(email)
		return nil, err
	}
	result.ProfileID = profileID

	// 6. 리스트 구독: 리스트 ID가 구성된 경우에만 시도하며, 실패해도 계속 진행한다.
	listID := req.NewsletterListID
	if listID == "" {
		listID = g.listID
	}
	if listID != "" {
		result.ListSubscriptionSuccess = g.marketing.SubscribeToList(ctx, listID, email, profileID, g.doubleOptIn)
	}

	// 7. 이벤트 기록: 실패가 호출자에게 전파되지 않는다.
	g.marketing.TrackEvent(ctx, signupMetricName, email, map[string]any{
		"discount_code":   code,
		"list_subscribed": result.ListSubscriptionSuccess,
	})

	// 8. 상태 확정
	result.SubscriptionStatus = g.finalStatus(profileID)

	return result, nil
}

// idempotentStatus 중복 요청 응답에 사용할 구독 상태를 반환합니다.
func (g *Gateway) idempotentStatus() string {
	if g.demoMode {
		return StatusDemo
	}
	if g.doubleOptIn {
		return StatusPending
	}
	return StatusSubscribed
}

// finalStatus 처리 결과에 따른 최종 구독 상태를 결정합니다.
func (g *Gateway) finalStatus(profileID string) string {
	if profileID == "" {
		return StatusProfileCreationFailed
	}
	if g.doubleOptIn {
		return StatusPending
	}
	return StatusSubscribed
}
