package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/httputil"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/model/response"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/handler"
	v1response "github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/model/response"
	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
	"github.com/danieltjaarda/stylo-sub000/internal/service/feed"
	"github.com/danieltjaarda/stylo-sub000/internal/service/subscription"
	"github.com/labstack/echo/v4"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogFetcher 고정된 상품 목록 또는 에러를 반환하는 테스트 대역입니다.
type fakeCatalogFetcher struct {
	products []*catalog.Product
	err      error
}

func (f *fakeCatalogFetcher) FetchAllProducts(_ context.Context) ([]*catalog.Product, error) {
	return f.products, f.err
}

// fakeMarketingAPI 데모 모드 테스트에서 원격 호출이 없음을 검증하기 위한 테스트 대역입니다.
type fakeMarketingAPI struct {
	upsertCalls    int
	subscribeCalls int
	trackCalls     int
}

func (m *fakeMarketingAPI) UpsertProfile(_ context.Context, _ string, _ map[string]any) (string, error) {
	m.upsertCalls++
	return "PROF-IT-001", nil
}

func (m *fakeMarketingAPI) SubscribeToList(_ context.Context, _, _, _ string, _ bool) bool {
	m.subscribeCalls++
	return true
}

func (m *fakeMarketingAPI) TrackEvent(_ context.Context, _, _ string, _ map[string]any) {
	m.trackCalls++
}

// fakeSender 테스트용 notification.Sender 구현체입니다.
type fakeSender struct {
	errorMessages []string
}

func (s *fakeSender) NotifyDefault(_ string) error { return nil }

func (s *fakeSender) NotifyDefaultWithError(message string) error {
	s.errorMessages = append(s.errorMessages, message)
	return nil
}

func (s *fakeSender) Health() error { return nil }

// createTestAppConfig 데모 모드(마케팅 API 키 미설정)로 동작하는 테스트 설정을 생성합니다.
func createTestAppConfig() *config.AppConfig {
	return &config.AppConfig{
		Shop: config.ShopConfig{
			PublicBaseURL: "https://www.stylostore.nl",
		},
		Feed: config.FeedConfig{
			Title:       "Stylo | Ergonomische werkplekken",
			Description: "Zit-sta bureaus en ergonomische bureaustoelen",
			Brand:       "Stylo",
			Currency:    "EUR",
			Shipping: config.ShippingConfig{
				Country: "NL",
				Service: "Standaard verzending",
				Price:   "0.00",
			},
		},
	}
}

func testCatalogProducts() []*catalog.Product {
	return []*catalog.Product{
		{
			ID:              "gid://shopify/Product/1001",
			Handle:          "bureau-one",
			Title:           "Bureau One",
			DescriptionHTML: "<p>Een stevig zit-sta bureau.</p>",
			ProductType:     "Zit-sta bureau",
			Variants: []catalog.Variant{
				{
					ID:               "gid://shopify/ProductVariant/2001",
					SKU:              "STY-BD-160-EI",
					Title:            "160x80 / Eiken",
					AvailableForSale: true,
					Price:            catalog.Price{Amount: "599.0", CurrencyCode: "EUR"},
				},
				{
					ID:               "gid://shopify/ProductVariant/2002",
					Title:            "120x60 / Zwart",
					AvailableForSale: false,
					Price:            catalog.Price{Amount: "499.0", CurrencyCode: "EUR"},
				},
			},
		},
	}
}

// setupIntegrationTest 실제 피드 생성기와 구독 게이트웨이를 연결한 echo 인스턴스를 구성합니다.
func setupIntegrationTest(t *testing.T, fetcher *fakeCatalogFetcher, now func() time.Time) (*echo.Echo, *fakeMarketingAPI, *fakeSender) {
	t.Helper()

	appConfig := createTestAppConfig()

	marketingAPI := &fakeMarketingAPI{}
	cache := subscription.NewCache(now)
	gateway := subscription.NewGateway(cache, marketingAPI, appConfig, now)

	sender := &fakeSender{}
	h := handler.NewHandler(feed.NewGenerator(fetcher, appConfig), gateway, sender)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	RegisterRoutes(e, h)

	return e, marketingAPI, sender
}

func createSubscriptionRequest(t *testing.T, body any) *http.Request {
	t.Helper()

	jsonBytes, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewReader(jsonBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// TestV1API_Feed 피드 엔드포인트를 HTTP 경계부터 XML 직렬화까지 통합 검증합니다.
func TestV1API_Feed(t *testing.T) {
	t.Run("성공: 파싱 가능한 피드와 캐싱 헤더 반환", func(t *testing.T) {
		e, _, sender := setupIntegrationTest(t, &fakeCatalogFetcher{products: testCatalogProducts()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/feed/google-merchant.xml", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

		parsed, err := gofeed.NewParser().ParseString(rec.Body.String())
		require.NoError(t, err, "생성된 피드는 RSS 파서로 파싱 가능해야 합니다")
		assert.Len(t, parsed.Items, 2, "아이템 수는 전체 변형 수와 같아야 합니다")

		assert.Empty(t, sender.errorMessages)
	})

	t.Run("실패: 카탈로그 조회 실패 시 JSON 에러와 관리자 알림", func(t *testing.T) {
		fetchErr := context.DeadlineExceeded
		e, _, sender := setupIntegrationTest(t, &fakeCatalogFetcher{err: fetchErr}, nil)

		req := httptest.NewRequest(http.MethodGet, "/feed/google-merchant.xml", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var errResp response.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, http.StatusInternalServerError, errResp.ResultCode)

		require.Len(t, sender.errorMessages, 1)
	})
}

// TestV1API_Subscription 구독 엔드포인트를 HTTP 경계부터 게이트웨이까지 통합 검증합니다.
func TestV1API_Subscription(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }

	t.Run("성공: 데모 모드 1차 제출과 멱등 2차 제출", func(t *testing.T) {
		e, marketingAPI, _ := setupIntegrationTest(t, &fakeCatalogFetcher{}, now)

		// 1차 제출: 데모 모드로 새 코드 발급
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, createSubscriptionRequest(t, map[string]string{"email": "jan@example.nl"}))
		require.Equal(t, http.StatusOK, rec.Code)

		var first v1response.SubscriptionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
		assert.True(t, first.Success)
		assert.True(t, first.DemoMode)
		assert.False(t, first.IsIdempotent)
		assert.Regexp(t, `^STYLO[0-9A-F]{6}$`, first.DiscountCode)
		assert.Equal(t, current.Add(subscription.CodeValidity), first.ExpiresAt)

		// 2차 제출: 같은 코드로 멱등 응답 (이메일 정규화 포함)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, createSubscriptionRequest(t, map[string]string{"email": "  Jan@Example.NL  "}))
		require.Equal(t, http.StatusOK, rec.Code)

		var second v1response.SubscriptionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
		assert.True(t, second.IsIdempotent)
		assert.Equal(t, first.DiscountCode, second.DiscountCode)

		// 데모 모드에서는 원격 마케팅 호출이 없어야 한다.
		assert.Zero(t, marketingAPI.upsertCalls)
		assert.Zero(t, marketingAPI.subscribeCalls)
		assert.Zero(t, marketingAPI.trackCalls)
	})

	t.Run("실패: 이메일 형식 오류는 400", func(t *testing.T) {
		e, _, sender := setupIntegrationTest(t, &fakeCatalogFetcher{}, now)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, createSubscriptionRequest(t, map[string]string{"email": "geen-email"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, sender.errorMessages)
	})

	t.Run("실패: 이메일 누락은 400", func(t *testing.T) {
		e, _, _ := setupIntegrationTest(t, &fakeCatalogFetcher{}, now)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, createSubscriptionRequest(t, map[string]string{}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("실패: 피드 경로에 POST는 405", func(t *testing.T) {
		e, _, _ := setupIntegrationTest(t, &fakeCatalogFetcher{}, now)

		req := httptest.NewRequest(http.MethodPost, "/feed/google-merchant.xml", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
