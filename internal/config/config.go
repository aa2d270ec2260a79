package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "stylo-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// ------------------------------------------------------------------------------------------------
	// HTTP 재시도 정책 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultMaxRetries HTTP 요청 실패 시 최대 재시도 횟수 기본값
	DefaultMaxRetries = 3

	// DefaultRetryDelay 재시도 사이의 대기 시간 기본값
	DefaultRetryDelay = "2s"

	// ------------------------------------------------------------------------------------------------
	// 피드 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultFeedBrand 피드 상품의 기본 브랜드명
	DefaultFeedBrand = "Stylo"

	// DefaultFeedCurrency 피드 가격 표기에 사용하는 통화 코드 (ISO 4217)
	DefaultFeedCurrency = "EUR"

	// DefaultShippingCountry 배송 정보의 기본 국가 코드
	DefaultShippingCountry = "NL"

	// DefaultShippingService 배송 정보의 기본 서비스명
	DefaultShippingService = "Standaard verzending"

	// DefaultShippingPrice 배송 정보의 기본 요금 (무료 배송)
	DefaultShippingPrice = "0.00"

	// ------------------------------------------------------------------------------------------------
	// 커머스 백엔드 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultStorefrontAPIVersion Storefront GraphQL API의 기본 버전
	DefaultStorefrontAPIVersion = "2024-01"

	// ------------------------------------------------------------------------------------------------
	// 마케팅 API 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultMarketingAPIBaseURL 마케팅 API의 기본 엔드포인트
	DefaultMarketingAPIBaseURL = "https://a.klaviyo.com"

	// DefaultMarketingRateLimit 마케팅 API 호출의 초당 최대 요청 수 기본값
	DefaultMarketingRateLimit = 5
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	HTTPRetry HTTPRetryConfig `json:"http_retry"`
	Shop      ShopConfig      `json:"shop"`
	Feed      FeedConfig      `json:"feed"`
	Marketing MarketingConfig `json:"marketing"`
	Notifier  NotifierConfig  `json:"notifier"`
	API       APIConfig       `json:"api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.HTTPRetry.validate(); err != nil {
		return err
	}
	if err := c.Shop.validate(); err != nil {
		return err
	}
	if err := c.Feed.validate(); err != nil {
		return err
	}
	if err := c.Marketing.validate(); err != nil {
		return err
	}
	if err := c.Notifier.validate(); err != nil {
		return err
	}
	if err := c.API.validate(); err != nil {
		return err
	}
	return nil
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소(예: Well-known Port 사용)에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	warnings = append(warnings, c.API.VerifyRecommendations()...)

	if c.Marketing.DemoMode() {
		warnings = append(warnings, "마케팅 API 키(marketing.api_key)가 설정되지 않아 구독 게이트웨이가 데모 모드로 동작합니다. 구독 요청이 외부 마케팅 플랫폼에 전달되지 않습니다")
	}

	return warnings
}

// HTTPRetryConfig HTTP 요청 실패 시 재시도 횟수와 대기 시간을 정의하는 설정 구조체
type HTTPRetryConfig struct {
	MaxRetries int    `json:"max_retries"`
	RetryDelay string `json:"retry_delay"`
}

func (c *HTTPRetryConfig) validate() error {
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay) 설정이 올바르지 않습니다: '%s' (예: 1s, 500ms)", c.RetryDelay))
	}
	return nil
}

// RetryDelayDuration 재시도 대기 시간을 time.Duration으로 반환합니다.
// 유효성 검증을 통과한 설정에서만 호출해야 합니다.
func (c *HTTPRetryConfig) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryDelay)
	return d
}

// ShopConfig 커머스 백엔드(Storefront GraphQL API) 접속 정보를 정의하는 설정 구조체
type ShopConfig struct {
	// StorefrontDomain 샵의 myshopify 도메인 (예: stylo-nl.myshopify.com)
	StorefrontDomain string `json:"storefront_domain" validate:"required,hostname_rfc1123"`
	// StorefrontToken Storefront API 접근 토큰
	StorefrontToken string `json:"storefront_token" validate:"required"`
	// APIVersion Storefront API 버전 (예: 2024-01)
	APIVersion string `json:"api_version" validate:"required"`
	// PublicBaseURL 피드의 상품 링크 생성에 사용되는 공개 스토어 주소 (예: https://www.stylostore.nl)
	PublicBaseURL string `json:"public_base_url" validate:"required,url"`
}

func (c *ShopConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			switch firstErr.Field() {
			case "storefront_domain":
				return apperrors.New(apperrors.InvalidInput, "샵 도메인(shop.storefront_domain)이 설정되지 않았거나 올바른 호스트명이 아닙니다")
			case "storefront_token":
				return apperrors.New(apperrors.InvalidInput, "Storefront API 토큰(shop.storefront_token)이 설정되지 않았습니다")
			case "api_version":
				return apperrors.New(apperrors.InvalidInput, "Storefront API 버전(shop.api_version)이 설정되지 않았습니다")
			case "public_base_url":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("공개 스토어 주소(shop.public_base_url)가 올바른 URL이 아닙니다: '%v'", firstErr.Value()))
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "샵 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return nil
}

// GraphQLEndpoint Storefront GraphQL API의 전체 엔드포인트 URL을 반환합니다.
func (c *ShopConfig) GraphQLEndpoint() string {
	return fmt.Sprintf("https://%s/api/%s/graphql.json", c.StorefrontDomain, c.APIVersion)
}

// FeedConfig Google Merchant 피드의 머천트 정보와 배송 정책을 정의하는 설정 구조체
type FeedConfig struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Brand       string         `json:"brand" validate:"required"`
	Currency    string         `json:"currency" validate:"required,iso4217"`
	Shipping    ShippingConfig `json:"shipping"`
}

func (c *FeedConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			switch firstErr.Field() {
			case "title":
				return apperrors.New(apperrors.InvalidInput, "피드 제목(feed.title)이 설정되지 않았습니다")
			case "brand":
				return apperrors.New(apperrors.InvalidInput, "피드 브랜드(feed.brand)가 설정되지 않았습니다")
			case "currency":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("피드 통화(feed.currency)가 올바른 ISO 4217 코드가 아닙니다: '%v'", firstErr.Value()))
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "피드 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return c.Shipping.validate()
}

// ShippingConfig 피드의 모든 상품에 일괄 적용되는 배송 정보 구조체
type ShippingConfig struct {
	Country string `json:"country" validate:"required,iso3166_1_alpha2"`
	Service string `json:"service" validate:"required"`
	Price   string `json:"price" validate:"required"`
}

func (c *ShippingConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			switch firstErr.Field() {
			case "country":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("배송 국가(feed.shipping.country)가 올바른 국가 코드가 아닙니다: '%v'", firstErr.Value()))
			case "service":
				return apperrors.New(apperrors.InvalidInput, "배송 서비스명(feed.shipping.service)이 설정되지 않았습니다")
			case "price":
				return apperrors.New(apperrors.InvalidInput, "배송 요금(feed.shipping.price)이 설정되지 않았습니다")
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "배송 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// MarketingConfig 마케팅 플랫폼 API 연동 정보를 정의하는 설정 구조체
//
// APIKey가 비어있으면 구독 게이트웨이는 데모 모드로 동작합니다.
// 데모 모드에서는 할인 코드는 정상적으로 발급되지만 외부 API 호출은 수행되지 않습니다.
type MarketingConfig struct {
	APIBaseURL string `json:"api_base_url" validate:"required,url"`
	APIKey     string `json:"api_key"`
	ListID     string `json:"list_id"`
	// DoubleOptIn 이중 수신 동의(Double Opt-In) 사용 여부.
	// 활성화 시 구독자는 확인 메일을 승인하기 전까지 'pending' 상태로 등록됩니다.
	DoubleOptIn bool `json:"double_opt_in"`
	// RateLimitPerSecond 마케팅 API 호출의 초당 최대 요청 수
	RateLimitPerSecond int `json:"rate_limit_per_second" validate:"min=1,max=100"`
}

func (c *MarketingConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			switch firstErr.Field() {
			case "api_base_url":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("마케팅 API 주소(marketing.api_base_url)가 올바른 URL이 아닙니다: '%v'", firstErr.Value()))
			case "rate_limit_per_second":
				return apperrors.New(apperrors.InvalidInput, "마케팅 API 호출 제한(marketing.rate_limit_per_second)은 1에서 100 사이의 값이어야 합니다")
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "마케팅 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	// API 키가 있으면 리스트 ID도 반드시 있어야 한다.
	if c.APIKey != "" && strings.TrimSpace(c.ListID) == "" {
		return apperrors.New(apperrors.InvalidInput, "마케팅 API 키가 설정된 경우 구독자 리스트 ID(marketing.list_id)는 필수입니다")
	}

	return nil
}

// DemoMode 마케팅 API 키 미설정으로 인한 데모 모드 동작 여부를 반환합니다.
func (c *MarketingConfig) DemoMode() bool {
	return strings.TrimSpace(c.APIKey) == ""
}

// NotifierConfig 운영 알림 채널(텔레그램)을 정의하는 설정 구조체
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

func (c *NotifierConfig) validate() error {
	return c.Telegram.validate()
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

func (c *TelegramConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			switch firstErr.Field() {
			case "bot_token":
				if firstErr.Tag() == "telegram_bot_token" {
					return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(notifier.telegram.bot_token) 형식이 올바르지 않습니다")
				}
				return apperrors.New(apperrors.InvalidInput, "텔레그램 알림 활성화 시 봇 토큰(notifier.telegram.bot_token)은 필수입니다")
			case "chat_id":
				return apperrors.New(apperrors.InvalidInput, "텔레그램 알림 활성화 시 채팅 ID(notifier.telegram.chat_id)는 필수입니다")
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 알림 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// APIConfig 웹 서버의 포트, TLS(HTTPS) 및 CORS 정책을 정의하는 설정 구조체
type APIConfig struct {
	TLSServer   bool       `json:"tls_server"`
	TLSCertFile string     `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string     `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int        `json:"listen_port" validate:"min=1,max=65535"`
	CORS        CORSConfig `json:"cors"`
}

func (c *APIConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		// Validator 에러를 사용자 친화적인 메시지로 변환한다.
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				switch fieldErr.Field() {
				case "listen_port":
					return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(api.listen_port)는 1에서 65535 사이의 값이어야 합니다")
				case "tls_cert_file":
					switch fieldErr.Tag() {
					case "required_if":
						return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 인증서 파일 경로(api.tls_cert_file)는 필수입니다")
					case "file":
						return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 인증서 파일(api.tls_cert_file)을 찾을 수 없습니다: '%v'", fieldErr.Value()))
					default:
						return apperrors.New(apperrors.InvalidInput, "TLS 인증서 파일 경로(api.tls_cert_file) 설정이 올바르지 않습니다")
					}
				case "tls_key_file":
					switch fieldErr.Tag() {
					case "required_if":
						return apperrors.New(apperrors.InvalidInput, "TLS 서버 활성화 시 키 파일 경로(api.tls_key_file)는 필수입니다")
					case "file":
						return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 키 파일(api.tls_key_file)을 찾을 수 없습니다: '%v'", fieldErr.Value()))
					default:
						return apperrors.New(apperrors.InvalidInput, "TLS 키 파일 경로(api.tls_key_file) 설정이 올바르지 않습니다")
					}
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "웹 서버 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return c.CORS.validate()
}

// VerifyRecommendations 웹 서버 설정의 권장 사항 준수 여부를 진단합니다.
func (c *APIConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(api.cors.allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			if len(c.AllowOrigins) > 1 {
				return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
			}

			// 와일드카드만 있는 경우는 유효함 (validator skip)
			return nil
		}
	}

	// 각 Origin 유효성 검사
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				if fieldErr.Tag() == "cors_origin" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fieldErr.Value()))
				}
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "CORS 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"http_retry.max_retries":           DefaultMaxRetries,
		"http_retry.retry_delay":           DefaultRetryDelay,
		"shop.api_version":                 DefaultStorefrontAPIVersion,
		"feed.title":                       "Stylo",
		"feed.brand":                       DefaultFeedBrand,
		"feed.currency":                    DefaultFeedCurrency,
		"feed.shipping.country":            DefaultShippingCountry,
		"feed.shipping.service":            DefaultShippingService,
		"feed.shipping.price":              DefaultShippingPrice,
		"marketing.api_base_url":           DefaultMarketingAPIBaseURL,
		"marketing.rate_limit_per_second":  DefaultMarketingRateLimit,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: STYLO_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: STYLO_MARKETING__API_KEY -> marketing.api_key
	if err := k.Load(env.Provider("STYLO_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STYLO_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
