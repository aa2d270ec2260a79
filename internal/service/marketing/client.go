package marketing

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/fetch"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// component 로깅용 컴포넌트 이름
	component = "marketing"

	// apiRevision 마케팅 API의 버전 헤더 값입니다.
	// 모든 요청에 고정된 리비전을 명시하여 API 스키마 변경에 의한 돌발 장애를 방지합니다.
	apiRevision = "2024-02-15"

	// defaultBurst 전송률 제한기의 버스트 허용량입니다.
	defaultBurst = 3
)

// Client 마케팅 자동화 플랫폼의 REST API를 호출하는 클라이언트입니다.
//
// 모든 호출은 전송률 제한기를 통과한 후 전송되며, 응답은 gjson으로 탐색할 수 있는
// 원시 JSON으로 반환됩니다. 마케팅 API의 응답 구조는 엔드포인트마다 달라
// 구조체 바인딩보다 경로 기반 탐색이 유지보수에 유리합니다.
type Client struct {
	jsonClient *fetch.JSONClient

	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// NewClient Client 인스턴스를 생성합니다.
//
// 매개변수:
//   - jsonClient: HTTP 요청을 수행할 JSON 클라이언트
//   - baseURL: 마케팅 API의 기본 주소
//   - apiKey: 비공개 API 키
//   - ratePerSecond: 초당 최대 요청 수 (전송률 제한)
func NewClient(jsonClient *fetch.JSONClient, baseURL, apiKey string, ratePerSecond int) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}

	return &Client{
		jsonClient: jsonClient,

		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), defaultBurst),
	}
}

// do 마케팅 API에 요청을 보내고 응답 본문을 gjson 결과로 반환합니다.
//
// 인증 헤더와 리비전 헤더를 자동으로 설정하며, 전송률 제한기를 먼저 통과시킵니다.
// 2xx가 아닌 응답은 *fetch.HTTPStatusError로 반환되어 호출자의 폴백 체인이
// 이를 '복구 가능한 실패'로 식별할 수 있습니다.
func (c *Client) do(ctx context.Context, method, path string, body any) (gjson.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, apperrors.Wrap(err, apperrors.Timeout, "마케팅 API 전송률 제한 대기가 중단되었습니다")
	}

	header := http.Header{
		"Authorization": []string{"Klaviyo-API-Key " + c.apiKey},
		"Revision":      []string{apiRevision},
	}

	raw, err := c.jsonClient.Raw(ctx, method, c.baseURL+path, body, header)
	if err != nil {
		return gjson.Result{}, err
	}

	return gjson.ParseBytes(raw), nil
}
