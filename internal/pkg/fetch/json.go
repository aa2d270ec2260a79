package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"golang.org/x/net/html/charset"
)

// defaultMaxResponseBodySize 응답 본문의 기본 최대 크기(10MB)입니다.
// 대용량 응답으로 인한 메모리 고갈을 방지합니다.
const defaultMaxResponseBodySize = 10 << 20

// statusErrorBodyPreview HTTPStatusError에 포함할 응답 본문 미리보기의 최대 길이입니다.
const statusErrorBodyPreview = 512

// JSONClient JSON 기반 REST API 호출을 일괄 처리하는 클라이언트입니다.
//
// 요청 본문 마샬링, 상태 코드 검증, 크기 제한, 문자셋 변환, 디코딩을 묶어서
// 제공하며, 실제 전송은 주입된 Fetcher에 위임합니다.
type JSONClient struct {
	fetcher Fetcher

	maxResponseBodySize int64
}

// NewJSONClient 지정된 Fetcher를 사용하는 JSONClient를 생성합니다.
func NewJSONClient(fetcher Fetcher) *JSONClient {
	return &JSONClient{
		fetcher:             fetcher,
		maxResponseBodySize: defaultMaxResponseBodySize,
	}
}

// Do 지정된 URL로 HTTP 요청을 보내고, JSON 응답을 v에 디코딩합니다.
//
// 매개변수:
//   - body: 요청 본문으로 마샬링할 값 (nil 가능)
//   - header: 추가 HTTP 헤더 (nil 가능)
//   - v: 응답을 디코딩할 구조체 포인터 (nil이면 응답 본문을 버림)
//
// 2xx가 아닌 응답은 *HTTPStatusError로 반환되며, 응답 본문의 앞부분을
// 진단용으로 포함합니다. 폴백 체인에서 이 에러를 감지해 다음 전략으로 넘어갑니다.
func (c *JSONClient) Do(ctx context.Context, method, rawURL string, body any, header http.Header, v any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.Internal, "요청 본문 JSON 마샬링에 실패했습니다")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.Internal, "HTTP 요청 생성에 실패했습니다: '%s'", rawURL)
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if reqBody != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		if ctx.Err() != nil {
			return apperrors.Wrapf(ctx.Err(), apperrors.Timeout, "요청이 취소되었거나 시간이 초과되었습니다: '%s'", rawURL)
		}
		return apperrors.Wrapf(err, apperrors.System, "HTTP 요청 전송에 실패했습니다: '%s'", rawURL)
	}
	defer drainAndCloseBody(resp.Body)

	// 응답 크기 제한: LimitReader로 상한을 두고, 초과 여부는 읽은 뒤 판정한다.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBodySize+1))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "응답 본문 읽기에 실패했습니다: '%s'", rawURL)
	}
	if int64(len(raw)) > c.maxResponseBodySize {
		return apperrors.Newf(apperrors.ExecutionFailed, "응답 본문이 허용된 최대 크기(%d바이트)를 초과했습니다: '%s'", c.maxResponseBodySize, rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview := string(raw)
		if len(preview) > statusErrorBodyPreview {
			preview = preview[:statusErrorBodyPreview]
		}
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			URL:        rawURL,
			Body:       preview,
		}
	}

	// 204 No Content 또는 디코딩 대상이 없는 경우는 여기서 종료한다.
	if v == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}

	// 문자셋 변환: UTF-8이 아닌 레거시 인코딩 응답도 안전하게 디코딩한다.
	reader, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ParsingFailed, "응답 문자셋 판별에 실패했습니다: '%s'", rawURL)
	}

	if err := json.NewDecoder(reader).Decode(v); err != nil {
		return apperrors.Wrapf(err, apperrors.ParsingFailed, "JSON 응답 디코딩에 실패했습니다: '%s'", rawURL)
	}

	return nil
}

// Raw 지정된 URL로 HTTP 요청을 보내고 응답 본문을 그대로 반환합니다.
// 프로필 검색처럼 gjson으로 직접 탐색하는 호출에서 사용합니다.
func (c *JSONClient) Raw(ctx context.Context, method, rawURL string, body any, header http.Header) ([]byte, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, method, rawURL, body, header, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
