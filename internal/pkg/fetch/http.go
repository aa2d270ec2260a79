package fetch

import (
	"compress/gzip"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// defaultTimeout 외부 API 호출의 기본 타임아웃입니다.
const defaultTimeout = 30 * time.Second

// defaultUserAgent User-Agent 미지정 요청에 사용되는 기본값입니다.
const defaultUserAgent = "stylo-server/1.0 (+https://www.stylostore.nl)"

// HTTPFetcher 기본 타임아웃과 투명한 압축 해제 기능이 내장된 HTTP 클라이언트 구현체입니다.
//
// Accept-Encoding에 gzip과 brotli를 광고하고, 응답의 Content-Encoding에 따라
// 본문을 자동으로 해제하여 호출자에게는 항상 평문 스트림을 전달합니다.
type HTTPFetcher struct {
	client *http.Client
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 기본 타임아웃(30초) 설정이 포함된 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher() *HTTPFetcher {
	return NewHTTPFetcherWithTimeout(defaultTimeout)
}

// NewHTTPFetcherWithTimeout 지정된 타임아웃으로 HTTPFetcher를 생성합니다.
func NewHTTPFetcherWithTimeout(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				// 압축 해제를 직접 처리하므로 Go의 자동 gzip 협상은 비활성화한다.
				DisableCompression: true,
				MaxIdleConnsPerHost: 4,
			},
		},
	}
}

// Do 커스텀 HTTP 요청을 실행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return resp, err
	}

	return decompressResponse(resp)
}

// decompressResponse 응답의 Content-Encoding에 따라 본문을 투명하게 해제합니다.
func decompressResponse(resp *http.Response) (*http.Response, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			drainAndCloseBody(resp.Body)
			return nil, err
		}
		resp.Body = &wrappedBody{Reader: gr, underlying: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.ContentLength = -1
	case "br":
		resp.Body = &wrappedBody{Reader: brotli.NewReader(resp.Body), underlying: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.ContentLength = -1
	}

	return resp, nil
}

// wrappedBody 압축 해제 리더와 원본 응답 본문을 함께 닫기 위한 래퍼입니다.
type wrappedBody struct {
	io.Reader
	underlying io.ReadCloser
}

func (b *wrappedBody) Close() error {
	if c, ok := b.Reader.(io.Closer); ok {
		_ = c.Close()
	}
	return b.underlying.Close()
}
