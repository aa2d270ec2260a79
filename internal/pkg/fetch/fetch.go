// Package fetch 외부 API 호출에 사용되는 HTTP 클라이언트 계층을 제공합니다.
//
// Fetcher 인터페이스를 중심으로 재시도, 압축 해제, 상태 코드 검증 등의 기능을
// 데코레이터 패턴으로 조합할 수 있도록 설계되었습니다. 커머스 백엔드(카탈로그)와
// 마케팅 API 클라이언트가 이 패키지를 공유합니다.
package fetch

import (
	"context"
	"io"
	"net/http"
)

// component 로깅용 컴포넌트 이름
const component = "fetch"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 적절한 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 지정된 URL로 HTTP GET 요청을 전송하는 헬퍼 함수입니다.
//
// 요청 실패 시 커넥션 재사용을 위해 응답 객체의 Body를 자동으로 읽어서 버리고 닫습니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// drainAndCloseBody 응답 본문을 안전하게 비우고 닫습니다.
// 본문을 끝까지 읽지 않으면 Keep-Alive 커넥션이 재사용되지 못합니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
