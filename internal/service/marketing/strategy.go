package marketing

import (
	"context"
	"errors"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/fetch"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

// strategy 폴백 체인을 구성하는 단일 전략입니다.
// 이름은 로깅용이며, run은 성공 시 결과값을 반환합니다.
type strategy[T any] struct {
	name string
	run  func(ctx context.Context) (T, error)
}

// runChain 전략 목록을 순서대로 시도하여 첫 번째 성공 결과를 반환합니다.
//
// 실패 분류:
//   - 복구 가능한 실패(2xx가 아닌 HTTP 응답): 다음 전략으로 넘어감
//   - 치명적 실패(네트워크 오류, 컨텍스트 취소, 파싱 실패 등): 즉시 중단하고 에러 반환
//
// 반환값:
//   - T: 첫 번째로 성공한 전략의 결과값
//   - bool: 성공한 전략이 있었는지 여부 (모든 전략이 복구 가능한 실패면 false)
//   - error: 치명적 실패 시에만 에러 반환
func runChain[T any](ctx context.Context, operation string, strategies []strategy[T]) (T, bool, error) {
	var zero T

	for _, s := range strategies {
		result, err := s.run(ctx)
		if err == nil {
			return result, true, nil
		}

		if !isRecoverable(err) {
			return zero, false, apperrors.Wrapf(err, apperrors.ExecutionFailed, "마케팅 API '%s' 호출 중 치명적 오류가 발생했습니다 (전략: %s)", operation, s.name)
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"operation": operation,
			"strategy":  s.name,
			"error":     err.Error(),
		}).Warn("마케팅 API 전략 실패, 다음 전략으로 폴백")
	}

	return zero, false, nil
}

// isRecoverable 다음 전략으로 폴백할 수 있는 실패인지 판단합니다.
//
// 2xx가 아닌 HTTP 응답과 '응답은 정상이나 원하는 데이터가 없는' 실패만
// 복구 가능한 실패로 취급합니다. 네트워크 오류, 컨텍스트 취소 등 전송 수준의
// 실패는 다음 전략도 같은 이유로 실패할 것이므로 치명적 실패로 분류합니다.
func isRecoverable(err error) bool {
	var statusErr *fetch.HTTPStatusError
	if apperrors.As(err, &statusErr) {
		return true
	}
	return errors.Is(err, errProfileIDMissing) || errors.Is(err, errProfileNotFound)
}
