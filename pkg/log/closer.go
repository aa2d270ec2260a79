package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 여러 로그 파일(Main, Critical, Verbose)의 리소스 해제를 통합 관리합니다.
//
// 주요 특징:
//   - 일부 파일 닫기에 실패하더라도 나머지 파일들의 Close()를 강제로 수행합니다.
//   - Hook을 먼저 비활성화하여 종료 중인 파일에 대한 쓰기 시도를 방지합니다.
//   - Close()를 여러 번 호출해도 안전하며, 두 번째 이후 호출은 즉시 nil을 반환합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	// closed 중복 Close() 호출을 방지하기 위한 원자적 플래그 (0: open, 1: closed)
	closed int32
}

func (c *closer) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil // 이미 닫힘
	}

	// 파일 리소스를 닫기 전에 로그 유입을 먼저 차단한다.
	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}

		// 파일 닫기 전 Sync()를 호출하여 버퍼에 잔류하는 로그가 디스크에 기록되도록 합니다.
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}

		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
