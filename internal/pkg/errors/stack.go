package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip New/Wrap 계열 함수에서 에러 생성 지점까지 건너뛸 스택 프레임 수
const defaultCallerSkip = 3

// StackFrame 에러 발생 시점의 함수 호출 정보를 담습니다.
type StackFrame struct {
	File     string // 파일 이름
	Line     int    // 줄 번호
	Function string // 함수 이름
}

// captureStack 현재 고루틴의 호출 스택을 수집합니다.
func captureStack(skip int) []StackFrame {
	const maxFrames = 5
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pc)

	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
