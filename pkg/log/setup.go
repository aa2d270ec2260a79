package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// fileExt 생성되는 로그 파일의 기본 확장자
	fileExt = "log"

	// 기본 로그 로테이션 정책
	defaultMaxSizeMB  = 100 // 로그 파일 하나당 최대 크기 (단위: MB)
	defaultMaxBackups = 20  // 로테이션 된 로그 파일의 최대 보관 개수
)

var (
	// setupOnce Setup() 함수가 프로세스 생명주기 동안 단 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// globalCloser 최초 초기화 시 생성된 리소스 해제 객체를 보관합니다.
	globalCloser io.Closer

	// globalSetupErr 초기화 단계에서 발생한 에러를 보관합니다.
	// 초기화에 실패한 경우 Setup() 재호출 시에도 최초의 에러를 그대로 반환합니다.
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화하고 설정된 옵션에 따라 파일 출력을 구성합니다.
//
// 주의:
//   - 애플리케이션 시작 시점(main 함수 도입부)에 호출하는 것을 권장합니다.
//   - 반환된 Closer는 반드시 defer를 통해 리소스가 해제되도록 보장해야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

// setupInternal 실제 로깅 시스템 초기화 로직을 수행합니다.
func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 기본 출력 경로의 불필요한 포맷팅 연산을 차단한다. (실제 포맷팅은 hook에서 수행)
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	// 파일/콘솔 출력에 사용할 실제 포맷터
	textFormatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if opts.CallerPathPrefix != "" {
				if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
					function = "..." + cut
				}
			}
			return
		},
	}

	logDir := opts.Dir
	if logDir == "" {
		logDir = "logs"
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}

	var consoleWriter io.Writer
	if opts.EnableConsoleLog {
		consoleWriter = os.Stdout
	}

	// 초기화 실패 시 이미 생성된 리소스를 롤백하기 위해 추적합니다.
	var closers []io.Closer
	succeeded := false
	defer func() {
		if !succeeded {
			for _, c := range closers {
				if c != nil {
					_ = c.Close()
				}
			}
		}
	}()

	newRotator := func(suffix string) *lumberjack.Logger {
		name := opts.Name
		if suffix != "" {
			name += "." + suffix
		}
		return &lumberjack.Logger{
			Filename:   filepath.Join(logDir, fmt.Sprintf("%s.%s", name, fileExt)),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   false,
			LocalTime:  true,
		}
	}

	mainLogger := newRotator("")
	closers = append(closers, mainLogger)

	h := &hook{
		mainWriter: mainLogger,
		formatter:  textFormatter,
	}

	if opts.EnableCriticalLog {
		criticalLogger := newRotator("critical")
		closers = append(closers, criticalLogger)
		h.criticalWriter = criticalLogger
	}

	if opts.EnableVerboseLog {
		verboseLogger := newRotator("verbose")
		closers = append(closers, verboseLogger)
		h.verboseWriter = verboseLogger
	}

	if consoleWriter != nil {
		h.consoleWriter = consoleWriter
	}

	logrus.AddHook(h)

	succeeded = true

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그 발생 시(os.Exit 호출 직전) 버퍼에 남은 로그를 디스크에 쓰도록 보장합니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}
