package subscription

import (
	"context"
	"sync"

	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/robfig/cron/v3"
)

// sweepSchedule 만료된 멱등성 레코드 정리 주기 (매시 정각)
const sweepSchedule = "0 * * * *"

// SweeperService 구독 캐시의 만료된 레코드를 주기적으로 정리하는 서비스입니다.
//
// 레코드가 만료되면 해당 이메일의 재구독이 허용되고 새로운 할인 코드가
// 발급됩니다. 정리 주기와 레코드 수명은 독립적이므로, 실제 만료 판정은
// Cache.Sweep이 레코드 생성 시각을 기준으로 수행합니다.
type SweeperService struct {
	cache *Cache

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewSweeperService 새로운 SweeperService 인스턴스를 생성합니다.
func NewSweeperService(cache *Cache) *SweeperService {
	if cache == nil {
		panic("Cache는 필수입니다")
	}

	return &SweeperService{
		cache: cache,
	}
}

// Start 정리 스케줄을 Cron 엔진에 등록하고 서비스를 시작합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *SweeperService) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Sweeper 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Sweeper 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// Cron 엔진 초기화
	// - Recover: Panic 발생 시 복구
	// - SkipIfStillRunning: 이전 정리가 끝나지 않았으면 다음 실행을 건너뜀
	s.cron = cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := s.cron.AddFunc(sweepSchedule, s.sweep); err != nil {
		serviceStopWG.Done()
		s.cron = nil
		return err
	}

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"schedule": sweepSchedule,
	}).Info("서비스 시작 완료: Sweeper 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 서비스를 안전하게 중지합니다.
func (s *SweeperService) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Sweeper 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Sweeper 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// sweep 만료된 레코드를 제거하고 결과를 로깅합니다.
func (s *SweeperService) sweep() {
	removed := s.cache.Sweep()
	if removed > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"removed":   removed,
			"remaining": s.cache.Len(),
		}).Info("만료된 구독 레코드를 정리했습니다")
	}
}
