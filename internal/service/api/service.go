// Package api Stylo 스토어프런트 API 서버의 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/danieltjaarda/stylo-sub000/docs"
	"github.com/danieltjaarda/stylo-sub000/internal/config"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/version"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/handler/system"
	v1 "github.com/danieltjaarda/stylo-sub000/internal/service/api/v1"
	v1handler "github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/handler"
	"github.com/danieltjaarda/stylo-sub000/internal/service/notification"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간 (5초)
	shutdownTimeout = 5 * time.Second
)

// Service Stylo API 서버의 생명주기를 관리하는 서비스입니다.
//
// 이 서비스는 다음과 같은 역할을 수행합니다:
//   - Echo 기반 HTTP/HTTPS 서버 시작 및 종료
//   - 미들웨어 체인 설정 (PanicRecovery, RequestID, HTTPLogger, RateLimiting, CORS, Secure)
//   - API 엔드포인트 라우팅 설정 (상품 피드, 구독, Health Check, 버전 정보)
//   - Swagger UI 제공
//   - Graceful Shutdown 지원 (5초 타임아웃)
//   - 서버 에러 처리 및 알림 전송 (예상치 못한 에러 발생 시)
//
// 서비스는 고루틴으로 실행되며, context를 통해 종료 신호를 받습니다.
type Service struct {
	appConfig *config.AppConfig

	feedGenerator       v1handler.FeedGenerator
	subscriptionGateway v1handler.SubscriptionGateway

	notificationSender notification.Sender

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(
	appConfig *config.AppConfig,
	feedGenerator v1handler.FeedGenerator,
	subscriptionGateway v1handler.SubscriptionGateway,
	notificationSender notification.Sender,
	buildInfo version.Info,
) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if feedGenerator == nil {
		panic(constants.PanicMsgFeedGeneratorRequired)
	}
	if subscriptionGateway == nil {
		panic(constants.PanicMsgSubscriptionGatewayRequired)
	}
	if notificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Service{
		appConfig: appConfig,

		feedGenerator:       feedGenerator,
		subscriptionGateway: subscriptionGateway,

		notificationSender: notificationSender,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 서비스는 별도의 고루틴에서 실행되며, 서버 설정과 HTTP 서버 시작,
// Shutdown 신호 대기를 순차적으로 수행합니다.
//
// Parameters:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// Note: 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("서비스 시작 진입: API 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn("API 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info("서비스 시작 완료: API 서비스가 정상적으로 초기화되었습니다")

	return nil
}

// runServiceLoop 서비스의 메인 실행 루프입니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 모든 설정을 완료합니다.
//
// 다음 순서로 서버를 구성합니다:
//  1. Handler 생성 (System 핸들러, v1 API 핸들러)
//  2. Echo 서버 생성 (미들웨어 체인, CORS 설정 포함)
//  3. 라우트 등록 (전역 라우트, v1 API 라우트)
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.notificationSender, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.feedGenerator, s.subscriptionGateway, s.notificationSender)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		AllowOrigins: s.appConfig.API.CORS.AllowOrigins,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer HTTP/HTTPS 서버를 시작합니다.
//
// 설정에 따라 TLS 활성화 여부를 결정하며, 서버가 종료되면 done 채널을 닫아
// 대기 중인 고루틴에 신호를 보냅니다.
//
// Note: 이 함수는 블로킹되며, 서버가 종료될 때까지 반환되지 않습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.API.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Debug("HTTP 서버를 시작합니다")

	var err error
	if s.appConfig.API.TLSServer {
		err = e.StartTLS(
			fmt.Sprintf(":%d", port),
			s.appConfig.API.TLSCertFile,
			s.appConfig.API.TLSKeyFile,
		)
	} else {
		err = e.Start(fmt.Sprintf(":%d", port))
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버 실행 중 발생한 에러를 처리합니다.
//
// 에러 처리 방식:
//   - nil: 처리하지 않음 (정상 종료)
//   - http.ErrServerClosed: Info 레벨 로깅 (Graceful Shutdown)
//   - 그 외: Error 레벨 로깅 + 관리자 알림 전송 (예상치 못한 에러)
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info("HTTP 서버가 정상적으로 종료되었습니다")
		return
	}

	message := "HTTP 서버 실행 중 치명적인 오류가 발생했습니다"
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(message)

	s.notificationSender.NotifyDefaultWithError(fmt.Sprintf("%s\r\n\r\n%s", message, err))
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
//
// Note: 이 함수는 서비스가 완전히 종료될 때까지 블로킹됩니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		// 정상적인 종료 신호 수신
		applog.WithComponent(constants.ComponentService).Info("종료 절차 진입: API 서비스 중지 시그널을 수신했습니다")
	case <-httpServerDone:
		// HTTP 서버가 예기치 않게 종료됨 (포트 바인딩 실패 등)
		// 이미 종료되었으므로 Shutdown 호출 없이 상태만 정리
		applog.WithComponent(constants.ComponentService).Error("HTTP 서버가 예기치 않게 종료되었습니다")

		s.cleanup()

		return
	}

	// Graceful Shutdown 시작 (5초 타임아웃)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error("HTTP 서버 Shutdown 중 오류가 발생했습니다")
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}
