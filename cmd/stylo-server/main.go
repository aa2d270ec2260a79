package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/fetch"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/version"
	"github.com/danieltjaarda/stylo-sub000/internal/service"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api"
	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
	"github.com/danieltjaarda/stylo-sub000/internal/service/feed"
	"github.com/danieltjaarda/stylo-sub000/internal/service/marketing"
	"github.com/danieltjaarda/stylo-sub000/internal/service/notification"
	"github.com/danieltjaarda/stylo-sub000/internal/service/subscription"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// @title Stylo Storefront API
// @version 1.0
// @description Stylo 스토어프런트의 상품 피드 생성과 뉴스레터 구독 처리를 담당하는 API 서버입니다.
// @description
// @description ## 주요 기능
// @description - Google Merchant Center 상품 피드 생성 (RSS 2.0 XML)
// @description - 뉴스레터 구독 및 할인 코드 발급
// @description - 마케팅 플랫폼 연동 (프로필 생성, 리스트 구독, 이벤트 추적)

// @contact.name Stylo
// @contact.url https://www.stylo.nl

// @BasePath /

const (
	banner = `
  ____   _           _
 / ___| | |_  _   _ | |  ___
 \___ \ | __|| | | || | / _ \
  ___) || |_ | |_| || || (_) |
 |____/  \__| \__, ||_| \___/
              |___/            %s
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. .env 파일 로드 (없으면 무시하고 프로세스 환경 변수를 그대로 사용한다)
	_ = godotenv.Load()

	// 2. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 3. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 4. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()

	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	// 권장 설정 위반 사항 안내 (기동은 계속 진행)
	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// HTTP 클라이언트 구성 (재시도 래퍼 포함)
	retryFetcher := fetch.NewRetryFetcher(
		fetch.NewHTTPFetcher(),
		appConfig.HTTPRetry.MaxRetries,
		appConfig.HTTPRetry.RetryDelayDuration(),
	)
	jsonClient := fetch.NewJSONClient(retryFetcher)

	// 도메인 클라이언트 구성
	catalogClient := catalog.NewClient(jsonClient, appConfig.Shop.GraphQLEndpoint(), appConfig.Shop.StorefrontToken)
	feedGenerator := feed.NewGenerator(catalogClient, appConfig)
	marketingClient := marketing.NewClient(
		jsonClient,
		appConfig.Marketing.APIBaseURL,
		appConfig.Marketing.APIKey,
		appConfig.Marketing.RateLimitPerSecond,
	)

	// 구독 게이트웨이와 멱등성 캐시 구성
	subscriptionCache := subscription.NewCache(nil)
	subscriptionGateway := subscription.NewGateway(subscriptionCache, marketingClient, appConfig, nil)

	// 서비스를 생성하고 초기화한다.
	notificationService := notification.NewService(appConfig)
	sweeperService := subscription.NewSweeperService(subscriptionCache)
	apiService := api.NewService(appConfig, feedGenerator, subscriptionGateway, notificationService, buildInfo)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{notificationService, sweeperService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done
}
