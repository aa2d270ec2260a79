// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 이 패키지는 HTTP 요청을 받아 검증하고, 비즈니스 로직을 호출한 후,
// 적절한 HTTP 응답을 반환하는 핸들러 함수들을 포함합니다.
package handler

import (
	"context"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/notification"
	"github.com/danieltjaarda/stylo-sub000/internal/service/subscription"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

// FeedGenerator 상품 피드 XML 생성을 담당하는 인터페이스입니다.
type FeedGenerator interface {
	// Generate 전체 상품 카탈로그를 조회하여 피드 XML과 아이템 수를 반환합니다.
	// 카탈로그 조회가 하나라도 실패하면 부분 피드 대신 에러를 반환합니다.
	Generate(ctx context.Context) ([]byte, int, error)
}

// SubscriptionGateway 뉴스레터 구독 처리를 담당하는 인터페이스입니다.
type SubscriptionGateway interface {
	Subscribe(ctx context.Context, req *subscription.Request) (*subscription.Result, error)
}

// Handler v1 API 요청을 처리하고 비즈니스 로직을 연결하는 핸들러입니다.
//
// 의존성 주입을 통해 생성되며, 피드 생성기와 구독 게이트웨이, 알림 발송자를 주입받습니다.
type Handler struct {
	feedGenerator FeedGenerator

	subscriptionGateway SubscriptionGateway

	notificationSender notification.Sender
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(feedGenerator FeedGenerator, subscriptionGateway SubscriptionGateway, notificationSender notification.Sender) *Handler {
	if feedGenerator == nil {
		panic(constants.PanicMsgFeedGeneratorRequired)
	}
	if subscriptionGateway == nil {
		panic(constants.PanicMsgSubscriptionGatewayRequired)
	}
	if notificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Handler{
		feedGenerator: feedGenerator,

		subscriptionGateway: subscriptionGateway,

		notificationSender: notificationSender,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
