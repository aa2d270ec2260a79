// Package v1 Stylo API의 v1 버전 라우트를 정의하고 설정합니다.
//
// 주요 엔드포인트:
//   - GET  /feed/google-merchant.xml - Google Merchant 상품 피드
//   - POST /api/v1/subscriptions     - 뉴스레터 구독 및 할인 코드 발급
//
// 피드 엔드포인트는 Google Merchant Center에 등록하는 고정 URL이므로
// 버전 그룹 밖의 루트 경로에 둡니다.
package v1

import (
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/feed/google-merchant.xml", h.GetProductFeedHandler)

	v1Group := e.Group("/api/v1")

	v1Group.POST("/subscriptions", h.SubscribeHandler)
}
