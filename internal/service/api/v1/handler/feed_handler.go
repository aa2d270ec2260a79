package handler

import (
	"fmt"
	"net/http"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/httputil"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

// GetProductFeedHandler godoc
// @Summary Google Merchant 상품 피드 조회
// @Description 전체 상품 카탈로그를 Google Merchant Center 형식의 RSS 2.0 XML로 반환합니다.
// @Description
// @Description 피드는 요청 시점에 생성되며, 카탈로그 조회가 하나라도 실패하면
// @Description 불완전한 XML 대신 500 에러를 반환합니다. Google Merchant Center는
// @Description 부분 피드를 수신하면 누락된 상품을 비활성화하므로, 실패 시 이전
// @Description 피드를 유지하는 편이 안전합니다.
// @Tags Feed
// @Produce xml
// @Success 200 {string} string "RSS 2.0 + Google Merchant 네임스페이스 XML"
// @Failure 500 {object} response.ErrorResponse "피드 생성 실패"
// @Router /feed/google-merchant.xml [get]
func (h *Handler) GetProductFeedHandler(c echo.Context) error {
	xml, itemCount, err := h.feedGenerator.Generate(c.Request().Context())
	if err != nil {
		h.log(c).WithField("error", err).Error("상품 피드 생성 실패")

		// 크롤러가 오류 응답을 수신하면 기존 피드가 유지되므로 즉시 관리자에게 알린다.
		h.notificationSender.NotifyDefaultWithError(fmt.Sprintf("상품 피드 생성에 실패했습니다.\r\n\r\n%s", err))

		return httputil.NewInternalServerError(constants.ErrMsgFeedGeneration)
	}

	h.log(c).WithFields(applog.Fields{
		"item_count": itemCount,
		"bytes":      len(xml),
	}).Info("상품 피드 생성 완료")

	// CDN과 Google 크롤러가 1시간 동안 캐싱하도록 허용
	c.Response().Header().Set("Cache-Control", constants.FeedCacheControl)

	return c.Blob(http.StatusOK, constants.FeedContentType, xml)
}
