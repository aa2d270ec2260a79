package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/danieltjaarda/stylo-sub000/internal/pkg/validator"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/httputil"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/model/request"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/v1/model/response"
	"github.com/danieltjaarda/stylo-sub000/internal/service/subscription"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

// SubscribeHandler godoc
// @Summary 뉴스레터 구독 및 할인 코드 발급
// @Description 이메일 주소로 뉴스레터를 구독하고 할인 코드를 발급합니다.
// @Description
// @Description ## 처리 정책
// @Description - 같은 이메일의 중복 요청은 기존 할인 코드를 반환합니다 (is_idempotent: true)
// @Description - 마케팅 플랫폼의 부분 실패는 상태 필드로만 표현되며 요청은 성공합니다
// @Description - 마케팅 API 키가 설정되지 않은 경우 데모 모드로 동작합니다 (demo_mode: true)
// @Description
// @Description ## 사용 예시
// @Description ```bash
// @Description curl -X POST "http://localhost:8080/api/v1/subscriptions" \
// @Description   -H "Content-Type: application/json" \
// @Description   -d '{"email":"jan@example.nl"}'
// @Description ```
// @Tags Subscription
// @Accept json
// @Produce json
// @Param subscription body request.SubscriptionRequest true "구독 요청 정보"
// @Success 200 {object} response.SubscriptionResponse "구독 처리 결과 (부분 실패 포함)"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 (이메일 형식 오류 등)"
// @Failure 500 {object} response.ErrorResponse "서버 내부 오류"
// @Router /api/v1/subscriptions [post]
func (h *Handler) SubscribeHandler(c echo.Context) error {
	// 1. 요청 바인딩
	req := new(request.SubscriptionRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	// 2. 입력 검증
	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	// 3. 구독 처리
	result, err := h.subscriptionGateway.Subscribe(c.Request().Context(), &subscription.Request{
		Email:            req.Email,
		NewsletterListID: req.NewsletterListID,
		Properties:       req.Properties,
	})
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidEmail) {
			return httputil.NewBadRequestError(constants.ErrMsgBadRequestEmail)
		}

		h.log(c).WithField("error", err).Error("구독 처리 실패")

		h.notificationSender.NotifyDefaultWithError(fmt.Sprintf("뉴스레터 구독 처리 중 오류가 발생했습니다.\r\n\r\n%s", err))

		return httputil.NewInternalServerError(constants.ErrMsgSubscriptionFailed)
	}

	h.log(c).WithFields(applog.Fields{
		"status":        result.SubscriptionStatus,
		"is_idempotent": result.IsIdempotent,
		"demo_mode":     result.DemoMode,
	}).Info("구독 요청 처리 완료")

	// 4. 성공 응답 (부분 실패도 상태 필드로 표현하여 200으로 응답)
	return c.JSON(http.StatusOK, response.SubscriptionResponse{
		Success:                 true,
		DiscountCode:            result.DiscountCode,
		ExpiresAt:               result.ExpiresAt,
		SubscriptionStatus:      result.SubscriptionStatus,
		DoubleOptInEnabled:      result.DoubleOptInEnabled,
		ListSubscriptionSuccess: result.ListSubscriptionSuccess,
		IsIdempotent:            result.IsIdempotent,
		DemoMode:                result.DemoMode,
		ProfileID:               result.ProfileID,
		Message:                 result.Message,
	})
}
