// Package httputil HTTP 에러 생성과 전역 에러 핸들러를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/model/response"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 에러 발생 시 적절한 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else if resp, ok := he.Message.(response.ErrorResponse); ok {
			message = resp.Message
		}
	}

	// 404 에러는 사용자 친화적인 메시지로 통일
	if code == http.StatusNotFound {
		message = constants.ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		// 5xx: 서버 내부 오류
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error("HTTP 5xx 서버 오류")
	} else if code >= http.StatusBadRequest {
		// 4xx: 클라이언트 요청 오류
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn("HTTP 4xx 클라이언트 오류")
	}

	// 이중 응답 방지
	if c.Response().Committed {
		return
	}

	// HEAD 요청은 HTTP 명세에 따라 헤더만 반환
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
