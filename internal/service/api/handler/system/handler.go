// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"runtime"
	"time"

	"github.com/danieltjaarda/stylo-sub000/internal/pkg/version"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/constants"
	"github.com/danieltjaarda/stylo-sub000/internal/service/api/model/system"
	"github.com/danieltjaarda/stylo-sub000/internal/service/notification"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	notificationSender notification.Sender

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(notificationSender notification.Sender, buildInfo version.Info) *Handler {
	if notificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Handler{
		notificationSender: notificationSender,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	uptime := int64(time.Since(h.serverStartTime).Seconds())

	deps := make(map[string]system.DependencyStatus)

	if err := h.notificationSender.Health(); err != nil {
		deps[constants.DependencyNotificationService] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	} else {
		deps[constants.DependencyNotificationService] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: "정상",
		}
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       uptime,
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   runtime.Version(),
	})
}
