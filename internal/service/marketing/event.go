package marketing

import (
	"context"
	"net/http"
	"time"

	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

// eventsPath 이벤트 추적 API 경로
const eventsPath = "/api/events/"

// TrackEvent 마케팅 플랫폼에 이벤트를 기록합니다. (Fire-and-Forget)
//
// 어떤 실패도 호출자에게 전파되지 않으며 로그로만 기록됩니다.
// 이벤트 추적은 분석 목적의 부가 기능으로, 구독 요청의 성패와 무관합니다.
func (c *Client) TrackEvent(ctx context.Context, metricName, email string, properties map[string]any) {
	body := map[string]any{
		"data": map[string]any{
			"type": "event",
			"attributes": map[string]any{
				"time":       time.Now().UTC().Format(time.RFC3339),
				"properties": properties,
				"metric": map[string]any{
					"data": map[string]any{
						"type": "metric",
						"attributes": map[string]any{
							"name": metricName,
						},
					},
				},
				"profile": map[string]any{
					"data": map[string]any{
						"type": "profile",
						"attributes": map[string]any{
							"email": email,
						},
					},
				},
			},
		},
	}

	if _, err := c.do(ctx, http.MethodPost, eventsPath, body); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"metric": metricName,
			"email":  applog.MaskSensitiveData(email),
			"error":  err.Error(),
		}).Warn("이벤트 추적 실패 (무시됨)")
	}
}
