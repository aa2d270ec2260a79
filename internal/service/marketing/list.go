package marketing

import (
	"context"
	"fmt"
	"net/http"

	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

// 리스트 구독 관련 API 경로
const (
	subscriptionJobPath   = "/api/profile-subscription-bulk-create-jobs/"
	listRelationshipsPath = "/api/lists/%s/relationships/profiles/"
)

// 구독 동의 수준 (이중 수신 동의 설정에 따라 결정)
const (
	// ConsentSubscribed 즉시 구독 완료 상태
	ConsentSubscribed = "SUBSCRIBED"

	// ConsentPending 확인 메일 승인 대기 상태 (이중 수신 동의 활성화 시)
	ConsentPending = "PENDING"
)

// SubscribeToList 프로필을 구독자 리스트에 등록합니다.
//
// 2단계 폴백 체인으로 동작합니다:
//  1. 대량 구독 작업(bulk-subscription-job): 동의 수준을 명시한 정식 구독 경로
//  2. 리스트 관계(list-relationship): 프로필을 리스트에 직접 연결하는 단순 경로
//     (동의 수준을 전달할 수 없으므로 프로필 ID가 있을 때만 시도 가능)
//
// 두 전략이 모두 실패해도 에러를 반환하지 않고 false를 반환합니다.
// 리스트 구독 실패는 구독 요청 전체를 중단시킬 사유가 아니기 때문입니다.
// 치명적 실패(네트워크 오류 등)도 이 단계에서는 로그만 남기고 false로 처리합니다.
func (c *Client) SubscribeToList(ctx context.Context, listID, email, profileID string, doubleOptIn bool) bool {
	strategies := []strategy[struct{}]{
		{
			name: "subscription-job",
			run: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, c.createSubscriptionJob(ctx, listID, email, doubleOptIn)
			},
		},
	}

	if profileID != "" {
		strategies = append(strategies, strategy[struct{}]{
			name: "list-relationship",
			run: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, c.addListRelationship(ctx, listID, profileID)
			},
		})
	}

	_, ok, err := runChain(ctx, "리스트 구독", strategies)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"list_id": listID,
			"email":   applog.MaskSensitiveData(email),
			"error":   err.Error(),
		}).Error("리스트 구독 중 치명적 오류 발생 (구독 요청은 계속 진행)")
		return false
	}

	return ok
}

// createSubscriptionJob 동의 수준이 명시된 대량 구독 작업을 생성합니다.
func (c *Client) createSubscriptionJob(ctx context.Context, listID, email string, doubleOptIn bool) error {
	consent := ConsentSubscribed
	if doubleOptIn {
		consent = ConsentPending
	}

	body := map[string]any{
		"data": map[string]any{
			"type": "profile-subscription-bulk-create-job",
			"attributes": map[string]any{
				"custom_source": "Newsletter Signup",
				"profiles": map[string]any{
					"data": []any{
						map[string]any{
							"type": "profile",
							"attributes": map[string]any{
								"email": email,
								"subscriptions": map[string]any{
									"email": map[string]any{
										"marketing": map[string]any{
											"consent": consent,
										},
									},
								},
							},
						},
					},
				},
			},
			"relationships": map[string]any{
				"list": map[string]any{
					"data": map[string]any{
						"type": "list",
						"id":   listID,
					},
				},
			},
		},
	}

	_, err := c.do(ctx, http.MethodPost, subscriptionJobPath, body)
	return err
}

// addListRelationship 프로필을 리스트에 직접 연결합니다.
func (c *Client) addListRelationship(ctx context.Context, listID, profileID string) error {
	body := map[string]any{
		"data": []any{
			map[string]any{
				"type": "profile",
				"id":   profileID,
			},
		},
	}

	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf(listRelationshipsPath, listID), body)
	return err
}
