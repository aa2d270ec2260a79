package marketing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
	"github.com/tidwall/gjson"
)

// 프로필 관련 API 경로
const (
	profileImportPath = "/api/profile-import/"
	profilesPath      = "/api/profiles/"
)

// UpsertProfile 이메일 주소로 마케팅 프로필을 생성하거나 갱신하고 프로필 ID를 반환합니다.
//
// 3단계 폴백 체인으로 동작합니다:
//  1. profile-import: 속성을 포함한 프로필 업서트 (기본 경로)
//  2. profile-create: 속성 없이 이메일만으로 단순 생성
//  3. profile-search: 이메일로 기존 프로필 검색 (이미 존재하는 경우 대비)
//
// 세 전략이 모두 복구 가능한 실패(2xx가 아닌 응답)로 끝나면 빈 프로필 ID와
// nil 에러를 반환합니다. 호출자는 프로필 없이도 후속 단계를 진행할 수 있습니다.
// 네트워크 오류 등 치명적 실패만 에러로 반환됩니다.
func (c *Client) UpsertProfile(ctx context.Context, email string, properties map[string]any) (string, error) {
	strategies := []strategy[string]{
		{
			name: "profile-import",
			run: func(ctx context.Context) (string, error) {
				return c.importProfile(ctx, email, properties)
			},
		},
		{
			name: "profile-create",
			run: func(ctx context.Context) (string, error) {
				return c.createProfile(ctx, email)
			},
		},
		{
			name: "profile-search",
			run: func(ctx context.Context) (string, error) {
				return c.searchProfileByEmail(ctx, email)
			},
		},
	}

	profileID, ok, err := runChain(ctx, "프로필 업서트", strategies)
	if err != nil {
		return "", err
	}
	if !ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"email": applog.MaskSensitiveData(email),
		}).Warn("모든 프로필 업서트 전략이 실패했습니다")
		return "", nil
	}

	return profileID, nil
}

// importProfile 속성을 포함한 프로필 업서트 요청을 보냅니다.
func (c *Client) importProfile(ctx context.Context, email string, properties map[string]any) (string, error) {
	attributes := map[string]any{
		"email": email,
	}
	if len(properties) > 0 {
		attributes["properties"] = properties
	}

	body := map[string]any{
		"data": map[string]any{
			"type":       "profile",
			"attributes": attributes,
		},
	}

	result, err := c.do(ctx, http.MethodPost, profileImportPath, body)
	if err != nil {
		return "", err
	}

	return profileIDFromResult(result)
}

// createProfile 이메일만으로 프로필 단순 생성 요청을 보냅니다.
func (c *Client) createProfile(ctx context.Context, email string) (string, error) {
	body := map[string]any{
		"data": map[string]any{
			"type": "profile",
			"attributes": map[string]any{
				"email": email,
			},
		},
	}

	result, err := c.do(ctx, http.MethodPost, profilesPath, body)
	if err != nil {
		return "", err
	}

	return profileIDFromResult(result)
}

// searchProfileByEmail 이메일로 기존 프로필을 검색하여 첫 번째 결과의 ID를 반환합니다.
func (c *Client) searchProfileByEmail(ctx context.Context, email string) (string, error) {
	filter := url.QueryEscape(fmt.Sprintf(`equals(email,"%s")`, email))

	result, err := c.do(ctx, http.MethodGet, profilesPath+"?filter="+filter, nil)
	if err != nil {
		return "", err
	}

	profileID := result.Get("data.0.id").String()
	if profileID == "" {
		return "", errProfileNotFound
	}

	return profileID, nil
}

// profileIDFromResult 프로필 생성/업서트 응답에서 프로필 ID를 추출합니다.
func profileIDFromResult(result gjson.Result) (string, error) {
	profileID := result.Get("data.id").String()
	if profileID == "" {
		return "", errProfileIDMissing
	}
	return profileID, nil
}
