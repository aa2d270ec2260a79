package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productNodeJSON 테스트용 상품 노드 JSON을 생성합니다.
func productNodeJSON(id, title string, variantCount int) string {
	variants := ""
	for i := 0; i < variantCount; i++ {
		if i > 0 {
			variants += ","
		}
		variants += fmt.Sprintf(`{"node":{
			"id":"gid://shopify/ProductVariant/%s%d",
			"sku":"STY-%s-%d",
			"title":"Variant %d",
			"availableForSale":true,
			"priceV2":{"amount":"599.00","currencyCode":"EUR"},
			"selectedOptions":[{"name":"Kleur","value":"Eiken"}],
			"image":null
		}}`, id, i, id, i, i)
	}

	return fmt.Sprintf(`{"node":{
		"id":"gid://shopify/Product/%s",
		"handle":"product-%s",
		"title":"%s",
		"descriptionHtml":"<p>Beschrijving</p>",
		"productType":"Zit-sta bureau",
		"vendor":"Stylo",
		"tags":["bureau"],
		"images":{"edges":[{"node":{"url":"https://cdn.example.com/%s.jpg","altText":"%s"}}]},
		"variants":{"edges":[%s]}
	}}`, id, id, title, id, title, variants)
}

func pageJSON(hasNextPage bool, endCursor string, nodes ...string) string {
	edges := ""
	for i, n := range nodes {
		if i > 0 {
			edges += ","
		}
		edges += n
	}
	return fmt.Sprintf(`{"data":{"products":{
		"pageInfo":{"hasNextPage":%t,"endCursor":"%s"},
		"edges":[%s]
	}}}`, hasNextPage, endCursor, edges)
}

func newTestClient(serverURL string) *Client {
	return NewClient(fetch.NewJSONClient(fetch.NewHTTPFetcher()), serverURL, "test-token")
}

func TestClient_FetchAllProducts(t *testing.T) {
	t.Run("성공: 단일 페이지 수집", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Storefront-Access-Token"))

			var req graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Query, "products(first: $pageSize")
			assert.EqualValues(t, 250, req.Variables["pageSize"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(pageJSON(false, "", productNodeJSON("1001", "Bureau One", 2))))
		}))
		defer server.Close()

		products, err := newTestClient(server.URL).FetchAllProducts(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Bureau One", products[0].Title)
		assert.Equal(t, "Zit-sta bureau", products[0].ProductType)
		require.Len(t, products[0].Variants, 2)
		assert.Equal(t, "STY-1001-0", products[0].Variants[0].SKU)
		assert.Equal(t, "599.00", products[0].Variants[0].Price.Amount)
		assert.Equal(t, "Eiken", products[0].Variants[0].SelectedOptions[0].Value)
		require.Len(t, products[0].Images, 1)
	})

	t.Run("성공: 커서 기반 다중 페이지 수집", func(t *testing.T) {
		var requestedCursors []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req graphQLRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			cursor, _ := req.Variables["cursor"].(string)
			requestedCursors = append(requestedCursors, cursor)

			w.Header().Set("Content-Type", "application/json")
			switch cursor {
			case "":
				_, _ = w.Write([]byte(pageJSON(true, "cursor-1", productNodeJSON("1001", "Bureau One", 1))))
			case "cursor-1":
				_, _ = w.Write([]byte(pageJSON(false, "", productNodeJSON("1002", "Stoel One", 1))))
			default:
				t.Fatalf("예상하지 못한 커서: %q", cursor)
			}
		}))
		defer server.Close()

		products, err := newTestClient(server.URL).FetchAllProducts(context.Background())

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Bureau One", products[0].Title)
		assert.Equal(t, "Stoel One", products[1].Title)
		assert.Equal(t, []string{"", "cursor-1"}, requestedCursors)
	})

	t.Run("실패: 중간 페이지 조회 실패 시 전체 중단", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(pageJSON(true, "cursor-1", productNodeJSON("1001", "Bureau One", 1))))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		products, err := newTestClient(server.URL).FetchAllProducts(context.Background())

		require.Error(t, err)
		assert.Nil(t, products, "부분 수집 결과를 반환해서는 안 됨")
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})

	t.Run("실패: GraphQL errors 배열 응답", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"errors":[{"message":"Throttled"}]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchAllProducts(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
		assert.Contains(t, err.Error(), "Throttled")
	})
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, "123456", NumericID("gid://shopify/ProductVariant/123456"))
	assert.Equal(t, "raw-id", NumericID("raw-id"))
}
