package catalog

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
	"github.com/danieltjaarda/stylo-sub000/internal/pkg/fetch"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

const (
	// component 로깅용 컴포넌트 이름
	component = "catalog"

	// defaultPageSize 1회 API 요청 시 조회할 상품의 최대 개수입니다.
	// Storefront API는 요청당 최대 250개까지 허용하므로, 전체 수집 시간을 줄이기 위해
	// 허용 최대치인 250으로 설정합니다.
	defaultPageSize = 250

	// maxPages 페이지네이션의 안전 상한선입니다.
	// 커서가 순환하는 API 오동작 시 무한 루프를 방지합니다.
	maxPages = 200

	// variantsPerProduct 상품 1건당 조회할 변형의 최대 개수입니다.
	variantsPerProduct = 100

	// imagesPerProduct 상품 1건당 조회할 이미지의 최대 개수입니다.
	imagesPerProduct = 10
)

// productsQuery 상품 목록을 커서 기반으로 조회하는 Storefront GraphQL 쿼리입니다.
//
// 피드 생성에 필요한 필드만 선택적으로 조회하여 응답 크기를 줄입니다.
// 변형(variants)과 이미지(images)는 GraphQL Connection 형태로 중첩되어 반환됩니다.
var productsQuery = fmt.Sprintf(`
query FeedProducts($pageSize: Int!, $cursor: String) {
  products(first: $pageSize, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        handle
        title
        descriptionHtml
        productType
        vendor
        tags
        images(first: %d) {
          edges {
            node {
              url
              altText
            }
          }
        }
        variants(first: %d) {
          edges {
            node {
              id
              sku
              title
              availableForSale
              weight
              weightUnit
              priceV2 {
                amount
                currencyCode
              }
              selectedOptions {
                name
                value
              }
              image {
                url
                altText
              }
            }
          }
        }
      }
    }
  }
}`, imagesPerProduct, variantsPerProduct)

// Client Storefront GraphQL API를 통해 상품 카탈로그를 조회하는 클라이언트입니다.
//
// 전체 상품 목록은 커서 기반 페이지네이션으로 수집되며, 중간 페이지 조회가
// 한 번이라도 실패하면 전체 조회를 중단하고 에러를 반환합니다.
// 불완전한 카탈로그로 피드를 생성하면 Google Merchant에 등록된 상품이
// 일시적으로 사라지는 사고로 이어지기 때문입니다.
type Client struct {
	jsonClient *fetch.JSONClient

	endpoint string
	token    string
	pageSize int
}

// NewClient Client 인스턴스를 생성합니다.
//
// 매개변수:
//   - jsonClient: HTTP 요청을 수행할 JSON 클라이언트 (재시도 정책 포함 가능)
//   - endpoint: Storefront GraphQL API의 전체 엔드포인트 URL
//   - token: Storefront API 접근 토큰
func NewClient(jsonClient *fetch.JSONClient, endpoint, token string) *Client {
	return &Client{
		jsonClient: jsonClient,

		endpoint: endpoint,
		token:    token,
		pageSize: defaultPageSize,
	}
}

// graphQLRequest GraphQL API 요청 본문 구조체입니다.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphQLError GraphQL 응답의 errors 배열에 포함되는 에러 1건입니다.
type graphQLError struct {
	Message string `json:"message"`
}

// productsResponse 상품 목록 조회 쿼리의 최상위 응답 구조체입니다.
//
// GraphQL은 전송 수준 오류가 없어도 본문의 errors 배열로 실패를 보고할 수 있으므로,
// Data와 Errors를 모두 확인해야 합니다.
type productsResponse struct {
	Data struct {
		Products struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// productNode API 응답에서 상품 1건의 원시(Raw) 데이터를 담는 구조체입니다.
//
// 이 구조체는 GraphQL JSON 응답을 그대로 매핑하는 목적으로만 사용되며,
// parseProduct 함수를 통해 Connection 구조가 평탄화된 도메인 모델(*Product)로 변환됩니다.
type productNode struct {
	ID              string   `json:"id"`
	Handle          string   `json:"handle"`
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"descriptionHtml"`
	ProductType     string   `json:"productType"`
	Vendor          string   `json:"vendor"`
	Tags            []string `json:"tags"`
	Images          struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type imageNode struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type variantNode struct {
	ID               string `json:"id"`
	SKU              string `json:"sku"`
	Title            string `json:"title"`
	AvailableForSale bool    `json:"availableForSale"`
	Weight           float64 `json:"weight"`
	WeightUnit       string  `json:"weightUnit"`
	PriceV2          struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"priceV2"`
	SelectedOptions []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
	Image *imageNode `json:"image"`
}

// FetchAllProducts 커서 기반 페이지네이션으로 전체 상품 카탈로그를 수집합니다.
//
// 페이지 조회가 한 번이라도 실패하면 지금까지 수집한 결과를 버리고 에러를 반환합니다.
// (부분 카탈로그로 피드를 생성하지 않기 위한 의도적인 동작)
//
// 반환값:
//   - []*Product: 전체 상품 목록 (카탈로그의 노출 순서 유지)
//   - error: 네트워크 오류, API 서버 오류, GraphQL 오류 시 에러 반환
func (c *Client) FetchAllProducts(ctx context.Context) ([]*Product, error) {
	var products []*Product
	var cursor string

	for page := 1; page <= maxPages; page++ {
		resp, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "상품 카탈로그 %d페이지 조회에 실패했습니다", page)
		}

		for _, edge := range resp.Data.Products.Edges {
			products = append(products, parseProduct(&edge.Node))
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"page":           page,
			"page_items":     len(resp.Data.Products.Edges),
			"total_products": len(products),
		}).Debug("상품 카탈로그 페이지 수집 완료")

		if !resp.Data.Products.PageInfo.HasNextPage {
			return products, nil
		}
		cursor = resp.Data.Products.PageInfo.EndCursor
	}

	return nil, apperrors.Newf(apperrors.ExecutionFailed, "상품 카탈로그 페이지 수가 안전 상한선(%d)을 초과했습니다", maxPages)
}

// fetchPage Storefront GraphQL API에 1회 HTTP 요청을 보내어 특정 페이지의 상품 데이터를 가져옵니다.
//
// 인증 헤더(Storefront Access Token)를 자동으로 설정하며,
// GraphQL 본문의 errors 배열도 이 단계에서 실패로 변환합니다.
func (c *Client) fetchPage(ctx context.Context, cursor string) (*productsResponse, error) {
	variables := map[string]any{
		"pageSize": c.pageSize,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	header := http.Header{
		"X-Shopify-Storefront-Access-Token": []string{c.token},
	}

	var resp = &productsResponse{}
	reqBody := &graphQLRequest{Query: productsQuery, Variables: variables}
	if err := c.jsonClient.Do(ctx, http.MethodPost, c.endpoint, reqBody, header, resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "GraphQL 쿼리가 실패했습니다: %s", resp.Errors[0].Message)
	}

	return resp, nil
}

// parseProduct API 응답의 원시 상품 데이터(productNode)를 도메인 모델(*Product)로 변환합니다.
// GraphQL Connection(edges/node) 구조를 평탄한 슬라이스로 펼칩니다.
func parseProduct(node *productNode) *Product {
	product := &Product{
		ID:              node.ID,
		Handle:          node.Handle,
		Title:           node.Title,
		DescriptionHTML: node.DescriptionHTML,
		ProductType:     node.ProductType,
		Vendor:          node.Vendor,
		Tags:            node.Tags,
	}

	for _, edge := range node.Images.Edges {
		product.Images = append(product.Images, Image{
			URL:     edge.Node.URL,
			AltText: edge.Node.AltText,
		})
	}

	for _, edge := range node.Variants.Edges {
		variant := Variant{
			ID:               edge.Node.ID,
			SKU:              edge.Node.SKU,
			Title:            edge.Node.Title,
			AvailableForSale: edge.Node.AvailableForSale,
			Weight:           edge.Node.Weight,
			WeightUnit:       edge.Node.WeightUnit,
			Price: Price{
				Amount:       edge.Node.PriceV2.Amount,
				CurrencyCode: edge.Node.PriceV2.CurrencyCode,
			},
		}

		for _, option := range edge.Node.SelectedOptions {
			variant.SelectedOptions = append(variant.SelectedOptions, SelectedOption{
				Name:  option.Name,
				Value: option.Value,
			})
		}

		if edge.Node.Image != nil {
			variant.Image = &Image{
				URL:     edge.Node.Image.URL,
				AltText: edge.Node.Image.AltText,
			}
		}

		product.Variants = append(product.Variants, variant)
	}

	return product
}
