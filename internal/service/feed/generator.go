package feed

import (
	"context"
	"fmt"

	"github.com/danieltjaarda/stylo-sub000/internal/config"
	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
	applog "github.com/danieltjaarda/stylo-sub000/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "feed"

// CatalogFetcher 전체 상품 카탈로그를 조회하는 인터페이스입니다. (테스트 대역 주입용)
type CatalogFetcher interface {
	FetchAllProducts(ctx context.Context) ([]*catalog.Product, error)
}

// Generator 카탈로그 조회부터 XML 직렬화까지 피드 생성 파이프라인 전체를 담당합니다.
//
// 피드는 요청마다 새로 생성되며 캐싱되지 않습니다. 카탈로그 조회가 실패하면
// 부분 피드를 생성하지 않고 에러를 그대로 전파합니다.
type Generator struct {
	catalogFetcher CatalogFetcher

	builder    *ItemBuilder
	serializer *Serializer
}

// NewGenerator Generator 인스턴스를 생성합니다.
func NewGenerator(catalogFetcher CatalogFetcher, appConfig *config.AppConfig) *Generator {
	return &Generator{
		catalogFetcher: catalogFetcher,

		builder: &ItemBuilder{
			Brand:         appConfig.Feed.Brand,
			Currency:      appConfig.Feed.Currency,
			PublicBaseURL: appConfig.Shop.PublicBaseURL,
			Shipping: Shipping{
				Country: appConfig.Feed.Shipping.Country,
				Service: appConfig.Feed.Shipping.Service,
				Price:   fmt.Sprintf("%s %s", appConfig.Feed.Shipping.Price, appConfig.Feed.Currency),
			},
		},
		serializer: &Serializer{
			Title:       appConfig.Feed.Title,
			Link:        appConfig.Shop.PublicBaseURL,
			Description: appConfig.Feed.Description,
		},
	}
}

// Generate 전체 카탈로그를 조회하여 Google Merchant 피드 XML을 생성합니다.
//
// 반환값:
//   - []byte: 피드 XML 문서
//   - int: 피드에 포함된 아이템(변형) 수
//   - error: 카탈로그 조회 실패 시 에러 반환 (부분 피드 없음)
func (g *Generator) Generate(ctx context.Context) ([]byte, int, error) {
	products, err := g.catalogFetcher.FetchAllProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	var items []*Item
	for _, product := range products {
		items = append(items, g.builder.BuildItems(product)...)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"products": len(products),
		"items":    len(items),
	}).Debug("피드 생성 완료")

	return g.serializer.Serialize(items), len(items), nil
}
