package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
)

const (
	// syntheticIDPrefix SKU가 없는 변형에 부여하는 합성 피드 식별자의 접두사입니다.
	syntheticIDPrefix = "STYLO"

	// maxAdditionalImages 대표 이미지 외에 추가로 포함할 수 있는 이미지의 최대 개수입니다.
	maxAdditionalImages = 2

	// 재고 상태 표기값 (Google Merchant availability 속성)
	availabilityInStock    = "in stock"
	availabilityOutOfStock = "out of stock"

	// conditionNew 모든 상품에 고정으로 적용되는 상품 상태입니다. (신품만 판매)
	conditionNew = "new"
)

// materialOptionKeywords 재질 계열 옵션 이름 매칭에 사용되는 키워드 집합입니다.
var materialOptionKeywords = []string{"material", "materiaal"}

// Item Google Merchant 피드의 아이템 1건입니다. 변형(Variant) 1개가 아이템 1개로 변환됩니다.
//
// 요청마다 새로 계산되는 휘발성 데이터이며, 직렬화 후 즉시 폐기됩니다. (캐싱 없음)
// 선택 필드(GTIN, MPN, Color, Material, Size, ShippingWeight)는 값이 있을 때만
// XML에 출력되고, 필수 필드는 비어있어도 항상 출력됩니다.
type Item struct {
	ID                    string   // 피드 식별자 (SKU 또는 합성 ID)
	ItemGroupID           string   // 부모 상품 ID (변형 그룹핑용)
	Title                 string
	Description           string
	Link                  string   // 상품 상세 페이지 URL (변형 선택 쿼리 포함)
	ImageLink             string   // 대표 이미지 URL
	AdditionalImageLinks  []string // 추가 이미지 URL (최대 2개)
	Price                 string   // "금액 통화" 형식 (예: "599.00 EUR")
	Availability          string
	Condition             string
	Brand                 string
	GoogleProductCategory string
	ProductType           string // 머천트 지정 상품 유형 (원본 그대로 전달)
	GTIN                  string
	MPN                   string
	IdentifierExists      bool
	Color                 string
	Material              string
	Size                  string
	ShippingWeight        string // "무게 단위" 형식 (예: "32.5 kg")
	Shipping              Shipping
}

// Shipping 피드의 모든 아이템에 일괄 적용되는 고정 배송 정보입니다.
type Shipping struct {
	Country string
	Service string
	Price   string // "금액 통화" 형식
}

// ItemBuilder 카탈로그 상품을 피드 아이템으로 변환하는 빌더입니다.
// 머천트 설정(브랜드, 통화, 공개 주소, 배송 정책)을 보관하며 변환 시 적용합니다.
type ItemBuilder struct {
	Brand         string
	Currency      string
	PublicBaseURL string
	Shipping      Shipping
}

// BuildItems 상품의 모든 변형을 피드 아이템으로 변환합니다.
// 아이템 순서는 카탈로그의 변형 노출 순서를 그대로 유지합니다.
func (b *ItemBuilder) BuildItems(product *catalog.Product) []*Item {
	items := make([]*Item, 0, len(product.Variants))
	for i := range product.Variants {
		items = append(items, b.buildItem(product, &product.Variants[i]))
	}
	return items
}

// buildItem 변형 1개를 피드 아이템으로 변환합니다.
func (b *ItemBuilder) buildItem(product *catalog.Product, variant *catalog.Variant) *Item {
	productID := catalog.NumericID(product.ID)
	variantID := catalog.NumericID(variant.ID)
	identifier := ResolveIdentifier(variant)

	item := &Item{
		ID:                    feedID(variant, productID, variantID),
		ItemGroupID:           productID,
		Title:                 BuildTitle(product, variant),
		Description:           BuildDescription(product, variant),
		Link:                  fmt.Sprintf("%s/products/%s?variant=%s", strings.TrimRight(b.PublicBaseURL, "/"), product.Handle, variantID),
		Price:                 formatPrice(variant.Price.Amount, priceCurrency(variant.Price.CurrencyCode, b.Currency)),
		Availability:          availability(variant.AvailableForSale),
		Condition:             conditionNew,
		Brand:                 b.Brand,
		GoogleProductCategory: Classify(product),
		ProductType:           product.ProductType,
		GTIN:                  identifier.GTIN,
		MPN:                   identifier.MPN,
		IdentifierExists:      identifier.IdentifierExists,
		Color:                 findOptionValue(variant, colorOptionKeywords),
		Material:              findOptionValue(variant, materialOptionKeywords),
		Size:                  findOptionValue(variant, sizeOptionKeywords),
		ShippingWeight:        shippingWeight(variant),
		Shipping:              b.Shipping,
	}

	item.ImageLink, item.AdditionalImageLinks = selectImages(product, variant)

	return item
}

// feedID 피드 식별자를 결정합니다. SKU가 있으면 그대로 사용하고,
// 없으면 "PREFIX-상품ID-변형ID" 형식의 합성 식별자를 생성합니다.
func feedID(variant *catalog.Variant, productID, variantID string) string {
	if sku := strings.TrimSpace(variant.SKU); sku != "" {
		return sku
	}
	return fmt.Sprintf("%s-%s-%s", syntheticIDPrefix, productID, variantID)
}

// selectImages 대표 이미지와 추가 이미지 목록을 선정합니다.
//
// 변형 전용 이미지가 있으면 대표 이미지로 사용하고, 없으면 상품의 첫 번째 이미지를
// 사용합니다. 추가 이미지는 대표 이미지를 제외한 상품 이미지 중 최대 2개입니다.
func selectImages(product *catalog.Product, variant *catalog.Variant) (string, []string) {
	var primary string
	if variant.Image != nil && variant.Image.URL != "" {
		primary = variant.Image.URL
	} else if len(product.Images) > 0 {
		primary = product.Images[0].URL
	}

	var additional []string
	for _, image := range product.Images {
		if image.URL == primary {
			continue
		}
		additional = append(additional, image.URL)
		if len(additional) == maxAdditionalImages {
			break
		}
	}

	return primary, additional
}

// formatPrice 금액을 소수점 2자리와 통화 코드가 결합된 피드 가격 형식으로 변환합니다.
// 금액 파싱에 실패하면 원본 문자열을 그대로 사용합니다.
func formatPrice(amount, currency string) string {
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return fmt.Sprintf("%s %s", amount, currency)
	}
	return fmt.Sprintf("%.2f %s", value, currency)
}

// priceCurrency 변형에 통화 코드가 있으면 우선 사용하고, 없으면 머천트 기본 통화를 사용합니다.
func priceCurrency(variantCurrency, defaultCurrency string) string {
	if variantCurrency != "" {
		return variantCurrency
	}
	return defaultCurrency
}

// availability 판매 가능 여부를 Google Merchant 표기값으로 변환합니다.
func availability(availableForSale bool) string {
	if availableForSale {
		return availabilityInStock
	}
	return availabilityOutOfStock
}

// shippingWeight 변형의 무게 정보를 피드 표기 형식으로 변환합니다. 무게가 없으면 빈 문자열을 반환합니다.
func shippingWeight(variant *catalog.Variant) string {
	if variant.Weight <= 0 {
		return ""
	}
	return fmt.Sprintf("%g %s", variant.Weight, weightUnitLabel(variant.WeightUnit))
}

// weightUnitLabel API의 무게 단위 열거값을 피드 표기 단위로 변환합니다.
func weightUnitLabel(unit string) string {
	switch strings.ToUpper(unit) {
	case "KILOGRAMS", "":
		return "kg"
	case "GRAMS":
		return "g"
	case "POUNDS":
		return "lb"
	case "OUNCES":
		return "oz"
	default:
		return strings.ToLower(unit)
	}
}
