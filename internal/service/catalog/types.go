package catalog

// Product 커머스 백엔드에서 조회한 상품 1건을 나타내는 도메인 모델입니다.
//
// 피드 생성 파이프라인의 입력으로 사용되며, Storefront API 응답의 GraphQL 노드 구조를
// 평탄화한 형태입니다. 하나의 상품은 1개 이상의 변형(Variant)을 가집니다.
type Product struct {
	ID              string   // 상품 고유 ID (GraphQL Global ID)
	Handle          string   // URL 경로에 사용되는 상품 식별자 (예: "bureau-one-eiken")
	Title           string   // 상품명
	DescriptionHTML string   // HTML 형식의 상품 설명
	ProductType     string   // 머천트가 지정한 상품 유형 (예: "Zit-sta bureau")
	Vendor          string   // 공급자명
	Tags            []string // 상품에 부여된 태그 목록
	Images          []Image  // 상품 이미지 목록 (첫 번째가 대표 이미지)
	Variants        []Variant
}

// Variant 색상, 크기 등 옵션 조합별로 구분되는 상품 변형입니다.
// Google Merchant 피드에서는 변형 1개가 피드 아이템 1개로 변환됩니다.
type Variant struct {
	ID               string // 변형 고유 ID (GraphQL Global ID)
	SKU              string // 재고 관리 코드 (비어있을 수 있음)
	Title            string // 변형명 (예: "160x80 / Eiken")
	Price            Price
	AvailableForSale bool
	Weight           float64 // 배송 무게 (0이면 미지정)
	WeightUnit       string  // 무게 단위 (예: "KILOGRAMS")
	SelectedOptions  []SelectedOption
	Image            *Image // 변형 전용 이미지 (없으면 상품 대표 이미지 사용)
}

// SelectedOption 변형을 구성하는 옵션 1개의 이름/값 쌍입니다. (예: Kleur=Eiken)
type SelectedOption struct {
	Name  string
	Value string
}

// Price 통화 코드가 포함된 가격 정보입니다.
type Price struct {
	Amount       string // 소수점이 포함된 금액 문자열 (예: "599.00")
	CurrencyCode string // ISO 4217 통화 코드 (예: "EUR")
}

// Image 상품 또는 변형의 이미지 정보입니다.
type Image struct {
	URL     string
	AltText string
}

// NumericID GraphQL Global ID(예: "gid://shopify/ProductVariant/123456")에서
// 마지막 경로 요소인 숫자 ID를 추출합니다. 형식이 다르면 입력을 그대로 반환합니다.
func NumericID(gid string) string {
	for i := len(gid) - 1; i >= 0; i-- {
		if gid[i] == '/' {
			return gid[i+1:]
		}
	}
	return gid
}
