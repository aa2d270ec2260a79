package feed

import (
	"strings"

	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
)

// minMPNLength SKU를 MPN(제조사 부품 번호)으로 인정하는 최소 길이입니다.
// 이보다 짧은 SKU는 내부 관리용 코드로 간주하여 식별자로 사용하지 않습니다.
const minMPNLength = 8

// Identifier 피드 아이템의 상품 식별자 정보입니다.
//
// Google Merchant는 GTIN 또는 MPN이 없는 상품에 대해 identifier_exists=false를
// 명시하도록 요구합니다. 현재 카탈로그에는 GTIN 데이터가 존재하지 않으므로
// GTIN 필드는 모델링만 되어있고 항상 비어있습니다.
type Identifier struct {
	MPN              string
	GTIN             string
	IdentifierExists bool
}

// ResolveIdentifier 변형의 SKU로부터 피드 식별자 정보를 도출합니다.
//
// 규칙: 공백을 제거한 SKU의 길이가 8자 이상이면 MPN으로 취급하고
// identifier_exists를 true로 설정합니다. 그렇지 않으면 식별자 없음으로 처리합니다.
func ResolveIdentifier(variant *catalog.Variant) Identifier {
	sku := strings.TrimSpace(variant.SKU)
	if len(sku) >= minMPNLength {
		return Identifier{MPN: sku, IdentifierExists: true}
	}
	return Identifier{}
}
