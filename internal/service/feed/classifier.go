package feed

import (
	"strings"

	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
)

// Google Merchant 상품 분류 체계(google_product_category)에 사용되는 카테고리 문자열입니다.
//
// 참고: https://support.google.com/merchants/answer/6324436
const (
	// CategoryDesks 책상류 (기본 카테고리)
	CategoryDesks = "Furniture > Office Furniture > Desks"

	// CategoryOfficeChairs 사무용 의자류
	CategoryOfficeChairs = "Furniture > Chairs > Office Chairs"

	// CategoryMonitorMounts 모니터 암/마운트류
	CategoryMonitorMounts = "Electronics > Electronics Accessories > Monitor Accessories"
)

// 카테고리 분기별 키워드 집합입니다.
// 상품 유형, 태그, 상품명에 대해 소문자 부분 문자열 검사를 수행합니다.
var (
	deskKeywords    = []string{"desk", "bureau", "zit-sta", "werkplek"}
	chairKeywords   = []string{"chair", "stoel", "kruk"}
	monitorKeywords = []string{"monitor", "monitorarm", "beugel"}
)

// Classify 상품을 Google Merchant 카테고리로 분류합니다.
//
// 상품 유형, 태그, 상품명을 소문자로 변환한 후 분기별 키워드 집합과
// 부분 문자열 매칭을 수행하며, 첫 번째로 일치하는 분기의 카테고리를 반환합니다.
//
// 분기 순서: 책상 → 의자 → 모니터 암 → 기본값(책상)
//
// 주의: 어떤 분기에도 일치하지 않는 상품은 책상 카테고리로 분류됩니다.
// 기본값이 첫 번째 분기와 동일하므로, 분류되지 않은 상품은 조용히 책상으로
// 라벨링됩니다. 상품 등록 시 유형/태그를 올바르게 지정해야 합니다.
//
// 항상 값을 반환하며 에러 경로가 없는 순수 함수입니다.
func Classify(product *catalog.Product) string {
	haystack := strings.ToLower(product.ProductType + " " + strings.Join(product.Tags, " ") + " " + product.Title)

	if containsAny(haystack, deskKeywords) {
		return CategoryDesks
	}
	if containsAny(haystack, chairKeywords) {
		return CategoryOfficeChairs
	}
	if containsAny(haystack, monitorKeywords) {
		return CategoryMonitorMounts
	}

	return CategoryDesks
}

// containsAny haystack에 키워드 중 하나라도 포함되어 있는지 확인합니다.
func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
