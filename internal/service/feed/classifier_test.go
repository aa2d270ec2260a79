package feed

import (
	"testing"

	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		product  *catalog.Product
		expected string
	}{
		{
			name:     "상품 유형의 책상 키워드",
			product:  &catalog.Product{ProductType: "Zit-sta bureau"},
			expected: CategoryDesks,
		},
		{
			name:     "영문 책상 키워드",
			product:  &catalog.Product{ProductType: "Standing Desk"},
			expected: CategoryDesks,
		},
		{
			name:     "의자 키워드",
			product:  &catalog.Product{ProductType: "Bureaustoel"},
			expected: CategoryOfficeChairs,
		},
		{
			name:     "태그의 의자 키워드",
			product:  &catalog.Product{ProductType: "", Tags: []string{"ergonomische-stoel"}},
			expected: CategoryOfficeChairs,
		},
		{
			name:     "모니터 암 키워드",
			product:  &catalog.Product{Title: "Monitorarm Duo"},
			expected: CategoryMonitorMounts,
		},
		{
			name:     "대소문자 무시 매칭",
			product:  &catalog.Product{ProductType: "OFFICE CHAIR"},
			expected: CategoryOfficeChairs,
		},
		{
			name:     "분류 불가 상품은 책상 카테고리로 폴백",
			product:  &catalog.Product{ProductType: "Accessoire", Title: "Kabelgoot"},
			expected: CategoryDesks,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.product))
		})
	}
}

// TestClassify_FallbackEqualsDeskCategory 분류되지 않은 상품과 책상 상품이
// 항상 같은 카테고리로 분류되는지 검증합니다. (폴백이 첫 번째 분기와 동일)
func TestClassify_FallbackEqualsDeskCategory(t *testing.T) {
	desk := Classify(&catalog.Product{ProductType: "Bureau"})
	unclassified := Classify(&catalog.Product{ProductType: "Onbekend product"})

	assert.Equal(t, desk, unclassified)
}
