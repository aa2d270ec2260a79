package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/danieltjaarda/stylo-sub000/internal/service/catalog"
	"github.com/danieltjaarda/stylo-sub000/pkg/strutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// defaultVariantTitle 옵션이 하나뿐인 상품의 변형에 부여되는 센티널 제목입니다.
	// 이 값은 사용자에게 의미가 없으므로 제목/설명 생성 시 무시합니다.
	defaultVariantTitle = "Default Title"

	// maxTitleLength Google Merchant가 허용하는 상품명의 최대 길이입니다.
	maxTitleLength = 150

	// maxDescriptionLength Google Merchant가 허용하는 상품 설명의 최대 길이입니다.
	maxDescriptionLength = 5000

	// ergonomicAdjective 에르고노믹 태그가 있는 상품의 제목 앞에 붙이는 수식어입니다.
	ergonomicAdjective = "Ergonomische"
)

// 선택 옵션 이름 매칭에 사용되는 키워드 집합입니다. (네덜란드어/영어 혼용 카탈로그 대응)
var (
	sizeOptionKeywords  = []string{"size", "grootte", "tafelblad"}
	colorOptionKeywords = []string{"color", "kleur"}
)

// descriptionKeywords 설명 앞에 강조 문구로 추가할 수 있는 태그 키워드 목록입니다.
// 상품 태그에 존재하면서 설명 본문에 아직 언급되지 않은 키워드만 사용됩니다.
var descriptionKeywords = []string{"ergonomic", "office", "home-office", "quality"}

// BuildTitle 상품과 변형 정보로부터 피드 아이템의 제목을 생성합니다.
//
// 생성 규칙 (순서대로 적용):
//  1. 상품명에서 시작
//  2. 변형 제목이 센티널("Default Title")이 아니면 " - {변형 제목}" 추가
//  3. 크기 계열 옵션(size/grootte/tafelblad)의 값이 아직 제목에 없으면 추가
//  4. 색상 계열 옵션(color/kleur)의 값이 아직 제목에 없으면 추가
//  5. 에르고노믹 태그가 있고 제목에 해당 단어가 없으면 수식어를 앞에 추가
//  6. 150자로 절단
//
// 같은 입력에 대해 항상 같은 출력을 반환하는 순수 함수입니다.
func BuildTitle(product *catalog.Product, variant *catalog.Variant) string {
	title := product.Title

	if variant.Title != "" && variant.Title != defaultVariantTitle {
		title += " - " + variant.Title
	}

	if value := findOptionValue(variant, sizeOptionKeywords); value != "" && !strutil.ContainsFold(title, value) {
		title += " " + value
	}
	if value := findOptionValue(variant, colorOptionKeywords); value != "" && !strutil.ContainsFold(title, value) {
		title += " " + value
	}

	if hasErgonomicTag(product) && !strutil.ContainsFold(title, "ergono") {
		title = ergonomicAdjective + " " + title
	}

	return strutil.Truncate(title, maxTitleLength)
}

// BuildDescription 상품과 변형 정보로부터 피드 아이템의 설명을 생성합니다.
//
// 생성 규칙 (순서대로 적용):
//  1. HTML 설명에서 태그와 줄바꿈을 제거하고 공백을 정규화
//  2. 변형 제목이 센티널이 아니면 "{변형 제목} variant. "를 앞에 추가
//  3. 고정 키워드 목록 중 상품 태그에 존재하면서 설명에 아직 언급되지 않은
//     키워드를 대문자화하여 앞에 추가
//  4. 5000자로 절단
//
// 같은 입력에 대해 항상 같은 출력을 반환하는 순수 함수입니다.
func BuildDescription(product *catalog.Product, variant *catalog.Variant) string {
	description := stripHTML(product.DescriptionHTML)

	if variant.Title != "" && variant.Title != defaultVariantTitle {
		description = variant.Title + " variant. " + description
	}

	caser := cases.Title(language.English)
	for i := len(descriptionKeywords) - 1; i >= 0; i-- {
		keyword := descriptionKeywords[i]
		if hasTag(product, keyword) && !strutil.ContainsFold(description, keyword) {
			description = caser.String(strings.ReplaceAll(keyword, "-", " ")) + ". " + description
		}
	}

	return strutil.Truncate(description, maxDescriptionLength)
}

// stripHTML HTML 문서에서 순수 텍스트만 추출하고 공백을 정규화합니다.
// HTML 파싱에 실패하면 정규식 기반의 태그 제거로 대체합니다.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strutil.NormalizeSpaces(strutil.StripHTMLTags(html))
	}
	return strutil.NormalizeSpaces(doc.Text())
}

// findOptionValue 이름이 키워드 집합과 일치하는 첫 번째 선택 옵션의 값을 반환합니다.
func findOptionValue(variant *catalog.Variant, keywords []string) string {
	for _, option := range variant.SelectedOptions {
		name := strings.ToLower(option.Name)
		for _, keyword := range keywords {
			if strings.Contains(name, keyword) {
				return option.Value
			}
		}
	}
	return ""
}

// hasErgonomicTag 상품에 에르고노믹 계열 태그가 있는지 확인합니다.
func hasErgonomicTag(product *catalog.Product) bool {
	return hasTag(product, "ergonomic") || hasTag(product, "ergonomisch")
}

// hasTag 상품 태그 목록에 지정된 태그가 있는지 확인합니다. (대소문자 무시)
func hasTag(product *catalog.Product, tag string) bool {
	for _, t := range product.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
