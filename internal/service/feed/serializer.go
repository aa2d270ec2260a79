package feed

import (
	"fmt"
	"strings"
)

// googleNamespace Google Merchant 피드 속성이 정의된 XML 네임스페이스입니다.
const googleNamespace = "http://base.google.com/ns/1.0"

// xmlEscaper CDATA로 감싸지 않는 요소 본문에 적용하는 최소 XML 이스케이프입니다.
// CDN 이미지 URL의 쿼리 문자열에 포함된 &가 그대로 출력되면 문서 전체가
// 파싱 불가능해집니다.
var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Serializer 피드 아이템 목록을 RSS 2.0 + Google 네임스페이스 XML 문서로 직렬화합니다.
//
// 모든 텍스트 필드는 CDATA로 감싸 이스케이프 문제를 회피합니다.
// 아이템 순서는 입력 순서를 그대로 유지하며(정렬 없음), 같은 입력에 대해
// 항상 바이트 단위로 동일한 출력을 생성합니다.
type Serializer struct {
	Title       string // 채널 제목
	Link        string // 채널 링크 (공개 스토어 주소)
	Description string // 채널 설명
}

// Serialize 피드 아이템 목록을 XML 문서로 변환합니다.
//
// 선택 필드(GTIN, MPN, Color, Material, Size, ShippingWeight)는 값이 있을 때만
// 출력되고, 필수 필드는 비어있어도 항상 출력됩니다.
func (s *Serializer) Serialize(items []*Item) []byte {
	var sb strings.Builder

	// 아이템당 대략적인 직렬화 크기를 가정하여 재할당을 줄인다.
	sb.Grow(1024 + len(items)*2048)

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<rss version="2.0" xmlns:g="%s">`+"\n", googleNamespace))
	sb.WriteString("<channel>\n")
	writeCDATAElement(&sb, "title", s.Title)
	writeElement(&sb, "link", s.Link)
	writeCDATAElement(&sb, "description", s.Description)

	for _, item := range items {
		s.writeItem(&sb, item)
	}

	sb.WriteString("</channel>\n")
	sb.WriteString("</rss>\n")

	return []byte(sb.String())
}

// writeItem 피드 아이템 1건을 <item> 요소로 출력합니다.
func (s *Serializer) writeItem(sb *strings.Builder, item *Item) {
	sb.WriteString("<item>\n")

	writeCDATAElement(sb, "g:id", item.ID)
	writeCDATAElement(sb, "g:item_group_id", item.ItemGroupID)
	writeCDATAElement(sb, "title", item.Title)
	writeCDATAElement(sb, "description", item.Description)
	writeElement(sb, "link", item.Link)
	writeElement(sb, "g:image_link", item.ImageLink)
	for _, imageURL := range item.AdditionalImageLinks {
		writeElement(sb, "g:additional_image_link", imageURL)
	}
	writeElement(sb, "g:price", item.Price)
	writeElement(sb, "g:availability", item.Availability)
	writeElement(sb, "g:condition", item.Condition)
	writeCDATAElement(sb, "g:brand", item.Brand)
	writeCDATAElement(sb, "g:google_product_category", item.GoogleProductCategory)
	writeCDATAElement(sb, "g:product_type", item.ProductType)

	if item.GTIN != "" {
		writeCDATAElement(sb, "g:gtin", item.GTIN)
	}
	if item.MPN != "" {
		writeCDATAElement(sb, "g:mpn", item.MPN)
	}
	writeElement(sb, "g:identifier_exists", yesNo(item.IdentifierExists))

	if item.Color != "" {
		writeCDATAElement(sb, "g:color", item.Color)
	}
	if item.Material != "" {
		writeCDATAElement(sb, "g:material", item.Material)
	}
	if item.Size != "" {
		writeCDATAElement(sb, "g:size", item.Size)
	}
	if item.ShippingWeight != "" {
		writeElement(sb, "g:shipping_weight", item.ShippingWeight)
	}

	sb.WriteString("<g:shipping>\n")
	writeElement(sb, "g:country", item.Shipping.Country)
	writeCDATAElement(sb, "g:service", item.Shipping.Service)
	writeElement(sb, "g:price", item.Shipping.Price)
	sb.WriteString("</g:shipping>\n")

	sb.WriteString("</item>\n")
}

// writeElement XML 요소를 최소 이스케이프(&, <, >)를 적용하여 출력합니다.
func writeElement(sb *strings.Builder, name, value string) {
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString(">")
	sb.WriteString(xmlEscaper.Replace(value))
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">\n")
}

// writeCDATAElement 자유 텍스트 필드를 CDATA 섹션으로 감싸서 출력합니다.
func writeCDATAElement(sb *strings.Builder, name, value string) {
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString("><![CDATA[")
	// CDATA 종료 시퀀스가 본문에 포함된 경우 섹션을 분할하여 무력화한다.
	sb.WriteString(strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>"))
	sb.WriteString("]]></")
	sb.WriteString(name)
	sb.WriteString(">\n")
}

// yesNo 불리언을 Google Merchant 표기값으로 변환합니다.
func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
