// Package blocks turns free-form lesson text into typed display blocks.
package blocks

import "strings"

// Kind identifies the shape of a Block.
type Kind string

const (
	KindHeading      Kind = "heading"
	KindParagraph    Kind = "paragraph"
	KindCode         Kind = "code"
	KindInlineCode   Kind = "inline_code"
	KindBulletList   Kind = "bullet_list"
	KindNumberedList Kind = "numbered_list"
)

// Style marks how a span of paragraph text is rendered.
type Style string

const (
	StylePlain Style = "plain"
	StyleBold  Style = "bold"
	StyleCode  Style = "code"
)

// Span is a run of text within a paragraph.
type Span struct {
	Style Style  `json:"style"`
	Text  string `json:"text"`
}

// Block is one classified paragraph of lesson content.
//
// Only the fields relevant to Kind are set: Text for headings and code
// blocks, Spans for paragraphs and inline-code paragraphs, Items for lists.
type Block struct {
	Kind  Kind     `json:"type"`
	Text  string   `json:"text,omitempty"`
	Spans []Span   `json:"spans,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Heading builds a heading block.
func Heading(text string) Block {
	return Block{Kind: KindHeading, Text: text}
}

// Code builds a fenced code block.
func Code(text string) Block {
	return Block{Kind: KindCode, Text: text}
}

// Paragraph builds a paragraph block from bold/plain spans.
func Paragraph(spans ...Span) Block {
	return Block{Kind: KindParagraph, Spans: spans}
}

// InlineCode builds a paragraph block containing code spans.
func InlineCode(spans ...Span) Block {
	return Block{Kind: KindInlineCode, Spans: spans}
}

// BulletList builds an unordered list block.
func BulletList(items ...string) Block {
	return Block{Kind: KindBulletList, Items: items}
}

// NumberedList builds an ordered list block.
func NumberedList(items ...string) Block {
	return Block{Kind: KindNumberedList, Items: items}
}

// Plain, Bold and CodeSpan are span constructors.
func Plain(text string) Span    { return Span{Style: StylePlain, Text: text} }
func Bold(text string) Span     { return Span{Style: StyleBold, Text: text} }
func CodeSpan(text string) Span { return Span{Style: StyleCode, Text: text} }

// PlainText returns the visible text of the block with formatting markers
// removed. List items are joined with newlines.
func (b Block) PlainText() string {
	switch b.Kind {
	case KindHeading, KindCode:
		return b.Text
	case KindParagraph, KindInlineCode:
		var sb strings.Builder
		for _, s := range b.Spans {
			sb.WriteString(s.Text)
		}
		return sb.String()
	case KindBulletList, KindNumberedList:
		return strings.Join(b.Items, "\n")
	}
	return ""
}
