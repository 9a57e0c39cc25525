package blocks

import (
	"regexp"
	"strings"
)

const (
	boldMarker  = "**"
	fenceMarker = "```"
	codeMarker  = "`"
	bulletMark  = "-"
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)
	numberedPrefix = regexp.MustCompile(`^\d+\.`)
	numberedStrip  = regexp.MustCompile(`^\d+\.\s*`)
)

// rule classifies a single paragraph, reporting false when it does not apply.
type rule struct {
	name  string
	match func(paragraph string) (Block, bool)
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{"heading", matchHeading},
	{"bold", matchBold},
	{"code_fence", matchCodeFence},
	{"inline_code", matchInlineCode},
	{"bullet_list", matchBulletList},
	{"numbered_list", matchNumberedList},
}

// Parse splits raw lesson text into paragraphs on blank lines and classifies
// each one independently. Blank paragraphs produce no block.
func Parse(raw string) []Block {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var out []Block
	for _, p := range paragraphBreak.Split(raw, -1) {
		if b, ok := Classify(p); ok {
			out = append(out, b)
		}
	}
	return out
}

// Classify turns one paragraph into a block. It reports false only for a
// blank paragraph; anything unrecognised becomes a plain paragraph.
func Classify(paragraph string) (Block, bool) {
	p := strings.TrimSpace(paragraph)
	if p == "" {
		return Block{}, false
	}
	for _, r := range rules {
		if b, ok := r.match(p); ok {
			return b, true
		}
	}
	return Paragraph(Plain(p)), true
}

func matchHeading(p string) (Block, bool) {
	if !wrapped(p, boldMarker) {
		return Block{}, false
	}
	inner := p[len(boldMarker) : len(p)-len(boldMarker)]
	if strings.TrimSpace(inner) == "" || strings.Contains(inner, boldMarker) {
		// "**a** and **b**" is inline bold, not a heading.
		return Block{}, false
	}
	return Heading(inner), true
}

func matchBold(p string) (Block, bool) {
	if !strings.Contains(p, boldMarker) {
		return Block{}, false
	}
	spans := alternate(p, boldMarker, StyleBold)
	if len(spans) == 0 {
		return Block{}, false
	}
	return Paragraph(spans...), true
}

func matchCodeFence(p string) (Block, bool) {
	if !wrapped(p, fenceMarker) {
		return Block{}, false
	}
	inner := strings.Trim(p[len(fenceMarker):len(p)-len(fenceMarker)], "\n")
	if strings.TrimSpace(inner) == "" {
		return Block{}, false
	}
	return Code(inner), true
}

func matchInlineCode(p string) (Block, bool) {
	if !strings.Contains(p, codeMarker) {
		return Block{}, false
	}
	spans := alternate(p, codeMarker, StyleCode)
	if len(spans) == 0 {
		return Block{}, false
	}
	return InlineCode(spans...), true
}

func matchBulletList(p string) (Block, bool) {
	if !strings.HasPrefix(p, bulletMark) {
		return Block{}, false
	}
	return BulletList(listItems(p, func(line string) string {
		return strings.TrimPrefix(line, bulletMark)
	})...), true
}

func matchNumberedList(p string) (Block, bool) {
	if !numberedPrefix.MatchString(p) {
		return Block{}, false
	}
	return NumberedList(listItems(p, func(line string) string {
		return numberedStrip.ReplaceAllString(line, "")
	})...), true
}

// wrapped reports whether p starts and ends with marker without the two
// occurrences overlapping.
func wrapped(p, marker string) bool {
	return len(p) >= 2*len(marker) &&
		strings.HasPrefix(p, marker) &&
		strings.HasSuffix(p, marker)
}

// alternate splits p on marker; even segments are plain, odd segments take
// the given style. Empty segments are dropped after parity is assigned.
func alternate(p, marker string, odd Style) []Span {
	parts := strings.Split(p, marker)
	spans := make([]Span, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		style := StylePlain
		if i%2 == 1 {
			style = odd
		}
		spans = append(spans, Span{Style: style, Text: part})
	}
	return spans
}

func listItems(p string, strip func(string) string) []string {
	var items []string
	for _, line := range strings.Split(p, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, strings.TrimSpace(strip(line)))
	}
	return items
}
