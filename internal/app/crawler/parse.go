package crawler

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

var (
	nonNumericRE = regexp.MustCompile(`[^\d,.]`)
	markupRE     = regexp.MustCompile(`<[^>]*>`)
	multiSpaceRE = regexp.MustCompile(`\s+`)

	currencyRE     = regexp.MustCompile(`(?i)TL`)
	openRangeRE    = regexp.MustCompile(`(?i)([\d.,]+)\s*[-–]?\s*(?:ve\s+)?[üu]zeri`)
	boundedRangeRE = regexp.MustCompile(`([\d.,]+)\s*[-–]\s*([\d.,]+)`)
)

// parseAmount reads a Turkish-formatted amount: period as thousands separator,
// comma as decimal separator, currency symbols and markup stripped. A plain
// "1234.56" with at most two decimals is also accepted. Unparseable input
// yields zero.
func parseAmount(s string) decimal.Decimal {
	s = nonNumericRE.ReplaceAllString(s, "")
	if s == "" {
		return decimal.Zero
	}

	if parts := strings.Split(s, ","); len(parts) == 2 {
		s = strings.ReplaceAll(parts[0], ".", "") + "." + parts[1]
	} else if dp := strings.Split(s, "."); !(len(dp) == 2 && len(dp[1]) <= 2) {
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseRate reads a percentage value out of a possibly markup-ridden cell.
func parseRate(s string) decimal.Decimal {
	s = markupRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	return parseAmount(s)
}

// parseRange reads a principal range: "50.000 - 100.000 TL" or the open-ended
// "250.000 TL ve üzeri". max is nil for open-ended ranges.
func parseRange(s string) (min decimal.Decimal, max *decimal.Decimal, ok bool) {
	s = markupRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(currencyRE.ReplaceAllString(s, ""))
	if s == "" {
		return decimal.Zero, nil, false
	}

	if m := openRangeRE.FindStringSubmatch(s); m != nil {
		return parseAmount(m[1]), nil, true
	}
	if m := boundedRangeRE.FindStringSubmatch(s); m != nil {
		hi := parseAmount(m[2])
		return parseAmount(m[1]), &hi, true
	}
	return decimal.Zero, nil, false
}

// nodeText collects all text under an HTML node, merging whitespace and the odd
// non-breaking space into single spaces.
func nodeText(node *html.Node) string {
	out := ""
	if node != nil {
		if node.Type == html.TextNode {
			out += " " + node.Data
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			out += " " + nodeText(child)
		}
	}

	out = strings.ReplaceAll(out, " ", " ")
	out = multiSpaceRE.ReplaceAllString(out, " ")
	return strings.Trim(out, " ")
}
