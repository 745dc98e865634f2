package provider

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// Extractor looks for the rate in one particular place of the BCV page.
type Extractor func(doc *goquery.Document) (decimal.Decimal, bool)

var (
	dollarRe      = regexp.MustCompile(`(?i)d[oó]lar`)
	commaNumberRe = regexp.MustCompile(`(\d+),(\d+)`)
	anyNumberRe   = regexp.MustCompile(`(\d+)[,.](\d+)`)

	rateFloor = decimal.NewFromInt(30)
	rateCeil  = decimal.NewFromInt(100)
)

const layoutSelector = "div.centrado, div.pull-right, div.field-content"

// DefaultExtractors is the order in which the page is searched.
var DefaultExtractors = []Extractor{
	DollarTextExtractor,
	LayoutClassExtractor,
	EmphasisExtractor,
}

// ExtractRate returns the result of the first extractor that finds a rate.
func ExtractRate(doc *goquery.Document, extractors ...Extractor) (decimal.Decimal, bool) {
	for _, ex := range extractors {
		if rate, ok := ex(doc); ok {
			return rate, true
		}
	}
	return decimal.Decimal{}, false
}

// DollarTextExtractor finds the first text node mentioning the dollar and
// reads a comma-decimal number from its enclosing element.
func DollarTextExtractor(doc *goquery.Document) (decimal.Decimal, bool) {
	for _, root := range doc.Nodes {
		n := firstTextMatch(root, dollarRe)
		if n == nil {
			continue
		}
		if n.Parent == nil {
			return decimal.Decimal{}, false
		}
		return matchRate(commaNumberRe, doc.FindNodes(n.Parent).Text())
	}
	return decimal.Decimal{}, false
}

// LayoutClassExtractor scans the layout blocks BCV uses for the rate widget and
// accepts the first number in (30, 100).
func LayoutClassExtractor(doc *goquery.Document) (decimal.Decimal, bool) {
	var (
		rate  decimal.Decimal
		found bool
	)
	doc.Find(layoutSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		r, ok := matchRate(anyNumberRe, strings.TrimSpace(s.Text()))
		if ok && r.GreaterThan(rateFloor) && r.LessThan(rateCeil) {
			rate, found = r, true
			return false
		}
		return true
	})
	return rate, found
}

// EmphasisExtractor reads the first <strong> that mentions USD or $.
func EmphasisExtractor(doc *goquery.Document) (decimal.Decimal, bool) {
	var (
		rate  decimal.Decimal
		found bool
	)
	doc.Find("strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !strings.Contains(text, "USD") && !strings.Contains(text, "$") {
			return true
		}
		rate, found = matchRate(anyNumberRe, text)
		return !found
	})
	return rate, found
}

func firstTextMatch(n *html.Node, re *regexp.Regexp) *html.Node {
	if n.Type == html.TextNode && re.MatchString(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := firstTextMatch(c, re); m != nil {
			return m
		}
	}
	return nil
}

func matchRate(re *regexp.Regexp, text string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return decimal.Decimal{}, false
	}
	rate, err := decimal.NewFromString(m[1] + "." + m[2])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return rate, true
}
