package parsing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/currency"
)

// blockLookahead is how many lines after an "item:" label belong to its block
const blockLookahead = 3

var (
	// summaryWords marks subtotal, total and tax lines. They are matched as
	// words so "Taxi" or "Syntax" lines still classify.
	summaryWords = regexp.MustCompile(`(?i)\b(?:sub)?totals?\b|\btax(?:es)?\b`)

	// description, quantity, unit price, line total
	tablePattern = regexp.MustCompile(`^(.*?)\s+(\d+)\s+` + number + `\s+` + number + `$`)

	blockItemPattern  = regexp.MustCompile(`(?i)item[:\-]\s*(.+)`)
	blockPricePattern = regexp.MustCompile(`(?i)price[:\-]\s*` + currency.Pattern + `?\s*` + number)
	blockQtyPattern   = regexp.MustCompile(`(?i)quantity[:\-]\s*(.+)`)
	firstInteger      = regexp.MustCompile(`\d+`)

	// description, quantity, symbol, code, amount; noise may sit between the
	// quantity and the amount
	compactPattern = regexp.MustCompile(`(?i)^(.*?)\s*[x×]\s*(\d+)\s*(?:[^\d]*?)` + currency.Pattern + `?\s*` + number + `$`)

	// description, quantity, symbol, code, amount
	directTotalPattern = regexp.MustCompile(`(?i)^(.*?)\s*[x×]\s*(\d+)\s*` + currency.Pattern + `?\s*` + number + `$`)

	fallbackStrip = regexp.MustCompile(`[\d₹$€£.,]+`)
)

// fallbackTrim is the edge punctuation removed from fallback descriptions
const fallbackTrim = " -:→"

// matcher tries to recognize an item starting at lines[i]. It returns how many
// lines it consumed (0 when the shape does not apply) and the item, which may
// be nil when the shape matched but produced nothing usable.
type matcher func(lines []string, i int, running string) (int, *Item)

// matchers run in priority order; the first one that consumes wins
var matchers = []matcher{
	matchTable,
	matchBlock,
	matchCompact,
	matchDirectTotal,
	matchFallback,
}

// ClassifyItems walks the lines once and returns the purchased items in source
// order. running is the receipt currency used when a line carries none.
func ClassifyItems(lines []string, running string) []Item {
	items := make([]Item, 0)
	for i := 0; i < len(lines); {
		if isSummaryOrMeta(lines[i]) {
			i++
			continue
		}
		consumed := 0
		for _, match := range matchers {
			var item *Item
			consumed, item = match(lines, i, running)
			if consumed == 0 {
				continue
			}
			if item != nil {
				items = append(items, *item)
			}
			break
		}
		if consumed == 0 {
			consumed = 1
		}
		i += consumed
	}
	return items
}

// isSummaryOrMeta reports whether a line is receipt metadata or a summary line
func isSummaryOrMeta(line string) bool {
	return containsAny(strings.ToLower(line), skipKeywords) || summaryWords.MatchString(line)
}

func matchTable(lines []string, i int, running string) (int, *Item) {
	m := tablePattern.FindStringSubmatch(lines[i])
	if m == nil {
		return 0, nil
	}
	desc := m[1]
	qty, _ := parseAmount(m[2])
	unit, ok := parseAmount(m[3])
	if !ok {
		return 1, nil
	}
	total, ok := parseAmount(m[4])
	if !ok {
		return 1, nil
	}
	return 1, newItem(ShapeTable, desc, annotate(desc, qty, running, unit), total, running)
}

func matchBlock(lines []string, i int, running string) (int, *Item) {
	m := blockItemPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return 0, nil
	}
	desc := strings.TrimSpace(m[1])

	var (
		price    decimal.Decimal
		hasPrice bool
		qtyText  string
		cur      = running
	)
	j := i + 1
	for ; j < len(lines) && j <= i+blockLookahead; j++ {
		if pm := blockPricePattern.FindStringSubmatch(lines[j]); pm != nil {
			if p, ok := parseAmount(pm[3]); ok {
				price, hasPrice = p, true
				cur = itemCurrency(pm[1], pm[2], running)
			}
		}
		if qm := blockQtyPattern.FindStringSubmatch(lines[j]); qm != nil {
			qtyText = strings.TrimSpace(qm[1])
		}
	}
	consumed := j - i
	if !hasPrice {
		return consumed, nil
	}

	qty := decimal.NewFromInt(1)
	if q := firstInteger.FindString(qtyText); q != "" {
		if parsed, ok := parseAmount(q); ok {
			qty = parsed
		}
	}
	return consumed, newItem(ShapeBlock, desc, annotate(desc, qty, cur, price), qty.Mul(price), cur)
}

func matchCompact(lines []string, i int, running string) (int, *Item) {
	return matchQuantityTotal(compactPattern, ShapeCompact, lines[i], running)
}

func matchDirectTotal(lines []string, i int, running string) (int, *Item) {
	return matchQuantityTotal(directTotalPattern, ShapeDirectTotal, lines[i], running)
}

// matchQuantityTotal handles "desc xQTY [cur] amount" lines, where the amount
// is the line total and the unit price is derived from it.
func matchQuantityTotal(p *regexp.Regexp, shape Shape, line, running string) (int, *Item) {
	m := p.FindStringSubmatch(line)
	if m == nil {
		return 0, nil
	}
	desc := m[1]
	qty, ok := parseAmount(m[2])
	if !ok {
		return 1, nil
	}
	total, ok := parseAmount(m[5])
	if !ok {
		return 1, nil
	}
	cur := itemCurrency(m[3], m[4], running)
	unit := total
	if qty.IsPositive() {
		unit = total.Div(qty)
	}
	return 1, newItem(shape, desc, annotate(desc, qty, cur, unit), total, cur)
}

func matchFallback(lines []string, i int, running string) (int, *Item) {
	line := lines[i]
	m := amountPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, nil
	}
	cur := itemCurrency(m[1], m[2], running)
	amount, _ := parseAmount(m[3])
	desc := strings.Trim(fallbackStrip.ReplaceAllString(line, ""), fallbackTrim)
	if len(strings.Fields(desc)) == 0 || strings.HasPrefix(strings.ToLower(desc), "date") {
		return 1, nil
	}
	return 1, newItem(ShapeFallback, desc, desc, amount, cur)
}

// itemCurrency prefers a currency captured on the line over the running one
func itemCurrency(symbol, code, running string) string {
	if symbol == "" && code == "" {
		return running
	}
	return currency.Normalize(symbol, code)
}

// annotate folds quantity and unit price into the description
func annotate(desc string, qty decimal.Decimal, cur string, unit decimal.Decimal) string {
	return fmt.Sprintf("%s (x%s @ %s%s)", desc, qty.String(), cur, unit.StringFixed(2))
}

// newItem categorizes on the bare description, before annotation
func newItem(shape Shape, desc, description string, amount decimal.Decimal, cur string) *Item {
	return &Item{
		Description: description,
		Amount:      amount.InexactFloat64(),
		Currency:    cur,
		Category:    category.Categorize(desc),
		Shape:       shape,
	}
}
