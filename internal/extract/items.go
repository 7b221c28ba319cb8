package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

var (
	// a SKU-like code carries at least one digit and no spaces
	reSKUCode = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_]*$`)
	reDigit   = regexp.MustCompile(`\d`)
	rePrice   = regexp.MustCompile(`^[$€£]?\d+\.\d{1,2}$`)
	reInt     = regexp.MustCompile(`^\d+$`)
)

// parseItems splits the body into candidate rows and infers the
// {sku, name, quantity, price} shape per row from token types: a
// trailing decimal is the price, a trailing integer the quantity, a
// leading code token the SKU, and whatever remains the name. Rows
// contributing neither a SKU nor a quantity are dropped rather than
// producing degenerate items.
func parseItems(text string) []entity.LineItem {
	items := []entity.LineItem{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if isHeaderLine(line) {
			continue
		}
		tokens := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(tokens) < 2 {
			continue
		}

		item := entity.LineItem{}

		if last := tokens[len(tokens)-1]; rePrice.MatchString(last) {
			p, _ := strconv.ParseFloat(strings.TrimLeft(last, "$€£"), 64)
			item.Price = &p
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) > 0 {
			if last := tokens[len(tokens)-1]; reInt.MatchString(last) {
				q, err := strconv.Atoi(last)
				if err == nil {
					item.Quantity = &q
					tokens = tokens[:len(tokens)-1]
				}
			}
		}
		if len(tokens) == 0 {
			continue
		}

		if looksLikeSKU(tokens[0]) {
			sku := tokens[0]
			item.SKU = &sku
			tokens = tokens[1:]
		}
		if len(tokens) > 0 {
			name := strings.Join(tokens, " ")
			item.Name = &name
		}

		if item.SKU == nil && item.Quantity == nil {
			continue
		}
		item.LineIndex = len(items)
		items = append(items, item)
	}
	return items
}

func looksLikeSKU(token string) bool {
	return reSKUCode.MatchString(token) && reDigit.MatchString(token)
}

// isHeaderLine filters rows that restate header fields so they are not
// mistaken for items. A line mentioning "sku" is kept because tabular
// bodies often carry such a column header row; that row is then dropped
// by the shape checks instead.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "sku") {
		return false
	}
	for _, kw := range []string{"date", "invoice", "supplier", "vendor", "items", "document"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
