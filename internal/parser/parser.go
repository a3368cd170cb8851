package parser

import (
	"fmt"
	"strconv"
	"strings"

	"pizza-text-bot/internal/catalog"
	"pizza-text-bot/internal/order"

	"github.com/samber/lo"
)

const (
	SIZE_MIDDLE = "middle"
	SIZE_LARGE  = "large"
	SIZE_FAMILY = "family"
)

type Outcome int

const (
	// the line does not look like an order item at all
	NotAnItem Outcome = iota
	// the line looked like an item but broke a catalog or size rule;
	// Message carries the corrective reply
	Rejected
	// Item carries the parsed line item
	Parsed
)

// Result is the tagged outcome of ParseLine; switch on Outcome.
type Result struct {
	Outcome Outcome
	Message string
	Item    order.LineItem
}

var sizeSynonyms = map[string]string{
	"media":   SIZE_MIDDLE,
	"média":   SIZE_MIDDLE,
	"m":       SIZE_MIDDLE,
	"middle":  SIZE_MIDDLE,
	"grande":  SIZE_LARGE,
	"g":       SIZE_LARGE,
	"large":   SIZE_LARGE,
	"familia": SIZE_FAMILY,
	"família": SIZE_FAMILY,
	"f":       SIZE_FAMILY,
	"family":  SIZE_FAMILY,
}

var sizeNames = map[string]string{
	SIZE_MIDDLE: "Média",
	SIZE_LARGE:  "Grande",
	SIZE_FAMILY: "Família",
}

var maxFlavors = map[string]int{
	SIZE_MIDDLE: 2,
	SIZE_LARGE:  2,
	SIZE_FAMILY: 3,
}

// ParseLine turns one "sabor(es), tamanho, quantidade" line into a line item,
// resolving flavors against the active catalog. Validation order matters:
// unknown flavors are reported before size rules, so typos come first.
func ParseLine(text string, flavors []catalog.Flavor) Result {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// fields past the third are ignored, not an error
	if len(parts) < 3 {
		return Result{Outcome: NotAnItem}
	}

	flavorsField, sizeField, qtyField := parts[0], parts[1], parts[2]

	// quantities are decimal; "010" is ten, "0x2" is not an item
	quantity, err := strconv.Atoi(qtyField)
	if err != nil || quantity <= 0 || flavorsField == "" || sizeField == "" {
		return Result{Outcome: NotAnItem}
	}

	tokens := lo.FilterMap(strings.Split(flavorsField, "/"), func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	if len(tokens) == 0 {
		return Result{Outcome: NotAnItem}
	}

	byName := make(map[string]catalog.Flavor, len(flavors))
	for _, f := range flavors {
		byName[strings.ToLower(f.Name)] = f
	}

	var (
		flavorIDs    []string
		flavorNames  []string
		invalidNames []string
	)
	for _, token := range tokens {
		flavor, ok := byName[token]
		if !ok {
			invalidNames = append(invalidNames, capitalize(token))
			continue
		}
		flavorIDs = append(flavorIDs, flavor.UUID.String())
		flavorNames = append(flavorNames, capitalize(flavor.Name))
	}

	if len(invalidNames) > 0 {
		return Result{
			Outcome: Rejected,
			Message: fmt.Sprintf("Sabor(es) não encontrado(s): %s\n\nDigite \"menu\" ou \"cardápio\" para ver os sabores disponíveis.",
				strings.Join(invalidNames, ", ")),
		}
	}

	sizeToken := strings.ToLower(sizeField)
	size, ok := sizeSynonyms[sizeToken]
	if !ok {
		return Result{
			Outcome: Rejected,
			Message: fmt.Sprintf("Tamanho inválido: %q. Use: média, grande ou família.", sizeToken),
		}
	}

	if len(tokens) > maxFlavors[size] {
		if size == SIZE_FAMILY {
			return Result{
				Outcome: Rejected,
				Message: fmt.Sprintf("Pizzas família podem ter no máximo 3 sabores. Você tentou adicionar %d sabores.", len(tokens)),
			}
		}
		return Result{
			Outcome: Rejected,
			Message: fmt.Sprintf("Pizzas médias e grandes podem ter no máximo 2 sabores. Você tentou adicionar %d sabores.", len(tokens)),
		}
	}

	return Result{
		Outcome: Parsed,
		Item: order.LineItem{
			Flavors:  flavorIDs,
			Name:     strings.Join(append([]string{sizeNames[size]}, flavorNames...), " + "),
			Size:     size,
			Quantity: quantity,
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
