package catalog

import (
	"context"
	"strings"

	"github.com/leekchan/accounting"
	"github.com/samber/lo"
)

var brl = accounting.Accounting{
	Symbol:    "R$ ",
	Precision: 2,
	Thousand:  ".",
	Decimal:   ",",
}

// FormatPrice renders a price in centavos as Brazilian currency.
func FormatPrice(cents int64) string {
	return brl.FormatMoney(float64(cents) / 100)
}

// Menu renders the current catalog as the text sent to customers.
func (c *Client) Menu(ctx context.Context) (string, error) {
	flavors, err := c.ActiveFlavors(ctx)
	if err != nil {
		return "", err
	}
	return FormatMenu(flavors), nil
}

// FormatMenu builds the menu text from already-filtered active flavors,
// grouped by category.
func FormatMenu(flavors []Flavor) string {
	byType := lo.GroupBy(flavors, func(f Flavor) string {
		return f.Type
	})

	menu := new(strings.Builder)
	menu.WriteString("🍕 *Cardápio Pizzaria X* 🍕\n\n")

	if items := byType[TYPE_TRADITIONAL]; len(items) > 0 {
		menu.WriteString("*Pizzas Tradicionais*\n")
		writeFlavors(menu, items)
		menu.WriteString("\n")
	}

	if items := byType[TYPE_SPECIAL]; len(items) > 0 {
		menu.WriteString("*Pizzas Especiais*\n")
		writeFlavors(menu, items)
		menu.WriteString("\n")
	}

	if items := byType[TYPE_SWEET]; len(items) > 0 {
		menu.WriteString("*Pizzas Doces* 🍫\n")
		writeFlavors(menu, items)
	}

	return menu.String()
}

func writeFlavors(menu *strings.Builder, flavors []Flavor) {
	for _, flavor := range flavors {
		menu.WriteString("\n*" + flavor.Name + "*\n")
		menu.WriteString(flavor.Description + "\n")
		menu.WriteString("M: " + FormatPrice(flavor.Prices.Middle) + " | ")
		menu.WriteString("G: " + FormatPrice(flavor.Prices.Large) + " | ")
		menu.WriteString("F: " + FormatPrice(flavor.Prices.Family))
	}
}
