package board

import (
	"fmt"
	"strings"
	"time"
)

// receiptWidth is the usable character width of an 80mm thermal
// printer.
const receiptWidth = 48

const unknownField = "NÃO INFORMADO"

// Receipt renders the order as a fixed-width thermal coupon. Pure
// formatting; the order comes in already priced and the totals are
// printed as-is.
func Receipt(order Order, now time.Time) string {
	var lines []string

	lines = append(lines, center(fmt.Sprintf("PEDIDO #%d", order.ID)))
	lines = append(lines, rule('='))

	lines = append(lines, "DATA: "+order.CreatedAt.Format("02/01/2006"))
	lines = append(lines, "HORA: "+order.CreatedAt.Format("15:04"))
	lines = append(lines, "")

	lines = append(lines, "CLIENTE:")
	name := order.CustomerName
	if name == "" {
		name = unknownField
	}
	lines = append(lines, truncate(name, receiptWidth))
	if order.CustomerPhone != nil && *order.CustomerPhone != "" {
		lines = append(lines, "TEL: "+*order.CustomerPhone)
	}
	if order.Address != "" {
		lines = append(lines, truncate(order.Address, receiptWidth))
	}
	payment := order.PaymentMethod
	if payment == "" {
		payment = unknownField
	}
	lines = append(lines, "PAGAMENTO: "+payment)
	lines = append(lines, "")

	lines = append(lines, "ITENS:")
	lines = append(lines, rule('-'))
	for _, item := range order.Lines {
		name := item.ProductName
		if name == "" {
			name = "PRODUTO SEM NOME"
		}
		subtotal := item.UnitPrice * float64(item.Quantity)
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, truncate(name, 30)))
		lines = append(lines, fmt.Sprintf("    %s x %d = %s", money(item.UnitPrice), item.Quantity, money(subtotal)))
		lines = append(lines, "")
	}

	lines = append(lines, rule('='))
	lines = append(lines, center("TOTAL: "+money(order.Total)))
	lines = append(lines, rule('='))
	lines = append(lines, "")

	lines = append(lines, center("OBRIGADO PELA PREFERÊNCIA!"))
	lines = append(lines, center(fmt.Sprintf("%d", now.Year())))
	lines = append(lines, "")
	lines = append(lines, rule('*'))

	return strings.Join(lines, "\n")
}

func center(text string) string {
	runes := []rune(text)
	if len(runes) >= receiptWidth {
		return string(runes[:receiptWidth])
	}
	pad := (receiptWidth - len(runes)) / 2
	return strings.Repeat(" ", pad) + text
}

func rule(c rune) string {
	return strings.Repeat(string(c), receiptWidth)
}

// money formats a value the Brazilian way, comma as decimal separator.
func money(v float64) string {
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}
