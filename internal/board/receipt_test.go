package board

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() Order {
	phone := "67 99999-0000"
	return Order{
		ID:            12,
		CustomerName:  "João Pereira",
		CustomerPhone: &phone,
		Address:       "Rua das Acácias, 10",
		PaymentMethod: "pix",
		Total:         61.0,
		Status:        "pending",
		CreatedAt:     time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC),
		Lines: []LineItem{
			{ProductName: "X-Bacon", Quantity: 2, UnitPrice: 28.0},
		},
	}
}

func TestReceipt_Layout(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	out := Receipt(sampleOrder(), now)
	lines := strings.Split(out, "\n")

	assert.Equal(t, strings.Repeat(" ", 19)+"PEDIDO #12", lines[0])
	assert.Equal(t, strings.Repeat("=", 48), lines[1])
	assert.Equal(t, "DATA: 01/06/2025", lines[2])
	assert.Equal(t, "HORA: 19:30", lines[3])

	assert.Contains(t, lines, "CLIENTE:")
	assert.Contains(t, lines, "João Pereira")
	assert.Contains(t, lines, "TEL: 67 99999-0000")
	assert.Contains(t, lines, "PAGAMENTO: pix")

	assert.Contains(t, lines, "2x X-Bacon")
	assert.Contains(t, lines, "    R$ 28,00 x 2 = R$ 56,00")

	assert.Contains(t, lines, strings.Repeat(" ", 16)+"TOTAL: R$ 61,00")
	assert.Contains(t, out, "OBRIGADO PELA PREFERÊNCIA!")
	assert.Contains(t, out, "2025")
	assert.Equal(t, strings.Repeat("*", 48), lines[len(lines)-1])
}

func TestReceipt_NeverExceedsWidth(t *testing.T) {
	order := sampleOrder()
	order.CustomerName = strings.Repeat("a", 80)
	order.Address = strings.Repeat("b", 80)
	order.Lines = append(order.Lines, LineItem{
		ProductName: "Hambúrguer artesanal duplo com cheddar e bacon",
		Quantity:    1,
		UnitPrice:   35.0,
	})

	out := Receipt(order, time.Now())
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 48, "line too wide: %q", line)
	}
}

func TestReceipt_TruncatesLongProductNames(t *testing.T) {
	order := sampleOrder()
	order.Lines = []LineItem{
		{ProductName: strings.Repeat("x", 40), Quantity: 1, UnitPrice: 10.0},
	}

	out := Receipt(order, time.Now())
	assert.Contains(t, out, "1x "+strings.Repeat("x", 27)+"...")
}

func TestReceipt_MissingFields(t *testing.T) {
	order := Order{
		ID:        3,
		Total:     10.0,
		CreatedAt: time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		Lines:     []LineItem{{ProductName: "", Quantity: 1, UnitPrice: 10.0}},
	}

	out := Receipt(order, time.Now())
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines, "NÃO INFORMADO")
	assert.Contains(t, lines, "PAGAMENTO: NÃO INFORMADO")
	assert.Contains(t, out, "PRODUTO SEM NOME")
	require.NotContains(t, out, "TEL:")
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 0,00", money(0))
	assert.Equal(t, "R$ 28,50", money(28.5))
	assert.Equal(t, "R$ 1234,99", money(1234.99))
}
