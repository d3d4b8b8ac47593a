package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brutus/internal/domain"
	apperrors "brutus/internal/errors"
	"brutus/internal/pricing"
)

var (
	burger = domain.Product{ID: 1, Name: "X-Brutus", Price: 25.00, Category: "Lanches"}
	soda   = domain.Product{ID: 2, Name: "Refrigerante Lata", Price: 6.00, Category: "Bebidas"}
	fries  = domain.Product{ID: 3, Name: "Batata Frita", Price: 12.00, Category: "Porções"}
	bacon  = pricing.Addon{Name: "Bacon", Price: 3.00}
)

func TestCart_AddAndTotal(t *testing.T) {
	c := New(nil)

	require.NoError(t, c.Add(burger, 2, "sem cebola", []pricing.Addon{bacon}))
	require.NoError(t, c.Add(soda, 1, "", nil))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.ItemCount())
	// (25+3)*2 + 6 = 62
	assert.InDelta(t, 62.00, c.Total(nil), 1e-9)

	quote := &domain.DeliveryQuote{DistanceKm: 3.2, Price: 5.00}
	assert.InDelta(t, 67.00, c.Total(quote), 1e-9)
}

func TestCart_AddInvalidQuantity(t *testing.T) {
	c := New(nil)

	for _, qty := range []int{0, -1, 100} {
		err := c.Add(burger, qty, "", nil)
		require.Error(t, err)
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok)
	}
	assert.Equal(t, 0, c.Len())
}

func TestCart_NoAddonsOnBeverages(t *testing.T) {
	c := New(nil)

	err := c.Add(soda, 1, "", []pricing.Addon{bacon})
	require.Error(t, err)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	// Without addons the beverage is fine.
	require.NoError(t, c.Add(soda, 1, "", nil))
}

func TestCart_DecrementRemovesAtOne(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(burger, 1, "", nil))

	require.NoError(t, c.Decrement(0))
	assert.Equal(t, 0, c.Len())
}

func TestCart_DecrementReducesByExactlyOne(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(burger, 3, "", nil))

	require.NoError(t, c.Decrement(0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	require.NoError(t, c.Decrement(0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCart_IncrementCap(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(burger, MaxQuantity, "", nil))

	err := c.Increment(0)
	require.Error(t, err)
	assert.Equal(t, MaxQuantity, c.Lines()[0].Quantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Add(burger, 1, "", nil))
	require.NoError(t, c.Add(fries, 2, "", nil))

	require.NoError(t, c.Remove(0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, fries.ID, c.Lines()[0].Product.ID)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCart_BadIndex(t *testing.T) {
	c := New(nil)

	for _, fn := range []func(int) error{c.Increment, c.Decrement, c.Remove} {
		err := fn(0)
		require.Error(t, err)
		_, ok := apperrors.IsNotFoundError(err)
		assert.True(t, ok)
	}
}

func TestClassifier_RuleTable(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		category string
		want     Bucket
	}{
		{"Lanches", BucketMains},
		{"Hambúrguer Artesanal", BucketMains},
		{"Burgers", BucketMains},
		{"Bebidas", BucketDrinks},
		{"Refrigerantes", BucketDrinks},
		{"Sucos Naturais", BucketDrinks},
		{"Porções", BucketSides},
		{"Porcao Grande", BucketSides},
		{"Adicionais", BucketAddons},
		{"Extras", BucketAddons},
		// Unmatched tags stay orderable under mains.
		{"Sobremesas", BucketMains},
		{"", BucketMains},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.category), "category %q", tt.category)
	}
}

func TestClassifier_Memoized(t *testing.T) {
	c := NewClassifier()

	first := c.Classify("Bebidas Geladas")
	// Mutating the rule table after the first classification must not
	// change a memoized answer.
	c.rules = nil
	assert.Equal(t, first, c.Classify("Bebidas Geladas"))
}

func TestClassifier_Partition(t *testing.T) {
	c := NewClassifier()
	products := []domain.Product{burger, soda, fries, {ID: 4, Name: "Bacon", Price: 3.00, Category: "Adicionais"}, {ID: 5, Name: "Pudim", Price: 9.00, Category: "Sobremesas"}}

	parts := c.Partition(products)

	assert.Len(t, parts[BucketDrinks], 1)
	assert.Len(t, parts[BucketSides], 1)
	assert.Len(t, parts[BucketAddons], 1)
	// Burger plus the unmatched dessert.
	assert.Len(t, parts[BucketMains], 2)
}

func TestSelection_ClearedAfterCommit(t *testing.T) {
	c := New(nil)
	sel := NewSelection()
	sel.Toggle(bacon)

	require.NoError(t, c.CommitSelection(sel, burger, 1, ""))
	assert.Empty(t, sel.Addons())
	require.Equal(t, 1, c.Len())
	assert.Len(t, c.Lines()[0].Addons, 1)

	// Next add starts from a clean selection.
	require.NoError(t, c.CommitSelection(sel, fries, 1, ""))
	assert.Empty(t, c.Lines()[1].Addons)
}

func TestSelection_ClearedEvenWhenCommitFails(t *testing.T) {
	c := New(nil)
	sel := NewSelection()
	sel.Toggle(bacon)

	err := c.CommitSelection(sel, soda, 1, "")
	require.Error(t, err)
	assert.Empty(t, sel.Addons())
}

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle(bacon)
	assert.Len(t, sel.Addons(), 1)

	sel.Toggle(bacon)
	assert.Empty(t, sel.Addons())

	sel.Toggle(bacon)
	sel.Toggle(pricing.Addon{Name: "Cheddar", Price: 2.50})
	assert.Len(t, sel.Addons(), 2)
}
