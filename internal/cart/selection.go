package cart

import (
	"brutus/internal/domain"
	"brutus/internal/pricing"
)

// Selection accumulates the addons chosen while a single product is
// being added to the cart. It is scoped to that one interaction:
// committing the line clears it, so a stale selection can never leak
// onto the next product.
type Selection struct {
	addons []pricing.Addon
}

func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds the addon if absent and removes it if present, matching
// the checkbox behavior of the ordering screen.
func (s *Selection) Toggle(a pricing.Addon) {
	for i, cur := range s.addons {
		if cur.Name == a.Name {
			s.addons = append(s.addons[:i], s.addons[i+1:]...)
			return
		}
	}
	s.addons = append(s.addons, a)
}

func (s *Selection) Addons() []pricing.Addon {
	out := make([]pricing.Addon, len(s.addons))
	copy(out, s.addons)
	return out
}

func (s *Selection) Clear() {
	s.addons = nil
}

// CommitSelection adds the line with the current selection and clears
// the selection whether or not the add succeeded.
func (c *Cart) CommitSelection(s *Selection, p domain.Product, qty int, note string) error {
	err := c.Add(p, qty, note, s.Addons())
	s.Clear()
	return err
}
