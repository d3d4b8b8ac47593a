package cart

import (
	"strings"

	"brutus/internal/domain"
)

// Bucket is a menu section of the ordering screen.
type Bucket string

const (
	BucketMains  Bucket = "mains"
	BucketDrinks Bucket = "drinks"
	BucketSides  Bucket = "sides"
	BucketAddons Bucket = "addons"
)

type rule struct {
	keyword string
	bucket  Bucket
}

// The catalog category is free text typed by the restaurant, so
// membership is keyword based. Rules are evaluated in order; the first
// match wins. Anything unmatched lands in mains so every product stays
// orderable.
var defaultRules = []rule{
	{"adicional", BucketAddons},
	{"adicionais", BucketAddons},
	{"extra", BucketAddons},
	{"bebida", BucketDrinks},
	{"refrigerante", BucketDrinks},
	{"suco", BucketDrinks},
	{"porção", BucketSides},
	{"porções", BucketSides},
	{"porcao", BucketSides},
	{"porcoes", BucketSides},
	{"lanche", BucketMains},
	{"hambúrguer", BucketMains},
	{"burger", BucketMains},
}

// Classifier maps a product's free-text category tag to a bucket,
// memoizing results per tag.
type Classifier struct {
	rules []rule
	memo  map[string]Bucket
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: defaultRules,
		memo:  make(map[string]Bucket),
	}
}

func (c *Classifier) Classify(category string) Bucket {
	if b, ok := c.memo[category]; ok {
		return b
	}

	b := BucketMains
	lowered := strings.ToLower(category)
	for _, r := range c.rules {
		if strings.Contains(lowered, r.keyword) {
			b = r.bucket
			break
		}
	}

	c.memo[category] = b
	return b
}

// Partition splits a catalog into the four menu buckets, preserving
// catalog order within each bucket.
func (c *Classifier) Partition(products []domain.Product) map[Bucket][]domain.Product {
	out := map[Bucket][]domain.Product{
		BucketMains:  nil,
		BucketDrinks: nil,
		BucketSides:  nil,
		BucketAddons: nil,
	}
	for _, p := range products {
		b := c.Classify(p.Category)
		out[b] = append(out[b], p)
	}
	return out
}
