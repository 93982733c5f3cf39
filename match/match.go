// Package match buckets normalized rows by appraisal key and pairs
// product rows with price rows through a deterministic fallback chain.
// Matching never scores or sorts: it relies purely on preserved extract
// order, so the same inputs always produce the same pairing.
package match

import "appraisal_etl/extract"

// ProductGroups indexes product records by appraisal key in first-seen
// order. Keyless rows are excluded and counted.
type ProductGroups struct {
	Order   []string
	ByKey   map[string][]extract.ProductRecord
	Skipped int
}

// PriceGroups indexes price records by appraisal key.
type PriceGroups struct {
	Order   []string
	ByKey   map[string][]extract.PriceRecord
	Skipped int
}

// GroupProducts buckets product records by appraisal key, preserving
// both key encounter order and row order within each bucket.
func GroupProducts(recs []extract.ProductRecord) *ProductGroups {
	g := &ProductGroups{ByKey: make(map[string][]extract.ProductRecord)}
	for _, r := range recs {
		if r.AppraisalNumber == "" {
			g.Skipped++
			continue
		}
		if _, seen := g.ByKey[r.AppraisalNumber]; !seen {
			g.Order = append(g.Order, r.AppraisalNumber)
		}
		g.ByKey[r.AppraisalNumber] = append(g.ByKey[r.AppraisalNumber], r)
	}
	return g
}

// GroupPrices buckets price records by appraisal key.
func GroupPrices(recs []extract.PriceRecord) *PriceGroups {
	g := &PriceGroups{ByKey: make(map[string][]extract.PriceRecord)}
	for _, r := range recs {
		if r.AppraisalNumber == "" {
			g.Skipped++
			continue
		}
		if _, seen := g.ByKey[r.AppraisalNumber]; !seen {
			g.Order = append(g.Order, r.AppraisalNumber)
		}
		g.ByKey[r.AppraisalNumber] = append(g.ByKey[r.AppraisalNumber], r)
	}
	return g
}

// FindPrice selects the price row for a product row within one appraisal
// group. Rules, first non-empty candidate set wins: equal catalog id,
// equal serial number, equal product name, positional alignment at idx,
// then the group's first price row. Within a rule the first satisfying
// row in group order is chosen. Returns nil when the group has no price
// rows at all; callers must treat that as "unverified", not an error.
func FindPrice(p extract.ProductRecord, idx int, prices []extract.PriceRecord) *extract.PriceRecord {
	for i := range prices {
		if p.IDVerto != "" && prices[i].IDVerto == p.IDVerto {
			return &prices[i]
		}
	}
	for i := range prices {
		if p.SerialNumber != "" && prices[i].SerialNumber == p.SerialNumber {
			return &prices[i]
		}
	}
	for i := range prices {
		if p.ProductName != "" && prices[i].ProductName == p.ProductName {
			return &prices[i]
		}
	}
	if idx >= 0 && idx < len(prices) {
		return &prices[idx]
	}
	if len(prices) > 0 {
		return &prices[0]
	}
	return nil
}
