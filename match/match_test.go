package match

import (
	"testing"

	"appraisal_etl/extract"
)

func product(key, verto, serial, name string) extract.ProductRecord {
	return extract.ProductRecord{AppraisalNumber: key, IDVerto: verto, SerialNumber: serial, ProductName: name}
}

func price(key, verto, serial, name string) extract.PriceRecord {
	return extract.PriceRecord{AppraisalNumber: key, IDVerto: verto, SerialNumber: serial, ProductName: name}
}

func TestGroupProductsPreservesOrder(t *testing.T) {
	recs := []extract.ProductRecord{
		product("W-2", "", "", "a"),
		product("W-1", "", "", "b"),
		product("", "", "", "keyless"),
		product("W-2", "", "", "c"),
	}
	g := GroupProducts(recs)
	if g.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", g.Skipped)
	}
	if len(g.Order) != 2 || g.Order[0] != "W-2" || g.Order[1] != "W-1" {
		t.Fatalf("unexpected key order: %v", g.Order)
	}
	if len(g.ByKey["W-2"]) != 2 {
		t.Fatalf("expected 2 rows for W-2, got %d", len(g.ByKey["W-2"]))
	}
	if g.ByKey["W-2"][0].ProductName != "a" || g.ByKey["W-2"][1].ProductName != "c" {
		t.Fatalf("bucket order not preserved: %v", g.ByKey["W-2"])
	}
}

func TestFindPriceCatalogIDBeatsSerial(t *testing.T) {
	p := product("W-1", "V-9", "SN-1", "Nikon")
	prices := []extract.PriceRecord{
		price("W-1", "", "SN-1", "other"),
		price("W-1", "V-9", "", "other2"),
	}
	got := FindPrice(p, 0, prices)
	if got == nil || got.IDVerto != "V-9" {
		t.Fatalf("catalog id match must win, got %+v", got)
	}
}

func TestFindPriceSerialBeatsName(t *testing.T) {
	p := product("W-1", "", "SN-1", "Nikon")
	prices := []extract.PriceRecord{
		price("W-1", "", "", "Nikon"),
		price("W-1", "", "SN-1", "inny"),
	}
	got := FindPrice(p, 0, prices)
	if got == nil || got.SerialNumber != "SN-1" {
		t.Fatalf("serial match must win over name, got %+v", got)
	}
}

func TestFindPricePositionalFallback(t *testing.T) {
	p := product("W-1", "V-1", "SN-1", "Nikon")
	prices := []extract.PriceRecord{
		price("W-1", "X", "Y", "Z"),
		price("W-1", "A", "B", "C"),
	}
	got := FindPrice(p, 1, prices)
	if got == nil || got.IDVerto != "A" {
		t.Fatalf("expected positional row 1, got %+v", got)
	}
}

func TestFindPriceFirstRowFallback(t *testing.T) {
	p := product("W-1", "V-1", "", "")
	prices := []extract.PriceRecord{price("W-1", "X", "", "")}
	got := FindPrice(p, 5, prices)
	if got == nil || got.IDVerto != "X" {
		t.Fatalf("expected first-row fallback, got %+v", got)
	}
}

func TestFindPriceNoPrices(t *testing.T) {
	p := product("W-1", "V-1", "", "")
	if got := FindPrice(p, 0, nil); got != nil {
		t.Fatalf("expected nil for empty group, got %+v", got)
	}
}

func TestFindPriceEmptyKeysNeverMatch(t *testing.T) {
	// Empty catalog id on the product side must not "match" an empty
	// price-side id; the chain falls through to position.
	p := product("W-1", "", "", "")
	prices := []extract.PriceRecord{
		price("W-1", "", "", "x"),
		price("W-1", "", "", "y"),
	}
	got := FindPrice(p, 1, prices)
	if got == nil || got.ProductName != "y" {
		t.Fatalf("expected positional match, got %+v", got)
	}
}
