package project

import (
	"testing"

	"appraisal_etl/extract"
	"appraisal_etl/status"
	"appraisal_etl/synth"
)

func f64(v float64) *float64 { return &v }

func testBuilder() *Builder {
	return NewBuilder(synth.NewSource(1))
}

func TestBuildSingleUnmatchedAppraisal(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{{
		AppraisalNumber: "A-1",
		ProductName:     "Nikon D750",
		Rating:          9,
		PriceTransfer:   f64(1000),
	}}
	res := b.Build(products, nil)

	if len(res.Details) != 1 || len(res.List) != 1 {
		t.Fatalf("expected one projection pair, got %d/%d", len(res.Details), len(res.List))
	}
	d := res.Details[0]
	if len(d.Products) != 1 {
		t.Fatalf("expected one product line, got %d", len(d.Products))
	}
	if d.Products[0].VerifiedRating != nil {
		t.Fatal("no price entry: verified rating must be nil")
	}
	if d.TotalPriceTransfer != 1000 {
		t.Fatalf("expected total 1000, got %v", d.TotalPriceTransfer)
	}
	if d.Status == status.Rejected || d.Status == status.ReturnedToCustomer {
		t.Fatalf("fallback status must be non-terminal, got %v", d.Status)
	}
	if d.LocationID != 6 || d.LocationName != "Warszawa" {
		t.Fatalf("expected default location, got %d %q", d.LocationID, d.LocationName)
	}
	if d.OperatorName != nil || d.OperatorID != nil {
		t.Fatal("no price entry: operator must be absent")
	}
	if d.ExpertiseDate != nil {
		t.Fatal("no price entry: expertise date must be nil")
	}
}

func TestCrossProjectionConsistency(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", ProductName: "p1", Rating: 8, PriceTransfer: f64(100), PriceGiftCard: f64(120)},
		{AppraisalNumber: "A-1", ProductName: "p2", Rating: 6},
		{AppraisalNumber: "A-2", ProductName: "p3", Rating: 7, PriceTransfer: f64(50)},
		{AppraisalNumber: "A-3", ProductName: "p4", Rating: 9},
	}
	prices := []extract.PriceRecord{
		{AppraisalNumber: "A-1", Status: "W trakcie", OperatorName: "Jan Kowalski", LocationName: "Gdansk", LocationID: 1},
		{AppraisalNumber: "A-2", Status: "zwrot", LocationName: "Krakow", LocationID: 3},
	}
	res := b.Build(products, prices)
	if len(res.Details) != 3 {
		t.Fatalf("expected 3 appraisals, got %d", len(res.Details))
	}
	for i, d := range res.Details {
		l := res.List[i]
		if l.Status != d.Status {
			t.Fatalf("%s: status mismatch %v vs %v", d.AppraisalNumber, l.Status, d.Status)
		}
		if l.TotalPriceTransfer != d.TotalPriceTransfer || l.TotalPriceGiftCard != d.TotalPriceGiftCard {
			t.Fatalf("%s: totals mismatch", d.AppraisalNumber)
		}
		if l.TrackingNumber != d.TrackingNumber {
			t.Fatalf("%s: tracking mismatch", d.AppraisalNumber)
		}
		if (l.OperatorName == nil) != (d.OperatorName == nil) {
			t.Fatalf("%s: operator mismatch", d.AppraisalNumber)
		}
		if l.ProductCount != len(d.Products) {
			t.Fatalf("%s: product count mismatch", d.AppraisalNumber)
		}
	}
	if res.Details[1].Status != status.ReturnedToCustomer {
		t.Fatalf("A-2 carries a return signal, got %v", res.Details[1].Status)
	}
}

func TestTotalsTreatNilAsZeroButKeepLineNil(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", ProductName: "p1", Rating: 8, PriceTransfer: f64(100)},
		{AppraisalNumber: "A-1", ProductName: "p2", Rating: 6},
	}
	res := b.Build(products, nil)
	d := res.Details[0]
	if d.TotalPriceTransfer != 100 {
		t.Fatalf("expected total 100, got %v", d.TotalPriceTransfer)
	}
	if d.Products[1].PriceTransfer != nil {
		t.Fatal("missing per-line price must stay nil, not zero")
	}
}

func TestVerifiedRatingBounds(t *testing.T) {
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", ProductName: "p1", IDVerto: "V-1", Rating: 5},
		{AppraisalNumber: "A-1", ProductName: "p2", IDVerto: "V-2", Rating: 10},
	}
	prices := []extract.PriceRecord{
		{AppraisalNumber: "A-1", IDVerto: "V-1"},
		{AppraisalNumber: "A-1", IDVerto: "V-2"},
	}
	for i := 0; i < 25; i++ {
		res := NewBuilder(synth.NewSource(int64(i + 1))).Build(products, prices)
		for _, line := range res.Details[0].Products {
			if line.VerifiedRating == nil {
				t.Fatal("matched line must carry a verified rating")
			}
			if line.VerifiedRating.ID < 5 || line.VerifiedRating.ID > 10 {
				t.Fatalf("verified rating %d out of [5,10]", line.VerifiedRating.ID)
			}
		}
	}
}

func TestLimitBoundsAppraisalUniverse(t *testing.T) {
	b := testBuilder()
	b.Limit = 2
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", Rating: 5},
		{AppraisalNumber: "A-2", Rating: 5},
		{AppraisalNumber: "A-3", Rating: 5},
	}
	res := b.Build(products, nil)
	if len(res.Details) != 2 {
		t.Fatalf("expected limit 2, got %d", len(res.Details))
	}
	if res.Details[0].AppraisalNumber != "A-1" || res.Details[1].AppraisalNumber != "A-2" {
		t.Fatal("limit must keep first-seen order")
	}
	if res.Summary.ProductKeys != 3 {
		t.Fatalf("summary must count all keys, got %d", res.Summary.ProductKeys)
	}
}

func TestPriceOnlyKeysIgnored(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{{AppraisalNumber: "A-1", Rating: 5}}
	prices := []extract.PriceRecord{
		{AppraisalNumber: "A-1"},
		{AppraisalNumber: "GHOST-1"},
	}
	res := b.Build(products, prices)
	if len(res.Details) != 1 || res.Details[0].AppraisalNumber != "A-1" {
		t.Fatalf("price-only keys must not produce appraisals: %+v", res.Details)
	}
}

func TestContractOnlyWithContractNumber(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", Rating: 5, ContractNumber: "UM/24/7", ContractDate: "2024-02-01"},
		{AppraisalNumber: "A-2", Rating: 5},
	}
	res := b.Build(products, nil)
	if len(res.Details[0].Contracts) != 1 {
		t.Fatalf("expected contract for A-1, got %d", len(res.Details[0].Contracts))
	}
	c := res.Details[0].Contracts[0]
	if c.Number != "UM/24/7" || c.Date != "2024-02-01" {
		t.Fatalf("unexpected contract: %+v", c)
	}
	if len(res.Details[1].Contracts) != 0 {
		t.Fatal("A-2 has no contract number, expected no contract")
	}
}

func TestAuditLogEntries(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{{AppraisalNumber: "A-1", Rating: 5, CreatedAt: "2024-03-01"}}
	prices := []extract.PriceRecord{{AppraisalNumber: "A-1", OperatorName: "Ewa Mazur", ExpertiseDate: "2024-03-05", LocationName: "Poznan", LocationID: 5}}
	res := b.Build(products, prices)
	log := res.Details[0].AuditLog
	if len(log) != 2 {
		t.Fatalf("expected creation + verification entries, got %d", len(log))
	}
	if log[0].Action != "Utworzenie wyceny" || log[0].OperatorID != synth.SystemOperatorID {
		t.Fatalf("unexpected creation entry: %+v", log[0])
	}
	if log[1].OperatorName != "Ewa Mazur" || log[1].Timestamp != "2024-03-05T11:00:00Z" {
		t.Fatalf("unexpected verification entry: %+v", log[1])
	}

	// Without an operator only the creation entry remains.
	res2 := testBuilder().Build(products, nil)
	if len(res2.Details[0].AuditLog) != 1 {
		t.Fatalf("expected single audit entry, got %d", len(res2.Details[0].AuditLog))
	}
}

func TestOperatorIDStableAcrossAppraisals(t *testing.T) {
	b := testBuilder()
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", Rating: 5},
		{AppraisalNumber: "A-2", Rating: 5},
	}
	prices := []extract.PriceRecord{
		{AppraisalNumber: "A-1", OperatorName: "Jan Kowalski"},
		{AppraisalNumber: "A-2", OperatorName: "Jan Kowalski"},
	}
	res := b.Build(products, prices)
	a, c := res.Details[0].OperatorID, res.Details[1].OperatorID
	if a == nil || c == nil || *a != *c {
		t.Fatalf("same operator must keep one id, got %v and %v", a, c)
	}
	if *a < 100 {
		t.Fatalf("synthetic ids must start above the real range, got %d", *a)
	}
}

func TestShipmentStatusFollowsLifecycle(t *testing.T) {
	products := []extract.ProductRecord{{AppraisalNumber: "A-1", Rating: 5}}
	prices := []extract.PriceRecord{{AppraisalNumber: "A-1", Status: "zwrot"}}
	res := testBuilder().Build(products, prices)
	if res.Details[0].Shipments[0].Status != "delivered" {
		t.Fatalf("returned appraisal is past verification, expected delivered shipment, got %s", res.Details[0].Shipments[0].Status)
	}
}

func TestVersionSnapshotMirrorsTotals(t *testing.T) {
	products := []extract.ProductRecord{{AppraisalNumber: "A-1", Rating: 7, PriceTransfer: f64(300)}}
	res := testBuilder().Build(products, nil)
	d := res.Details[0]
	if len(d.Versions) != 1 {
		t.Fatalf("expected one version snapshot, got %d", len(d.Versions))
	}
	v := d.Versions[0]
	if v.TotalPriceTransfer != d.TotalPriceTransfer || len(v.Products) != len(d.Products) {
		t.Fatal("version snapshot must mirror the appraisal")
	}
}

func TestRunSummaryCounts(t *testing.T) {
	products := []extract.ProductRecord{
		{AppraisalNumber: "A-1", Rating: 5},
		{AppraisalNumber: "", Rating: 5},
	}
	prices := []extract.PriceRecord{
		{AppraisalNumber: "A-1"},
		{AppraisalNumber: ""},
		{AppraisalNumber: "B-9"},
	}
	res := testBuilder().Build(products, prices)
	s := res.Summary
	if s.ProductRowsRead != 2 || s.PriceRowsRead != 3 {
		t.Fatalf("row counts wrong: %+v", s)
	}
	if s.ProductRowsNoKey != 1 || s.PriceRowsNoKey != 1 {
		t.Fatalf("keyless counts wrong: %+v", s)
	}
	if s.ProductKeys != 1 || s.PriceKeys != 2 {
		t.Fatalf("key counts wrong: %+v", s)
	}
	if s.AppraisalsBuilt != 1 || s.ProductLinesBuilt != 1 {
		t.Fatalf("output counts wrong: %+v", s)
	}
}
