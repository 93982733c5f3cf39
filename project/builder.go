package project

import (
	"strconv"
	"strings"

	"appraisal_etl/coerce"
	"appraisal_etl/extract"
	"appraisal_etl/locations"
	"appraisal_etl/match"
	"appraisal_etl/status"
	"appraisal_etl/synth"
)

// DefaultLimit caps the number of appraisals built per run; the product
// extract holds years of history and demo consumers only need a prefix.
const DefaultLimit = 250

const (
	defaultCreatedAt    = "2024-01-01"
	defaultLocationName = "Warszawa"
	mailDomain          = "@serwis-awu.pl"
)

var ratingDescriptions = map[int]string{
	10: "Fabrycznie nowy",
	9:  "Stan idealny",
	8:  "Bardzo dobry",
	7:  "Dobry",
	6:  "Dostateczny",
	5:  "Widoczne ślady użytkowania",
}

// Builder turns grouped records into the two projections. All run-scoped
// mutable state (classifier cursor, operator registry, random source)
// is injected so a run is repeatable and testable.
type Builder struct {
	Limit      int
	Locations  *locations.Table
	Classifier *status.Classifier
	Operators  *synth.OperatorRegistry
	Gen        *synth.Generator
}

// NewBuilder wires a builder with default collaborators around the given
// random source.
func NewBuilder(src synth.Source) *Builder {
	return &Builder{
		Limit:      DefaultLimit,
		Locations:  locations.Default(),
		Classifier: status.NewClassifier(),
		Operators:  synth.NewOperatorRegistry(),
		Gen:        synth.NewGenerator(src),
	}
}

// Result is the output of one pipeline run.
type Result struct {
	List    []ListItem
	Details []Detail
	Summary RunSummary
}

// Build reconciles the two extracts. The product extract defines the
// appraisal universe: price-only keys are ignored. Both projections for
// a key share status, totals, tracking number, and operator because the
// shared fields are computed exactly once here.
func (b *Builder) Build(products []extract.ProductRecord, prices []extract.PriceRecord) *Result {
	prodGroups := match.GroupProducts(products)
	priceGroups := match.GroupPrices(prices)

	selected := prodGroups.Order
	limit := b.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(selected) > limit {
		selected = selected[:limit]
	}

	res := &Result{
		Summary: RunSummary{
			ProductRowsRead:  len(products),
			PriceRowsRead:    len(prices),
			ProductRowsNoKey: prodGroups.Skipped,
			PriceRowsNoKey:   priceGroups.Skipped,
			ProductKeys:      len(prodGroups.Order),
			PriceKeys:        len(priceGroups.Order),
		},
	}

	for i, key := range selected {
		id := i + 1
		detail := b.buildAppraisal(id, key, prodGroups.ByKey[key], priceGroups.ByKey[key])
		res.Details = append(res.Details, detail)
		res.List = append(res.List, listItemOf(detail))
		res.Summary.ProductLinesBuilt += len(detail.Products)
	}
	res.Summary.AppraisalsBuilt = len(res.Details)
	return res
}

func (b *Builder) buildAppraisal(id int, key string, prods []extract.ProductRecord, priceRows []extract.PriceRecord) Detail {
	first := prods[0]
	var firstPrice *extract.PriceRecord
	if len(priceRows) > 0 {
		firstPrice = &priceRows[0]
	}

	// Shared fields are computed once; the list item is derived from the
	// detail afterwards, which keeps the two projections consistent.
	var statusText, decisionText string
	locationID := b.Locations.Default
	locationName := defaultLocationName
	operatorName := ""
	expertiseDate := ""
	expertiseResult := ""
	if firstPrice != nil {
		statusText = firstPrice.Status
		decisionText = firstPrice.CustomerDecision
		locationID = firstPrice.LocationID
		locationName = firstPrice.LocationName
		operatorName = firstPrice.OperatorName
		expertiseDate = firstPrice.ExpertiseDate
		expertiseResult = firstPrice.ExpertiseResult
	}
	code := b.Classifier.Classify(statusText, decisionText)

	createdAt := first.CreatedAt
	if createdAt == "" {
		createdAt = defaultCreatedAt
	}
	tracking := b.Gen.TrackingNumber()
	clientName := synth.ClientName(id)
	clientEmail := synth.ClientEmail(clientName, id)

	lines := make([]ProductLine, 0, len(prods))
	var totalTransfer, totalGiftCard float64
	for idx, p := range prods {
		line := b.buildLine(id, idx, p, priceRows)
		lines = append(lines, line)
		if line.PriceTransfer != nil {
			totalTransfer += *line.PriceTransfer
		}
		if line.PriceGiftCard != nil {
			totalGiftCard += *line.PriceGiftCard
		}
	}

	detail := Detail{
		ID:              id,
		AppraisalNumber: key,
		CreatedAt:       createdAt,
		Status:          code,
		TrackingNumber:  tracking,
		Client: Client{
			ID:          id,
			Name:        clientName,
			Email:       clientEmail,
			PhoneNumber: synth.ClientPhone(id),
		},
		LocationID:         locationID,
		LocationName:       locationName,
		AgreementType:      Dictionary{ID: 1, Name: "Umowa kupna-sprzedaży"},
		PaymentType:        Dictionary{ID: 1, Name: "Przelew bankowy"},
		CollectionType:     Dictionary{ID: 1, Name: "Kurier DPD"},
		Products:           lines,
		CustomerDecision:   optional(decisionText),
		ExpertiseResult:    optional(expertiseResult),
		ExpertiseDate:      optional(expertiseDate),
		TotalPriceTransfer: totalTransfer,
		TotalPriceGiftCard: totalGiftCard,
	}
	if operatorName != "" {
		opID := b.Operators.ID(operatorName)
		detail.OperatorID = &opID
		detail.OperatorName = &operatorName
	}

	detail.Versions = []Version{{
		VersionNumber:       1,
		CreatedAt:           createdAt + "T09:00:00Z",
		CreatedBy:           "System",
		CreatedByOperatorID: synth.SystemOperatorID,
		Reason:              "Wycena początkowa",
		Products:            lines,
		TotalPriceTransfer:  totalTransfer,
		TotalPriceGiftCard:  totalGiftCard,
	}}

	if first.ContractNumber != "" {
		detail.Contracts = append(detail.Contracts, b.buildContract(id, first, code, createdAt, operatorName))
	}
	detail.Shipments = []Shipment{b.buildShipment(id, tracking, code, createdAt)}
	detail.Communications = b.buildCommunications(id, key, createdAt, clientEmail, operatorName)
	detail.AuditLog = b.buildAuditLog(id, key, createdAt, expertiseDate, locationName, operatorName)
	return detail
}

func (b *Builder) buildLine(appraisalID, idx int, p extract.ProductRecord, priceRows []extract.PriceRecord) ProductLine {
	matched := match.FindPrice(p, idx, priceRows)

	line := ProductLine{
		ID: appraisalID*1000 + idx + 1,
		Data: ProductData{
			ID:        appraisalID*1000 + idx + 1,
			ERPIndex:  p.IDVerto,
			Name:      p.ProductName,
			OfferType: 1,
		},
		IDVerto:             p.IDVerto,
		SerialNumber:        optional(p.SerialNumber),
		DeclaredRating:      ratingOf(p.Rating),
		DeclaredAccessories: parseAccessories(p.Accessories),
		AccessoryComment:    p.AdditionalAccessories,
		PriceTransfer:       p.PriceTransfer,
		PriceGiftCard:       p.PriceGiftCard,
		HasPriceInDatabase:  b.Gen.Chance(0.7),
		InternalNote:        p.Notes,
		HasBox:              b.Gen.Chance(0.5),
	}
	if matched != nil {
		// Verified ratings are synthetic: the declared rating nudged
		// within [5,10]. Real expertise data never reaches this field.
		verified := p.Rating
		if b.Gen.Chance(0.4) {
			verified--
		}
		if verified < 5 {
			verified = 5
		}
		if verified > 10 {
			verified = 10
		}
		vr := ratingOf(verified)
		line.VerifiedRating = &vr
		line.VerifiedAccessories = parseAccessories(p.Accessories)
	}
	return line
}

func (b *Builder) buildContract(id int, first extract.ProductRecord, code status.Code, createdAt, operatorName string) Contract {
	date := first.ContractDate
	if date == "" {
		date = createdAt
	}
	contractStatus := "generated"
	if code >= status.ContractSigned {
		contractStatus = "signed"
	}
	createdBy := operatorName
	if createdBy == "" {
		createdBy = "System"
	}
	return Contract{
		ID:          id*10 + 1,
		AppraisalID: id,
		Type:        "umowa_kupna",
		Subtype:     "physical_person",
		Number:      first.ContractNumber,
		Date:        date,
		Status:      contractStatus,
		CreatedBy:   createdBy,
		CreatedAt:   date,
	}
}

func (b *Builder) buildShipment(id int, tracking string, code status.Code, createdAt string) Shipment {
	shipStatus := "in_transit"
	if code >= status.Verified {
		shipStatus = "delivered"
	}
	return Shipment{
		ID:             id*10 + 1,
		AppraisalID:    id,
		Type:           "incoming_courier",
		TrackingNumber: tracking,
		Carrier:        "dpd",
		Status:         shipStatus,
		CreatedAt:      createdAt + "T08:00:00Z",
		UpdatedAt:      createdAt + "T08:00:00Z",
	}
}

func (b *Builder) buildCommunications(id int, key, createdAt, clientEmail, operatorName string) []CommunicationMessage {
	from := operatorName
	if from == "" {
		from = "operator"
	}
	msgs := b.Gen.Communications(key, createdAt)
	out := make([]CommunicationMessage, 0, len(msgs))
	for i, m := range msgs {
		msg := CommunicationMessage{
			ID:          id*100 + i + 1,
			AppraisalID: id,
			Subject:     m.Subject,
			Body:        m.Body,
			To:          clientEmail,
			Timestamp:   m.Date + "T10:00:00Z",
			Status:      "sent",
		}
		if m.From == "system" {
			msg.Type = "system"
			msg.From = "system" + mailDomain
		} else {
			msg.Type = "email_sent"
			msg.From = mailSlug(from) + mailDomain
		}
		out = append(out, msg)
	}
	return out
}

func (b *Builder) buildAuditLog(id int, key, createdAt, expertiseDate, locationName, operatorName string) []AuditEntry {
	log := []AuditEntry{{
		ID:           id*100 + 1,
		Timestamp:    createdAt + "T09:00:00Z",
		OperatorID:   synth.SystemOperatorID,
		OperatorName: "System",
		LocationName: locationName,
		Action:       "Utworzenie wyceny",
		Details:      "Wycena " + key + " została utworzona",
	}}
	if operatorName != "" {
		ts := expertiseDate
		if ts == "" {
			ts = createdAt
		}
		log = append(log, AuditEntry{
			ID:           id*100 + 2,
			Timestamp:    ts + "T11:00:00Z",
			OperatorID:   b.Operators.ID(operatorName),
			OperatorName: operatorName,
			LocationName: locationName,
			Action:       "Weryfikacja produktów",
			Details:      "Produkty zostały zweryfikowane przez " + operatorName,
		})
	}
	return log
}

// listItemOf derives the flat projection from an already-built detail,
// guaranteeing the shared-field consistency invariant.
func listItemOf(d Detail) ListItem {
	return ListItem{
		ID:                 d.ID,
		AppraisalNumber:    d.AppraisalNumber,
		CreatedAt:          d.CreatedAt,
		Status:             d.Status,
		TrackingNumber:     d.TrackingNumber,
		ClientName:         d.Client.Name,
		ClientEmail:        d.Client.Email,
		ProductCount:       len(d.Products),
		LocationName:       d.LocationName,
		OperatorName:       d.OperatorName,
		TotalPriceTransfer: d.TotalPriceTransfer,
		TotalPriceGiftCard: d.TotalPriceGiftCard,
		CustomerDecision:   d.CustomerDecision,
	}
}

func ratingOf(v int) Rating {
	desc, ok := ratingDescriptions[v]
	if !ok {
		v = 5
		desc = ratingDescriptions[5]
	}
	return Rating{ID: v, Name: strconv.Itoa(v), Description: desc}
}

func parseAccessories(s string) []Accessory {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []Accessory
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		id := len(out) + 1
		out = append(out, Accessory{ID: id, Data: AccessoryData{ID: id, Name: name}})
	}
	return out
}

func mailSlug(name string) string {
	slug := strings.ToLower(coerce.FoldDiacritics(name))
	return strings.Join(strings.Fields(slug), ".")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
