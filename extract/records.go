package extract

import (
	"appraisal_etl/coerce"
	"appraisal_etl/locations"
	"appraisal_etl/schema"
)

// AnchorColumn is the stable header used to locate the drifting header
// row of the price extract.
const AnchorColumn = "Numer wyceny"

// ProductRecord is one normalized row of the product intake extract.
// Empty date strings mean the source held nothing parseable; nil prices
// mean the same for amounts.
type ProductRecord struct {
	AppraisalNumber       string
	CreatedAt             string
	IDVerto               string
	ProductName           string
	SerialNumber          string
	CustomerEmail         string
	ContractNumber        string
	ContractDate          string
	PriceTransfer         *float64
	PriceGiftCard         *float64
	Rating                int
	Accessories           string
	AdditionalAccessories string
	Notes                 string
	DocumentType          string
}

// PriceRecord is one normalized row of the price/status extract.
type PriceRecord struct {
	AppraisalNumber  string
	ExpertiseResult  string
	Status           string
	CustomerDecision string
	LocationName     string
	LocationID       int
	OperatorName     string
	ExpertiseDate    string
	ProductName      string
	IDVerto          string
	SerialNumber     string
	CustomerEmail    string
}

type productColumns struct {
	created, verto, name, serial, email string
	contractNo, contractDate            string
	priceTransfer, priceGiftCard        string
	rating, accessories, addAcc         string
	notes, docType, appraisal           string
}

type priceColumns struct {
	expertise, status, decision, location string
	operator, expDate, appraisal          string
	name, verto, serial, email            string
}

func resolve(headers []string, aliases ...string) string {
	h, _ := schema.Resolve(headers, aliases...)
	return h
}

func resolveProductColumns(headers []string) productColumns {
	return productColumns{
		created:       resolve(headers, "Data utworzenia wyceny", "Data utworzenia"),
		verto:         resolve(headers, "ID Verto"),
		name:          resolve(headers, "Nazwa produktu"),
		serial:        resolve(headers, "Numer seryjny"),
		email:         resolve(headers, "E-mail klienta", "Email klienta"),
		contractNo:    resolve(headers, "Numer umowy"),
		contractDate:  resolve(headers, "Data umowy"),
		priceTransfer: resolve(headers, "Cena przelew"),
		priceGiftCard: resolve(headers, "Cena karta podarunkowa", "Cena karta"),
		rating:        resolve(headers, "Ocena"),
		accessories:   resolve(headers, "Akcesoria"),
		addAcc:        resolve(headers, "Akcesoria dodatkowe"),
		notes:         resolve(headers, "Uwagi"),
		docType:       resolve(headers, "Rodzaj dokumentu"),
		appraisal:     resolve(headers, AnchorColumn),
	}
}

func resolvePriceColumns(headers []string) priceColumns {
	return priceColumns{
		expertise: resolve(headers, "Wynik ekspertyzy"),
		status:    resolve(headers, "Status"),
		decision:  resolve(headers, "Decyzja klienta"),
		location:  resolve(headers, "Lokalizacja"),
		operator:  resolve(headers, "Inspektor"),
		expDate:   resolve(headers, "Data ekspertyzy"),
		appraisal: resolve(headers, AnchorColumn),
		name:      resolve(headers, "Nazwa produktu"),
		verto:     resolve(headers, "ID Verto"),
		serial:    resolve(headers, "Numer seryjny"),
		email:     resolve(headers, "E-mail klienta", "Email klienta"),
	}
}

func dateOrEmpty(c coerce.Cell) string {
	d, ok := coerce.ParseDate(c)
	if !ok {
		return ""
	}
	return d
}

func priceOrNil(c coerce.Cell) *float64 {
	p, ok := coerce.ParsePrice(c)
	if !ok {
		return nil
	}
	return &p
}

// ProductRecords normalizes a loaded product sheet, keeping extract
// order. Rows without an appraisal key are kept here and dropped (and
// counted) at grouping time.
func ProductRecords(sheet *Sheet) []ProductRecord {
	cols := resolveProductColumns(sheet.Headers)
	out := make([]ProductRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		out = append(out, ProductRecord{
			AppraisalNumber:       row.cell(cols.appraisal).Trim(),
			CreatedAt:             dateOrEmpty(row.cell(cols.created)),
			IDVerto:               row.cell(cols.verto).Trim(),
			ProductName:           row.cell(cols.name).Trim(),
			SerialNumber:          row.cell(cols.serial).Trim(),
			CustomerEmail:         row.cell(cols.email).Trim(),
			ContractNumber:        row.cell(cols.contractNo).Trim(),
			ContractDate:          dateOrEmpty(row.cell(cols.contractDate)),
			PriceTransfer:         priceOrNil(row.cell(cols.priceTransfer)),
			PriceGiftCard:         priceOrNil(row.cell(cols.priceGiftCard)),
			Rating:                coerce.ParseRating(row.cell(cols.rating)),
			Accessories:           row.cell(cols.accessories).Trim(),
			AdditionalAccessories: row.cell(cols.addAcc).Trim(),
			Notes:                 row.cell(cols.notes).Trim(),
			DocumentType:          row.cell(cols.docType).Trim(),
		})
	}
	return out
}

// PriceRecords normalizes a loaded price sheet, resolving location ids
// against the given table.
func PriceRecords(sheet *Sheet, locs *locations.Table) []PriceRecord {
	cols := resolvePriceColumns(sheet.Headers)
	out := make([]PriceRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		locName := row.cell(cols.location).Trim()
		out = append(out, PriceRecord{
			AppraisalNumber:  row.cell(cols.appraisal).Trim(),
			ExpertiseResult:  row.cell(cols.expertise).Trim(),
			Status:           row.cell(cols.status).Trim(),
			CustomerDecision: row.cell(cols.decision).Trim(),
			LocationName:     locName,
			LocationID:       locs.Resolve(locName),
			OperatorName:     row.cell(cols.operator).Trim(),
			ExpertiseDate:    dateOrEmpty(row.cell(cols.expDate)),
			ProductName:      row.cell(cols.name).Trim(),
			IDVerto:          row.cell(cols.verto).Trim(),
			SerialNumber:     row.cell(cols.serial).Trim(),
			CustomerEmail:    row.cell(cols.email).Trim(),
		})
	}
	return out
}
