// Package project assembles the two canonical output shapes: the flat
// list projection and the full detail projection per appraisal.
package project

import "appraisal_etl/status"

// Rating is a rating dictionary entry as the consumer expects it.
type Rating struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AccessoryData names one accessory.
type AccessoryData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Accessory is one parsed accessory entry.
type Accessory struct {
	ID    int           `json:"id"`
	Price float64       `json:"price"`
	Data  AccessoryData `json:"data"`
}

// ProductData is the catalog-facing part of a product line.
type ProductData struct {
	ID        int    `json:"id"`
	ERPIndex  string `json:"erpIndex,omitempty"`
	Name      string `json:"name"`
	OfferType int    `json:"offerType"`
}

// ProductLine is one matched product row with its verification fields.
type ProductLine struct {
	ID                  int         `json:"id"`
	Data                ProductData `json:"data"`
	IDVerto             string      `json:"idVerto"`
	SerialNumber        *string     `json:"serialNumber"`
	DeclaredRating      Rating      `json:"declaredRating"`
	VerifiedRating      *Rating     `json:"verifiedRating"`
	DeclaredAccessories []Accessory `json:"declaredAccessories"`
	VerifiedAccessories []Accessory `json:"verifiedAccessories"`
	AccessoryComment    string      `json:"accessoryComment"`
	PriceTransfer       *float64    `json:"priceTransfer"`
	PriceGiftCard       *float64    `json:"priceGiftCard"`
	HasPriceInDatabase  bool        `json:"hasPriceInDatabase"`
	InternalNote        string      `json:"internalNote"`
	Warranty            bool        `json:"warranty"`
	HasBox              bool        `json:"hasBox"`
}

// Client carries the anonymized client details of a detail projection.
type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	IsCompany   bool   `json:"isCompany"`
}

// Dictionary is a generic id+name lookup entry.
type Dictionary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Version is the single initial snapshot attached to each appraisal.
type Version struct {
	VersionNumber       int           `json:"versionNumber"`
	CreatedAt           string        `json:"createdAt"`
	CreatedBy           string        `json:"createdBy"`
	CreatedByOperatorID int           `json:"createdByOperatorId"`
	Reason              string        `json:"reason"`
	Products            []ProductLine `json:"products"`
	TotalPriceTransfer  float64       `json:"totalPriceTransfer"`
	TotalPriceGiftCard  float64       `json:"totalPriceGiftCard"`
}

// Contract is the synthetic purchase contract, present only when the
// source row carried a contract number.
type Contract struct {
	ID          int    `json:"id"`
	AppraisalID int    `json:"appraisalId"`
	Type        string `json:"type"`
	Subtype     string `json:"subtype"`
	Number      string `json:"number"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
}

// Shipment is the synthetic inbound parcel.
type Shipment struct {
	ID             int    `json:"id"`
	AppraisalID    int    `json:"appraisalId"`
	Type           string `json:"type"`
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// CommunicationMessage is one entry of the synthetic thread.
type CommunicationMessage struct {
	ID          int    `json:"id"`
	AppraisalID int    `json:"appraisalId"`
	Type        string `json:"type"`
	From        string `json:"from"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
}

// AuditEntry is one synthetic audit-log line.
type AuditEntry struct {
	ID           int    `json:"id"`
	Timestamp    string `json:"timestamp"`
	OperatorID   int    `json:"operatorId"`
	OperatorName string `json:"operatorName"`
	LocationName string `json:"locationName"`
	Action       string `json:"action"`
	Details      string `json:"details"`
}

// ListItem is the flat summary projection of one appraisal.
type ListItem struct {
	ID                 int         `json:"id"`
	AppraisalNumber    string      `json:"appraisalNumber"`
	CreatedAt          string      `json:"createdAt"`
	Status             status.Code `json:"status"`
	TrackingNumber     string      `json:"trackingNumber"`
	ClientName         string      `json:"clientName"`
	ClientEmail        string      `json:"clientEmail"`
	ProductCount       int         `json:"productCount"`
	LocationName       string      `json:"locationName"`
	OperatorName       *string     `json:"assignedOperatorName"`
	TotalPriceTransfer float64     `json:"totalPriceTransfer"`
	TotalPriceGiftCard float64     `json:"totalPriceGiftCard"`
	CustomerDecision   *string     `json:"customerDecision"`
}

// Detail is the full nested projection of one appraisal.
type Detail struct {
	ID                 int                    `json:"id"`
	AppraisalNumber    string                 `json:"appraisalNumber"`
	CreatedAt          string                 `json:"createdAt"`
	ExpiryDate         *string                `json:"expiryDate"`
	Status             status.Code            `json:"status"`
	TrackingNumber     string                 `json:"trackingNumber"`
	Client             Client                 `json:"client"`
	LocationID         int                    `json:"locationId"`
	LocationName       string                 `json:"locationName"`
	OperatorID         *int                   `json:"assignedOperatorId"`
	OperatorName       *string                `json:"assignedOperatorName"`
	AgreementType      Dictionary             `json:"agreementType"`
	PaymentType        Dictionary             `json:"paymentType"`
	CollectionType     Dictionary             `json:"collectionType"`
	Products           []ProductLine          `json:"products"`
	Versions           []Version              `json:"versions"`
	Contracts          []Contract             `json:"contracts"`
	Communications     []CommunicationMessage `json:"communications"`
	Shipments          []Shipment             `json:"shipments"`
	AuditLog           []AuditEntry           `json:"auditLog"`
	CustomerDecision   *string                `json:"customerDecision"`
	ExpertiseResult    *string                `json:"expertiseResult"`
	ExpertiseDate      *string                `json:"expertiseDate"`
	TotalPriceTransfer float64                `json:"totalPriceTransfer"`
	TotalPriceGiftCard float64                `json:"totalPriceGiftCard"`
}

// RunSummary reports operational counts for one pipeline run.
type RunSummary struct {
	ProductRowsRead    int `json:"product_rows_read"`
	PriceRowsRead      int `json:"price_rows_read"`
	ProductRowsNoKey   int `json:"product_rows_no_key"`
	PriceRowsNoKey     int `json:"price_rows_no_key"`
	ProductKeys        int `json:"product_keys"`
	PriceKeys          int `json:"price_keys"`
	AppraisalsBuilt    int `json:"appraisals_built"`
	ProductLinesBuilt  int `json:"product_lines_built"`
}
