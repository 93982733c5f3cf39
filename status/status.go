// Package status derives canonical lifecycle codes from the free-text
// status and customer-decision fields of the price extract.
package status

// Code is a lifecycle stage. The numeric values are the ids the
// downstream system stores and must not be reordered.
type Code int

const (
	New Code = iota + 1
	UnderVerification
	Verified
	Corrected
	AwaitingDecision
	Accepted
	Rejected
	ContractInPreparation
	ContractSigned
	FinancialSettlement
	Completed
	ForwardedToHeadquarters
	ReturnedToCustomer
)

var keys = map[Code]string{
	New:                     "nowa",
	UnderVerification:       "w_trakcie_weryfikacji",
	Verified:                "zweryfikowana",
	Corrected:               "skorygowana",
	AwaitingDecision:        "oczekuje_na_decyzje",
	Accepted:                "zaakceptowana",
	Rejected:                "odrzucona",
	ContractInPreparation:   "umowa_w_przygotowaniu",
	ContractSigned:          "umowa_podpisana",
	FinancialSettlement:     "realizacja_finansowa",
	Completed:               "zakonczona",
	ForwardedToHeadquarters: "przekazana_do_centrali",
	ReturnedToCustomer:      "zwrot_do_klienta",
}

var labels = map[Code]string{
	New:                     "Nowa",
	UnderVerification:       "W trakcie weryfikacji",
	Verified:                "Zweryfikowana",
	Corrected:               "Skorygowana",
	AwaitingDecision:        "Oczekuje na decyzję klienta",
	Accepted:                "Zaakceptowana",
	Rejected:                "Odrzucona",
	ContractInPreparation:   "Umowa w przygotowaniu",
	ContractSigned:          "Umowa podpisana",
	FinancialSettlement:     "Realizacja finansowa",
	Completed:               "Zakończona",
	ForwardedToHeadquarters: "Przekazana do centrali",
	ReturnedToCustomer:      "Zwrot do klienta",
}

// String returns the stable snake-case key for the code.
func (c Code) String() string {
	if k, ok := keys[c]; ok {
		return k
	}
	return "nieznany"
}

// Label returns the display label.
func (c Code) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return "Nieznany"
}
