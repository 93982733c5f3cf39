package status

import (
	"strings"
	"sync"

	"appraisal_etl/coerce"
)

// nonTerminal is the round-robin cycle for rows whose text carries no
// explicit terminal signal. Rejected and ReturnedToCustomer are the only
// codes the sample data can actually signal, so the remaining 11 are
// spread cyclically for demo variety.
var nonTerminal = []Code{
	New,
	UnderVerification,
	Verified,
	Corrected,
	AwaitingDecision,
	Accepted,
	ContractInPreparation,
	ContractSigned,
	FinancialSettlement,
	Completed,
	ForwardedToHeadquarters,
}

// Classifier assigns lifecycle codes from free text. The fallback
// distribution is an auditable placeholder, not a business-accurate
// classifier: a real deployment must replace it with an authoritative
// status source. State is run-scoped; construct one per pipeline run.
type Classifier struct {
	mu     sync.Mutex
	cursor int
}

func NewClassifier() *Classifier { return &Classifier{} }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(coerce.FoldDiacritics(s)))
}

// Classify maps status and customer-decision text to exactly one code.
// Return-to-customer signals win over rejection; anything else advances
// the shared round-robin cursor by one and takes the next non-terminal
// code. Never fails.
func (c *Classifier) Classify(statusText, decisionText string) Code {
	st := normalize(statusText)
	dec := normalize(decisionText)

	if strings.Contains(st, "zwrocony") || strings.Contains(st, "zwrot") {
		return ReturnedToCustomer
	}
	if strings.Contains(st, "odrzucona") || strings.Contains(dec, "odrzucona") {
		return Rejected
	}

	c.mu.Lock()
	code := nonTerminal[c.cursor%len(nonTerminal)]
	c.cursor++
	c.mu.Unlock()
	return code
}
