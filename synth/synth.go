// Package synth produces the substitute values the projections carry
// instead of real customer data: names, emails, tracking numbers,
// operator ids. Nothing here feeds back into coercion, matching, or
// classification; randomness lives behind an injectable source so tests
// can pin the sequence.
package synth

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"appraisal_etl/coerce"
)

// Source is the randomness seam. The default wraps math/rand; tests
// substitute a fixed sequence.
type Source interface {
	IntN(n int) int
	Float64() float64
}

type randSource struct{ r *rand.Rand }

func (s randSource) IntN(n int) int   { return s.r.Intn(n) }
func (s randSource) Float64() float64 { return s.r.Float64() }

// NewSource returns a math/rand-backed source. Seed 0 means
// time-seeded; any other value gives a reproducible stream.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return randSource{r: rand.New(rand.NewSource(seed))}
}

var firstNames = []string{
	"Jan", "Anna", "Piotr", "Maria", "Tomasz", "Katarzyna", "Michał", "Ewa",
	"Krzysztof", "Agnieszka", "Andrzej", "Monika", "Paweł", "Joanna", "Marek",
	"Magdalena", "Robert", "Aleksandra", "Adam", "Barbara",
}

var lastNames = []string{
	"Nowak", "Kowalski", "Wiśniewski", "Wójcik", "Kamiński", "Lewandowski",
	"Zieliński", "Szymański", "Woźniak", "Dąbrowski", "Kozłowski", "Jankowski",
	"Mazur", "Kwiatkowski", "Krawczyk", "Piotrowski", "Grabowski", "Nowakowski",
	"Pawłowski", "Michalski",
}

var emailDomains = []string{"gmail.com", "wp.pl", "op.pl", "onet.pl", "interia.pl", "o2.pl"}

// Generator builds synthetic values for one pipeline run.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator { return &Generator{src: src} }

// TrackingNumber returns a courier-shaped tracking number: "DPD" plus 10
// random digits.
func (g *Generator) TrackingNumber() string {
	var b strings.Builder
	b.WriteString("DPD")
	for i := 0; i < 10; i++ {
		b.WriteByte(byte('0' + g.src.IntN(10)))
	}
	return b.String()
}

// ClientName returns a deterministic seed-indexed name, so the same
// appraisal always gets the same synthetic client.
func ClientName(seed int) string {
	return firstNames[seed%len(firstNames)] + " " + lastNames[(seed*7)%len(lastNames)]
}

// ClientEmail derives an anonymized address from a synthetic name. Real
// customer emails never reach the projections.
func ClientEmail(name string, seed int) string {
	slug := strings.ToLower(coerce.FoldDiacritics(name))
	slug = strings.Join(strings.Fields(slug), ".")
	return slug + "@" + emailDomains[seed%len(emailDomains)]
}

// ClientPhone returns a deterministic placeholder mobile number.
func ClientPhone(seed int) string {
	digits := fmt.Sprintf("%d", 600000000+seed*137)
	if len(digits) > 9 {
		digits = digits[:9]
	}
	return "+48" + digits
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	return g.src.Float64() < p
}

// IntN exposes the underlying source for small draws.
func (g *Generator) IntN(n int) int { return g.src.IntN(n) }

// OperatorRegistry assigns stable synthetic operator ids: the same name
// always maps to the same id within a run. Ids start above the real id
// range. Safe for concurrent callers; writes are serialized.
type OperatorRegistry struct {
	mu   sync.Mutex
	ids  map[string]int
	next int
}

// SystemOperatorID is the reserved id for system-generated entries and
// unnamed operators.
const SystemOperatorID = 1

func NewOperatorRegistry() *OperatorRegistry {
	return &OperatorRegistry{ids: make(map[string]int), next: 100}
}

// ID returns the registered id for an operator name, allocating the next
// sequential id on first sight. Empty names map to the system operator.
func (r *OperatorRegistry) ID(name string) int {
	if name == "" {
		return SystemOperatorID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.next
	r.next++
	r.ids[name] = id
	return id
}
