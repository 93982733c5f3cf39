package synth

import "time"

// Message is one templated entry of a synthetic communications thread.
type Message struct {
	From    string
	Subject string
	Body    string
	Date    string
}

type template struct {
	from    string
	subject string
	body    func(appraisal string) string
}

var commTemplates = []template{
	{"system", "Wycena utworzona", func(a string) string {
		return "Wycena " + a + " została utworzona i oczekuje na przesyłkę."
	}},
	{"operator", "Przesyłka odebrana", func(a string) string {
		return "Otrzymaliśmy przesyłkę do wyceny " + a + ". Rozpoczynamy ekspertyzę."
	}},
	{"system", "Ekspertyza zakończona", func(a string) string {
		return "Ekspertyza dla wyceny " + a + " została zakończona."
	}},
	{"operator", "Aktualizacja statusu", func(a string) string {
		return "Status wyceny " + a + " został zaktualizowany."
	}},
}

const fallbackBaseDate = "2024-01-15"

// Communications builds a 2-3 message thread seeded from the appraisal
// number and its creation date. Message dates walk forward from the
// creation date with small random gaps.
func (g *Generator) Communications(appraisalNumber, createdAt string) []Message {
	base, err := time.Parse("2006-01-02", createdAt)
	if err != nil {
		base, _ = time.Parse("2006-01-02", fallbackBaseDate)
	}
	count := 2 + g.src.IntN(2)
	msgs := make([]Message, 0, count)
	for i := 0; i < count && i < len(commTemplates); i++ {
		tpl := commTemplates[i]
		date := base.AddDate(0, 0, i*2+g.src.IntN(3))
		msgs = append(msgs, Message{
			From:    tpl.from,
			Subject: tpl.subject,
			Body:    tpl.body(appraisalNumber),
			Date:    date.Format("2006-01-02"),
		})
	}
	return msgs
}
