package swissgerman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/jobad-composer/internal/types"
)

func TestEnforce_RoundTrip(t *testing.T) {
	out := Enforce("Wir freuen uns auf Ihre Gehaltsvorstellung und ein großes Team.")

	assert.Contains(t, out, "Salärvorstellung")
	assert.Contains(t, out, "grosses")
	assert.NotContains(t, out, "ß")
	assert.NotContains(t, out, "Gehaltsvorstellung")
}

func TestEnforce_VocabularyTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"salary", "Das Gehalt ist attraktiv", "Das Salär ist attraktiv"},
		{"salary plural", "Die Gehälter steigen", "Die Saläre steigen"},
		{"collective agreement", "Anstellung nach Tarifvertrag", "Anstellung nach Gesamtarbeitsvertrag (GAV)"},
		{"vacation", "30 Tage Urlaub pro Jahr", "30 Tage Ferien pro Jahr"},
		{"vacation days", "Urlaubstage nach Absprache", "Ferientage nach Absprache"},
		{"school leaving exam", "Abitur oder vergleichbar", "Matura oder vergleichbar"},
		{"pension insurance", "Beiträge zur Rentenversicherung", "Beiträge zur AHV"},
		{"company pension", "Betriebsrente inklusive", "Pensionskasse (BVG) inklusive"},
		{"occupational pension lower", "mit betriebliche Altersvorsorge", "mit berufliche Vorsorge (BVG)"},
		{"occupational pension upper", "Betriebliche Altersvorsorge inklusive", "Berufliche Vorsorge (BVG) inklusive"},
		{"employees", "Unsere Arbeitnehmer profitieren", "Unsere Arbeitnehmende profitieren"},
		{"bicycle", "Fahrrad zur Verfügung", "Velo zur Verfügung"},
		{"bag", "eine Tüte Gipfeli", "eine Sack Gipfeli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enforce(tt.input))
		})
	}
}

func TestEnforce_WordBoundariesKeepCompounds(t *testing.T) {
	// Compounds are not covered by the conservative map and stay untouched.
	assert.Equal(t, "Urlaubsgeld", Enforce("Urlaubsgeld"))
	assert.Equal(t, "Gehaltsband", Enforce("Gehaltsband"))
	assert.Equal(t, "Arbeitnehmervertretung", Enforce("Arbeitnehmervertretung"))
}

func TestEnforce_EszettRunsBeforeVocabulary(t *testing.T) {
	assert.Equal(t, "Strasse", Enforce("Straße"))
	// ß replacement runs first, so the Straßenbahn rule sees Strassenbahn
	// and no longer fires. The orthography fix wins over the term swap.
	assert.Equal(t, "Strassenbahn", Enforce("Straßenbahn"))
}

func TestEnforceAll(t *testing.T) {
	out := EnforceAll([]string{"30 Tage Urlaub", "faires Gehalt"})
	assert.Equal(t, []string{"30 Tage Ferien", "faires Salär"}, out)

	assert.Nil(t, EnforceAll(nil))
}

func TestEnforceBody(t *testing.T) {
	body := types.JobBody{
		JobDescription: "Wir bieten ein großartiges Umfeld.",
		Requirements:   []string{"Abitur oder Matura"},
		Benefits:       []string{"30 Tage Urlaub", "Betriebsrente"},
		Duties:         []string{"Straßen planen"},
		Summary:        "Attraktives Gehalt.",
	}

	out := EnforceBody(body)

	assert.Equal(t, "Wir bieten ein grossartiges Umfeld.", out.JobDescription)
	assert.Equal(t, []string{"Matura oder Matura"}, out.Requirements)
	assert.Equal(t, []string{"30 Tage Ferien", "Pensionskasse (BVG)"}, out.Benefits)
	assert.Equal(t, []string{"Strassen planen"}, out.Duties)
	assert.Equal(t, "Attraktives Salär.", out.Summary)
}

func TestPromptBlock_FormalitySwitchesPronounRule(t *testing.T) {
	formal := PromptBlock(types.FormalityFormal)
	neutral := PromptBlock(types.FormalityNeutral)
	casual := PromptBlock(types.FormalityCasual)

	require.True(t, strings.HasPrefix(formal, "## Schweizer Schriftdeutsch (OBLIGATORISCH)"))
	assert.Contains(t, formal, "siezen")
	assert.Contains(t, formal, "NIEMALS «du» oder «dir» als Anrede.")
	assert.Equal(t, formal, neutral)

	assert.Contains(t, casual, "duzen")
	assert.Contains(t, casual, "NIEMALS «Sie» oder «Ihnen» als Höflichkeitsform.")
	assert.NotEqual(t, formal, casual)

	assert.True(t, strings.HasSuffix(formal, "\n"))
	assert.Contains(t, formal, "NIEMALS «ß» verwenden.")
}

func TestCheckPronounConsistency(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		formality  types.Formality
		consistent bool
		count      int
	}{
		{
			name:       "formal text clean",
			text:       "Sie arbeiten eng mit dem Team zusammen. Wir bieten Ihnen viel.",
			formality:  types.FormalityFormal,
			consistent: true,
		},
		{
			name:       "formal text with du drift",
			text:       "Du arbeitest mit deinem Team. Wir bieten dir viel.",
			formality:  types.FormalityFormal,
			consistent: false,
			count:      3,
		},
		{
			name:       "casual text clean",
			text:       "Du gestaltest deine Projekte selbst.",
			formality:  types.FormalityCasual,
			consistent: true,
		},
		{
			name:       "casual text with formal drift",
			text:       "Sie arbeiten mit Ihrem Team. Wir bieten Ihnen viel.",
			formality:  types.FormalityCasual,
			consistent: false,
			count:      2,
		},
		{
			name:       "third person sie is not formal address",
			text:       "Unsere Kundinnen wissen, was sie wollen.",
			formality:  types.FormalityCasual,
			consistent: true,
		},
		{
			name:       "du inside words does not count",
			text:       "Produktion und Studium sind kein Problem.",
			formality:  types.FormalityNeutral,
			consistent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consistent, count := CheckPronounConsistency(tt.text, tt.formality)
			assert.Equal(t, tt.consistent, consistent)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestCheckPronounConsistencyAll(t *testing.T) {
	ok, total := CheckPronounConsistencyAll([]string{
		"Du packst mit an.",
		"Dein Einsatz zählt.",
	}, types.FormalityFormal)

	assert.False(t, ok)
	assert.Equal(t, 2, total)
}

func TestCheckVocabulary(t *testing.T) {
	clean, total, details := CheckVocabulary(
		"Wir zahlen ein gutes Gehalt. Das Gehalt ist verhandelbar. Urlaub gibt es auch.")

	assert.False(t, clean)
	assert.Equal(t, 3, total)
	assert.Contains(t, details, "Gehalt (→ Salär) ×2")
	assert.Contains(t, details, "Urlaub* (→ Ferien) ×1")
}

func TestCheckVocabulary_CleanText(t *testing.T) {
	clean, total, details := CheckVocabulary(
		"Wir bieten ein faires Salär, fünf Wochen Ferien und eine Pensionskasse.")

	assert.True(t, clean)
	assert.Zero(t, total)
	assert.Empty(t, details)
}

func TestCheckBody_AggregatesAllFields(t *testing.T) {
	body := types.JobBody{
		JobDescription: "Du arbeitest an spannenden Projekten.",
		Benefits:       []string{"faires Gehalt", "30 Tage Urlaub"},
		Summary:        "Dein neuer Job.",
	}

	report := CheckBody(body, types.FormalityFormal)

	assert.False(t, report.Clean())
	assert.False(t, report.PronounConsistent)
	assert.Equal(t, 2, report.PronounViolations)
	assert.False(t, report.VocabularyClean)
	assert.Equal(t, 2, report.VocabularyViolations)
	assert.Len(t, report.VocabularyDetails, 2)
}

func TestCheckBody_CleanReport(t *testing.T) {
	body := types.JobBody{
		JobDescription: "Sie gestalten unsere Plattform mit.",
		Benefits:       []string{"faires Salär", "fünf Wochen Ferien"},
	}

	report := CheckBody(body, types.FormalityNeutral)

	assert.True(t, report.Clean())
	assert.Zero(t, report.PronounViolations)
	assert.Zero(t, report.VocabularyViolations)
}