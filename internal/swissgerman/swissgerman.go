// Package swissgerman enforces Schweizer Schriftdeutsch on generated German
// text: ß never appears (always ss), DE-DE vocabulary is mapped to its CH
// equivalent, and compliance checks report pronoun drift and leftover DE-DE
// terms. Every German string leaving the system passes through Enforce.
package swissgerman

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/matthias/jobad-composer/internal/types"
)

type termRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// termRules maps DE-DE vocabulary to CH usage, word-boundary anchored and
// case-sensitive. The list is intentionally conservative: only established
// CH/DE differences that show up in HR and job-ad copy. Terms that are the
// same in both variants (Bruttolohn, Büro, Parkplatz, Tram, Velo) need no
// rule.
var termRules = []termRule{
	{regexp.MustCompile(`\bTarifvertrag\b`), "Gesamtarbeitsvertrag (GAV)"},
	{regexp.MustCompile(`\bTarifverträge\b`), "Gesamtarbeitsverträge (GAV)"},
	{regexp.MustCompile(`\bTarifvertrags\b`), "Gesamtarbeitsvertrags (GAV)"},
	{regexp.MustCompile(`\bGehalt\b`), "Salär"},
	{regexp.MustCompile(`\bGehalts\b`), "Salärs"},
	{regexp.MustCompile(`\bGehälter\b`), "Saläre"},
	{regexp.MustCompile(`\bGehaltsvorstellung\b`), "Salärvorstellung"},
	{regexp.MustCompile(`\bGehaltsvorstellungen\b`), "Salärvorstellungen"},
	{regexp.MustCompile(`\bGehaltserhöhung\b`), "Salärerhöhung"},
	{regexp.MustCompile(`\bGehaltsabrechnung\b`), "Lohnabrechnung"},
	{regexp.MustCompile(`\bArbeitnehmer\b`), "Arbeitnehmende"},
	{regexp.MustCompile(`\bArbeitnehmern\b`), "Arbeitnehmenden"},
	{regexp.MustCompile(`\bArbeitnehmers\b`), "Arbeitnehmenden"},
	{regexp.MustCompile(`\bAbitur\b`), "Matura"},
	{regexp.MustCompile(`\bAbiturient\b`), "Maturand"},
	{regexp.MustCompile(`\bAbiturientin\b`), "Maturandin"},
	{regexp.MustCompile(`\bAbiturienten\b`), "Maturanden"},
	{regexp.MustCompile(`\bUrlaub\b`), "Ferien"},
	{regexp.MustCompile(`\bUrlaubs\b`), "Ferien"},
	{regexp.MustCompile(`\bUrlaubstage\b`), "Ferientage"},
	{regexp.MustCompile(`\bUrlaubsanspruch\b`), "Ferienanspruch"},
	{regexp.MustCompile(`\bKrankenversicherung\b`), "Krankenversicherung (KVG)"},
	{regexp.MustCompile(`\bRentenversicherung\b`), "AHV"},
	{regexp.MustCompile(`\bBetriebsrente\b`), "Pensionskasse (BVG)"},
	{regexp.MustCompile(`\bbetriebliche Altersvorsorge\b`), "berufliche Vorsorge (BVG)"},
	{regexp.MustCompile(`\bBetriebliche Altersvorsorge\b`), "Berufliche Vorsorge (BVG)"},
	{regexp.MustCompile(`\bFahrrad\b`), "Velo"},
	{regexp.MustCompile(`\bStraßenbahn\b`), "Tram"},
	{regexp.MustCompile(`\bTüte\b`), "Sack"},
}

// Enforce runs the full Schweizer Schriftdeutsch pipeline on one string:
// first ß becomes ss, then the DE-DE vocabulary map is applied.
func Enforce(text string) string {
	text = strings.ReplaceAll(text, "ß", "ss")
	for _, rule := range termRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// EnforceAll applies Enforce to every item.
func EnforceAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = Enforce(item)
	}
	return out
}

// EnforceBody applies Enforce to every text field of a job body.
func EnforceBody(body types.JobBody) types.JobBody {
	return types.JobBody{
		JobDescription: Enforce(body.JobDescription),
		Requirements:   EnforceAll(body.Requirements),
		Benefits:       EnforceAll(body.Benefits),
		Duties:         EnforceAll(body.Duties),
		Summary:        Enforce(body.Summary),
	}
}

// promptHeader is injected into every German generation prompt so the model
// writes CH-Deutsch from the start instead of relying on post-processing.
const promptHeader = `## Schweizer Schriftdeutsch (OBLIGATORISCH)

Du schreibst AUSSCHLIESSLICH in Schweizer Schriftdeutsch (CH-Deutsch).
Beachte folgende Regeln STRIKT:

### Orthografie
- NIEMALS «ß» verwenden. Immer «ss» schreiben (z.B. «gross» statt «groß», «Strasse» statt «Straße»).

### Wortschatz (CH-spezifisch)
- «Salär» statt «Gehalt»
- «Gesamtarbeitsvertrag (GAV)» statt «Tarifvertrag»
- «Ferien» statt «Urlaub»
- «Matura» statt «Abitur»
- «berufliche Vorsorge (BVG)» statt «betriebliche Altersvorsorge»
- «Pensionskasse» statt «Betriebsrente»
- «Arbeitnehmende» statt «Arbeitnehmer»
- «Salärvorstellung» statt «Gehaltsvorstellung»
- «Lohnabrechnung» statt «Gehaltsabrechnung»

### Stilistische Merkmale von CH-Texten
- Neutraler, sachlicher Ton (weniger werblich als DE-DE)
- Etwas kürzere Sätze als in Deutschland üblich
- Weniger rhetorischer Schmuck, weniger Ausrufezeichen
- Prozedurale Klarheit hat Vorrang vor emotionaler Ansprache`

const pronounRuleFormal = "\n- DURCHGEHEND die Höflichkeitsform «Sie» verwenden (siezen). " +
	"Beispiel: «Sie arbeiten…», «Ihr Team…», «Wir bieten Ihnen…». " +
	"NIEMALS «du» oder «dir» als Anrede."

const pronounRuleCasual = "\n- DURCHGEHEND die informelle «du»-Anrede verwenden (duzen). " +
	"Beispiel: «Du arbeitest…», «Dein Team…», «Wir bieten dir…». " +
	"NIEMALS «Sie» oder «Ihnen» als Höflichkeitsform."

// PromptBlock returns the CH-Deutsch instruction block for German prompts.
// Casual formality switches the pronoun rule to du-address, everything else
// demands Sie.
func PromptBlock(formality types.Formality) string {
	rule := pronounRuleFormal
	if formality == types.FormalityCasual {
		rule = pronounRuleCasual
	}
	return promptHeader + rule + "\n"
}

// duMarkers match informal address forms (du/dir/dich/dein and inflections).
var duMarkers = regexp.MustCompile(`\b[Dd]u\b|\b[Dd]ir\b|\b[Dd]ich\b|\b[Dd]ein(?:e[mnrs]?)?\b`)

// sieMarkers match unambiguous formal address. Only capitalised Ihnen/Ihr
// forms count: lowercase sie can be third person, so automatic replacement
// is unsafe and drift is only detected, never rewritten.
var sieMarkers = regexp.MustCompile(`\bIhnen\b|\bIhr(?:e[mnrs]?)?\b`)

// CheckPronounConsistency reports whether a German text keeps to the
// address form the formality demands. Casual expects du and counts formal
// markers as violations; neutral and formal expect Sie and count du
// markers.
func CheckPronounConsistency(text string, formality types.Formality) (bool, int) {
	var violations []string
	if formality == types.FormalityCasual {
		violations = sieMarkers.FindAllString(text, -1)
	} else {
		violations = duMarkers.FindAllString(text, -1)
	}

	count := len(violations)
	if count > 0 {
		samples := violations
		if len(samples) > 5 {
			samples = samples[:5]
		}
		log.WithFields(log.Fields{
			"formality":  formality,
			"violations": count,
			"samples":    samples,
		}).Warn("pronoun drift in German text")
	}
	return count == 0, count
}

// CheckPronounConsistencyAll runs the pronoun check over a list and sums
// the violations.
func CheckPronounConsistencyAll(items []string, formality types.Formality) (bool, int) {
	total := 0
	for _, item := range items {
		_, count := CheckPronounConsistency(item, formality)
		total += count
	}
	return total == 0, total
}

type violationRule struct {
	pattern *regexp.Regexp
	label   string
	chTerm  string
}

// violationRules are the DE-DE source terms that must never appear in
// finished Schweizer Schriftdeutsch, with the expected CH replacement for
// the report.
var violationRules = []violationRule{
	{regexp.MustCompile(`\bTarifvertrag(?:s|e|es)?\b`), "Tarifvertrag*", "Gesamtarbeitsvertrag (GAV)"},
	{regexp.MustCompile(`\bGehalt\b`), "Gehalt", "Salär"},
	{regexp.MustCompile(`\bGehalts\b`), "Gehalts", "Salärs"},
	{regexp.MustCompile(`\bGehälter\b`), "Gehälter", "Saläre"},
	{regexp.MustCompile(`\bGehaltsvorstellung(?:en)?\b`), "Gehaltsvorstellung*", "Salärvorstellung"},
	{regexp.MustCompile(`\bGehaltserhöhung\b`), "Gehaltserhöhung", "Salärerhöhung"},
	{regexp.MustCompile(`\bGehaltsabrechnung\b`), "Gehaltsabrechnung", "Lohnabrechnung"},
	{regexp.MustCompile(`\bArbeitnehmer(?:n|s)?\b`), "Arbeitnehmer*", "Arbeitnehmende"},
	{regexp.MustCompile(`\bAbitur\b`), "Abitur", "Matura"},
	{regexp.MustCompile(`\bAbiturient(?:in|en)?\b`), "Abiturient*", "Maturand/in"},
	{regexp.MustCompile(`\bUrlaub(?:s)?\b`), "Urlaub*", "Ferien"},
	{regexp.MustCompile(`\bUrlaubstage\b`), "Urlaubstage", "Ferientage"},
	{regexp.MustCompile(`\bUrlaubsanspruch\b`), "Urlaubsanspruch", "Ferienanspruch"},
	{regexp.MustCompile(`\bBetriebsrente\b`), "Betriebsrente", "Pensionskasse (BVG)"},
	{regexp.MustCompile(`\b[Bb]etriebliche Altersvorsorge\b`), "betriebliche Altersvorsorge", "berufliche Vorsorge (BVG)"},
	{regexp.MustCompile(`\bRentenversicherung\b`), "Rentenversicherung", "AHV"},
	{regexp.MustCompile(`\bFahrrad\b`), "Fahrrad", "Velo"},
	{regexp.MustCompile(`\bStraßenbahn\b`), "Straßenbahn", "Tram"},
	{regexp.MustCompile(`\bTüte\b`), "Tüte", "Sack"},
}

// CheckVocabulary detects leftover DE-DE vocabulary in a Swiss German text.
// It returns whether the text is clean, the total occurrence count and one
// detail line per violated term in the form "Gehalt (→ Salär) ×2".
func CheckVocabulary(text string) (bool, int, []string) {
	var details []string
	total := 0
	for _, rule := range violationRules {
		hits := rule.pattern.FindAllString(text, -1)
		if len(hits) > 0 {
			total += len(hits)
			details = append(details, fmt.Sprintf("%s (→ %s) ×%d", rule.label, rule.chTerm, len(hits)))
		}
	}
	return total == 0, total, details
}
