// Package drafting generates job-description candidates: prompt assembly
// from the generation config, concurrent schema-constrained drafts, and the
// deterministic post-processing that keeps benefits and duties aligned with
// what was requested.
package drafting

import (
	"fmt"
	"strings"

	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/swissgerman"
	"github.com/matthias/jobad-composer/internal/types"
)

// maxFewShotExamples caps the gold-standard examples included in a prompt.
const maxFewShotExamples = 2

// Inputs carries everything one draft prompt needs.
type Inputs struct {
	JobTitle     string
	Config       types.JobGenerationConfig
	StyleKit     *types.StyleKit
	Duties       []string
	DutySource   duties.Source
	GoldExamples []string
}

var toneLines = map[types.Language]map[types.Formality]string{
	types.LanguageEnglish: {
		types.FormalityCasual:  "Use a friendly modern tone, but stay professional.",
		types.FormalityNeutral: "Use a clear neutral professional tone.",
		types.FormalityFormal:  "Use a formal corporate tone.",
	},
	types.LanguageGerman: {
		types.FormalityCasual:  "Verwende einen freundlichen modernen, aber professionellen Ton.",
		types.FormalityNeutral: "Verwende einen klaren sachlich professionellen Ton.",
		types.FormalityFormal:  "Verwende einen formellen, eher konservativen Ton.",
	},
}

var companyLines = map[types.Language]map[types.CompanyType]string{
	types.LanguageEnglish: {
		types.CompanyStartup:      "The company is a young startup with a fast paced environment.",
		types.CompanyScaleup:      "The company is a growing scaleup with an established product.",
		types.CompanyCorporate:    "The company is a larger established company.",
		types.CompanyPublicSector: "The organization operates in the public sector.",
		types.CompanyAgency:       "The company is a digital agency working for multiple clients.",
		types.CompanyConsulting:   "The company is a consulting firm that delivers client projects.",
	},
	types.LanguageGerman: {
		types.CompanyStartup:      "Das Unternehmen ist ein junges Startup mit dynamischem Umfeld.",
		types.CompanyScaleup:      "Das Unternehmen ist ein wachsendes Scaleup mit etabliertem Produkt.",
		types.CompanyCorporate:    "Das Unternehmen ist ein größeres etabliertes Unternehmen.",
		types.CompanyPublicSector: "Die Organisation ist im öffentlichen Sektor tätig.",
		types.CompanyAgency:       "Das Unternehmen ist eine Agentur mit verschiedenen Kundenprojekten.",
		types.CompanyConsulting:   "Das Unternehmen ist ein Beratungsunternehmen mit vielfältigen Kundenprojekten.",
	},
}

// BuildPrompt renders the writer prompt in the config's language. Industry
// defaults are applied first, so the prompt and the post-processing always
// see the same keywords.
func BuildPrompt(in Inputs) string {
	cfg := in.Config.WithIndustryDefaults()
	lang := cfg.Language

	var b strings.Builder
	if lang == types.LanguageGerman {
		b.WriteString("Du bist eine erfahrene HR Texterin für eine Recruiting Plattform.\n")
	} else {
		b.WriteString("You are an experienced HR copywriter for a recruitment platform.\n")
	}
	b.WriteString(toneLines[lang][cfg.Formality] + "\n")
	b.WriteString(companyLines[lang][cfg.CompanyType] + "\n")
	b.WriteString(seniorityLine(lang, cfg) + "\n")
	b.WriteString(skillsLine(lang, cfg) + "\n")
	b.WriteString(benefitsLine(lang, cfg.BenefitKeywords) + "\n")
	if line := dutiesLine(lang, in.Duties, in.DutySource); line != "" {
		b.WriteString(line + "\n")
	}
	if in.StyleKit != nil {
		b.WriteString("\n" + in.StyleKit.PromptBlock(lang) + "\n")
	}
	if lang == types.LanguageGerman {
		b.WriteString("\n" + swissgerman.PromptBlock(cfg.Formality))
	}
	b.WriteString(examplesSection(lang, in.GoldExamples))

	if lang == types.LanguageGerman {
		b.WriteString(fmt.Sprintf("Stellentitel: %s\n\n", in.JobTitle))
		b.WriteString("Erstelle eine JobBody Struktur auf Deutsch.\n")
		b.WriteString("job_description: 2 bis 4 Sätze zu Rolle und Kontext.\n")
		b.WriteString("requirements: 6 bis 10 Stichpunkte, passend zur Seniorität und zu den Skills.\n")
		b.WriteString("benefits: Verwende AUSSCHLIESSLICH die oben angegebenen Benefit Stichworte. Erweitere jedes Stichwort zu einem vollständigen, grammatikalisch korrekten Satz (z.B. 'Remote Work in der Schweiz' aus 'Remote Work Schweiz'). Erstelle genau einen Bullet Point pro Stichwort. Füge KEINE weiteren Benefits hinzu.\n")
		b.WriteString(dutiesScaffold(lang, in.Duties, in.DutySource) + "\n")
		b.WriteString("summary: 1 kurzer Abschlusssatz, der zur Bewerbung einlädt.\n")
	} else {
		b.WriteString(fmt.Sprintf("Job title: %s\n\n", in.JobTitle))
		b.WriteString("Produce a JobBody instance in English.\n")
		b.WriteString("job_description: 2 to 4 sentences for role and context.\n")
		b.WriteString("requirements: 6 to 10 bullets matching seniority and skills.\n")
		b.WriteString("benefits: ONLY use the benefit keywords provided above. Expand each keyword into a full, grammatically correct sentence (like 'Remote work in Switzerland' from 'remote work switzerland'). Create exactly one bullet per keyword. Do NOT add any other benefits.\n")
		b.WriteString(dutiesScaffold(lang, in.Duties, in.DutySource) + "\n")
		b.WriteString("summary: 1 short closing line inviting candidates to apply.\n")
	}

	return b.String()
}

func seniorityLine(lang types.Language, cfg types.JobGenerationConfig) string {
	var bits []string
	if cfg.SeniorityLabel != "" {
		if lang == types.LanguageGerman {
			bits = append(bits, fmt.Sprintf("Die Rolle ist auf %s Level ausgerichtet.", cfg.SeniorityLabel))
		} else {
			bits = append(bits, fmt.Sprintf("The role is a %s level position.", cfg.SeniorityLabel))
		}
	}
	if cfg.MinYearsExperience != nil {
		min := *cfg.MinYearsExperience
		switch {
		case cfg.MaxYearsExperience != nil && lang == types.LanguageGerman:
			bits = append(bits, fmt.Sprintf("Die gewünschte Erfahrung liegt zwischen %d und %d Jahren.", min, *cfg.MaxYearsExperience))
		case cfg.MaxYearsExperience != nil:
			bits = append(bits, fmt.Sprintf("Target experience range is %d to %d years.", min, *cfg.MaxYearsExperience))
		case lang == types.LanguageGerman:
			bits = append(bits, fmt.Sprintf("Gesucht werden Kandidatinnen und Kandidaten mit mindestens %d Jahren Berufserfahrung.", min))
		default:
			bits = append(bits, fmt.Sprintf("Target experience is at least %d years.", min))
		}
	}
	return strings.Join(bits, " ")
}

func skillsLine(lang types.Language, cfg types.JobGenerationConfig) string {
	names := make([]string, 0, len(cfg.Skills))
	for _, s := range cfg.Skills {
		names = append(names, s.Name)
	}
	skillsText := strings.Join(names, ", ")

	if lang == types.LanguageGerman {
		if skillsText == "" {
			return "Ergänze sinnvolle Skills passend zu Titel und Branche."
		}
		return fmt.Sprintf("Zentrale Skills: %s.", skillsText)
	}
	if skillsText == "" {
		return "Infer reasonable skills for this job title and industry."
	}
	return fmt.Sprintf("Required core skills: %s.", skillsText)
}

func benefitsLine(lang types.Language, keywords []string) string {
	tags := strings.Join(keywords, ", ")

	if lang == types.LanguageGerman {
		if tags == "" {
			return "WICHTIG: Es wurden keine Benefit Stichworte angegeben. Das Benefits Feld muss eine leere Liste [] sein."
		}
		return fmt.Sprintf(
			"WICHTIG: Für Benefits musst du AUSSCHLIESSLICH diese genannten Benefit Stichworte verwenden: %s. "+
				"Erweitere jedes Stichwort zu einem vollständigen, grammatikalisch korrekten Satz. "+
				"Zum Beispiel: 'Remote Work Schweiz' sollte zu 'Remote Work in der Schweiz' oder 'Remote Work Möglichkeiten in der Schweiz' werden. "+
				"Jeder Benefit muss ein vollständiger Satz sein, nicht nur eine Phrase. "+
				"Füge KEINE weiteren Benefits hinzu außer diesen Stichwörtern. "+
				"Erstelle genau einen Bullet Point pro angegebenem Stichwort.",
			tags,
		)
	}
	if tags == "" {
		return "IMPORTANT: No benefit keywords were provided. The benefits field must be an empty list []."
	}
	return fmt.Sprintf(
		"IMPORTANT: For benefits, you MUST ONLY use these exact benefit keywords: %s. "+
			"Expand each keyword into a full, grammatically correct sentence. "+
			"For example: 'remote work switzerland' should become 'Remote work in Switzerland' or 'Remote work opportunities in Switzerland'. "+
			"Each benefit must be a complete sentence, not just a phrase. "+
			"Do NOT add any other benefits beyond these keywords. "+
			"Create exactly one bullet point per keyword provided.",
		tags,
	)
}

// dutiesLine renders the fixed-duty instruction for user and category
// sourced duties. LLM-sourced duties need no instruction beyond the
// closing scaffold.
func dutiesLine(lang types.Language, resolved []string, source duties.Source) string {
	if source == duties.SourceLLM || len(resolved) == 0 {
		return ""
	}

	bullets := make([]string, len(resolved))
	for i, duty := range resolved {
		bullets[i] = "- " + duty
	}
	list := strings.Join(bullets, "\n")

	if lang == types.LanguageGerman {
		return fmt.Sprintf(
			"WICHTIG: Die Aufgaben sind vorgegeben. Verwende GENAU diese %d Aufgaben, je ein Bullet Point, in dieser Reihenfolge:\n%s\n"+
				"Leichtes Umformulieren für den Lesefluss ist erlaubt, aber füge KEINE Aufgaben hinzu, lasse KEINE weg und fasse KEINE zusammen.",
			len(resolved), list,
		)
	}
	return fmt.Sprintf(
		"IMPORTANT: The duties are fixed. Use EXACTLY these %d duties, one bullet point each, in this order:\n%s\n"+
			"Light rephrasing for flow is allowed, but do NOT add, remove, or merge duties.",
		len(resolved), list,
	)
}

func dutiesScaffold(lang types.Language, resolved []string, source duties.Source) string {
	fixed := source != duties.SourceLLM && len(resolved) > 0

	if lang == types.LanguageGerman {
		if fixed {
			return fmt.Sprintf("duties: genau %d Stichpunkte, einer pro vorgegebener Aufgabe.", len(resolved))
		}
		return "duties: 5 bis 8 Stichpunkte zu den täglichen Aufgaben."
	}
	if fixed {
		return fmt.Sprintf("duties: exactly %d bullets, one per listed duty.", len(resolved))
	}
	return "duties: 5 to 8 bullets describing day to day responsibilities."
}

func examplesSection(lang types.Language, examples []string) string {
	valid := make([]string, 0, maxFewShotExamples)
	for _, example := range examples {
		if strings.TrimSpace(example) == "" {
			continue
		}
		valid = append(valid, example)
		if len(valid) == maxFewShotExamples {
			break
		}
	}
	if len(valid) == 0 {
		return ""
	}

	var b strings.Builder
	if lang == types.LanguageGerman {
		b.WriteString("\n\n## Beispiele früherer erfolgreicher Stellenbeschreibungen (als Referenz für Stil und Struktur):\n\n")
		for i, example := range valid {
			b.WriteString(fmt.Sprintf("Beispiel %d:\n%s\n\n", i+1, example))
		}
		b.WriteString("Hinweis: Verwende diese Beispiele als Leitfaden für Stil, Ton und Struktur, passe aber den Inhalt an den aktuellen Stellentitel und die Anforderungen an. Nicht wörtlich kopieren.\n\n")
	} else {
		b.WriteString("\n\n## Examples of Previous Successful Job Descriptions (for reference on style and structure):\n\n")
		for i, example := range valid {
			b.WriteString(fmt.Sprintf("Example %d:\n%s\n\n", i+1, example))
		}
		b.WriteString("Note: Use these examples as a guide for style, tone, and structure, but adapt the content to match the current job title and requirements. Do not copy verbatim.\n\n")
	}
	return b.String()
}
