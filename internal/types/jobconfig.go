// Package types provides type definitions for structured data used throughout the jobad-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Language selects the output language of a generation run.
type Language string

// Supported output languages.
const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// Formality selects the register of the generated copy.
type Formality string

// Formality levels.
const (
	FormalityCasual  Formality = "casual"
	FormalityNeutral Formality = "neutral"
	FormalityFormal  Formality = "formal"
)

// CompanyType describes the hiring organization.
type CompanyType string

// Company types.
const (
	CompanyStartup      CompanyType = "startup"
	CompanyScaleup      CompanyType = "scaleup"
	CompanyCorporate    CompanyType = "corporate"
	CompanyPublicSector CompanyType = "public_sector"
	CompanyAgency       CompanyType = "agency"
	CompanyConsulting   CompanyType = "consulting"
)

// Industry describes the vertical the role belongs to.
type Industry string

// Industries.
const (
	IndustryGeneric       Industry = "generic"
	IndustryFinance       Industry = "finance"
	IndustryHealthcare    Industry = "healthcare"
	IndustryPublicIT      Industry = "public_it"
	IndustryAIStartup     Industry = "ai_startup"
	IndustryEcommerce     Industry = "ecommerce"
	IndustryManufacturing Industry = "manufacturing"
)

// Seniority labels the experience level of the role. Empty means unset.
type Seniority string

// Seniority levels.
const (
	SeniorityIntern    Seniority = "intern"
	SeniorityJunior    Seniority = "junior"
	SeniorityMid       Seniority = "mid"
	SenioritySenior    Seniority = "senior"
	SeniorityLead      Seniority = "lead"
	SeniorityPrincipal Seniority = "principal"
)

// SkillItem names one required skill, optionally categorized and leveled.
type SkillItem struct {
	Name     string `json:"name" validate:"required,min=1"`
	Category string `json:"category,omitempty"` // e.g. frontend, backend, cloud, database, devops, data
	Level    string `json:"level,omitempty"`    // e.g. basic, intermediate, advanced, expert
}

// JobGenerationConfig holds the immutable parameters of one generation request.
// Zero values fall back to the documented defaults via Normalized.
type JobGenerationConfig struct {
	Language           Language    `json:"language,omitempty" validate:"omitempty,oneof=en de"`
	Formality          Formality   `json:"formality,omitempty" validate:"omitempty,oneof=casual neutral formal"`
	CompanyType        CompanyType `json:"company_type,omitempty" validate:"omitempty,oneof=startup scaleup corporate public_sector agency consulting"`
	Industry           Industry    `json:"industry,omitempty" validate:"omitempty,oneof=generic finance healthcare public_it ai_startup ecommerce manufacturing"`
	SeniorityLabel     Seniority   `json:"seniority_label,omitempty" validate:"omitempty,oneof=intern junior mid senior lead principal"`
	MinYearsExperience *int        `json:"min_years_experience,omitempty" validate:"omitempty,min=0"`
	MaxYearsExperience *int        `json:"max_years_experience,omitempty" validate:"omitempty,min=0"`
	Skills             []SkillItem `json:"skills,omitempty" validate:"dive"`
	BenefitKeywords    []string    `json:"benefit_keywords,omitempty"`
	DutyKeywords       []string    `json:"duty_keywords,omitempty"`
}

// Validate checks enum membership and numeric ranges using the validator.
func (c *JobGenerationConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.MinYearsExperience != nil && c.MaxYearsExperience != nil &&
		*c.MinYearsExperience > *c.MaxYearsExperience {
		return fmt.Errorf("min_years_experience %d exceeds max_years_experience %d",
			*c.MinYearsExperience, *c.MaxYearsExperience)
	}
	return nil
}

// Normalized returns a copy with empty enum fields replaced by their defaults.
func (c JobGenerationConfig) Normalized() JobGenerationConfig {
	out := c.clone()
	if out.Language == "" {
		out.Language = LanguageEnglish
	}
	if out.Formality == "" {
		out.Formality = FormalityNeutral
	}
	if out.CompanyType == "" {
		out.CompanyType = CompanyScaleup
	}
	if out.Industry == "" {
		out.Industry = IndustryGeneric
	}
	return out
}

func (c JobGenerationConfig) clone() JobGenerationConfig {
	out := c
	if c.MinYearsExperience != nil {
		v := *c.MinYearsExperience
		out.MinYearsExperience = &v
	}
	if c.MaxYearsExperience != nil {
		v := *c.MaxYearsExperience
		out.MaxYearsExperience = &v
	}
	out.Skills = append([]SkillItem(nil), c.Skills...)
	out.BenefitKeywords = append([]string(nil), c.BenefitKeywords...)
	out.DutyKeywords = append([]string(nil), c.DutyKeywords...)
	return out
}

// temperatureBase maps formality to the base sampling temperature.
var temperatureBase = map[Formality]float64{
	FormalityFormal:  0.20,
	FormalityNeutral: 0.35,
	FormalityCasual:  0.55,
}

// Temperature bounds for the derived sampling temperature.
const (
	TemperatureMin = 0.10
	TemperatureMax = 0.75
)

// Temperature derives the sampling temperature from the configuration:
// a formality base adjusted by signed offsets for company type, seniority
// and industry, clamped to [TemperatureMin, TemperatureMax].
func (c JobGenerationConfig) Temperature() float64 {
	cfg := c.Normalized()
	temp := temperatureBase[cfg.Formality]
	temp += companyTypeOffset(cfg.CompanyType)
	temp += seniorityOffset(cfg.SeniorityLabel)
	temp += industryOffset(cfg.Industry)
	return clampTemperature(temp)
}

func companyTypeOffset(t CompanyType) float64 {
	switch t {
	case CompanyStartup:
		return 0.05
	case CompanyPublicSector:
		return -0.05
	default:
		return 0
	}
}

func seniorityOffset(s Seniority) float64 {
	switch s {
	case SenioritySenior, SeniorityLead, SeniorityPrincipal:
		return -0.05
	case SeniorityIntern, SeniorityJunior:
		return 0.05
	default:
		return 0
	}
}

func industryOffset(i Industry) float64 {
	switch i {
	case IndustryFinance, IndustryHealthcare, IndustryPublicIT:
		return -0.05
	case IndustryAIStartup, IndustryEcommerce:
		return 0.05
	default:
		return 0
	}
}

func clampTemperature(t float64) float64 {
	if t < TemperatureMin {
		return TemperatureMin
	}
	if t > TemperatureMax {
		return TemperatureMax
	}
	return t
}

// ExplainTemperature returns a line-by-line trace of every contribution to
// the derived temperature. Audit output only, never fed into generation.
func (c JobGenerationConfig) ExplainTemperature() string {
	cfg := c.Normalized()
	base := temperatureBase[cfg.Formality]
	lines := []string{fmt.Sprintf("Base from formality='%s': %.2f", cfg.Formality, base)}

	lines = append(lines, fmt.Sprintf("Company type '%s' => %+.2f", cfg.CompanyType, companyTypeOffset(cfg.CompanyType)))
	if cfg.SeniorityLabel == "" {
		lines = append(lines, "Seniority not set => +0.00")
	} else {
		lines = append(lines, fmt.Sprintf("Seniority '%s' => %+.2f", cfg.SeniorityLabel, seniorityOffset(cfg.SeniorityLabel)))
	}
	lines = append(lines, fmt.Sprintf("Industry '%s' => %+.2f", cfg.Industry, industryOffset(cfg.Industry)))

	raw := base + companyTypeOffset(cfg.CompanyType) + seniorityOffset(cfg.SeniorityLabel) + industryOffset(cfg.Industry)
	final := clampTemperature(raw)
	if final != raw {
		lines = append(lines, fmt.Sprintf("Clamped to [%.2f, %.2f] => %.2f", TemperatureMin, TemperatureMax, final))
	} else {
		lines = append(lines, fmt.Sprintf("Final temperature => %.2f", final))
	}
	return strings.Join(lines, "\n")
}

// industryBenefitDefaults lists per-industry benefit keywords applied when
// the request leaves benefit_keywords empty.
var industryBenefitDefaults = map[Industry][]string{
	IndustryFinance: {
		"betriebliche Altersvorsorge",
		"Weiterbildung im Bereich Finanzmarkt",
		"Bonusregelung",
		"hybrides Arbeiten",
	},
	IndustryHealthcare: {
		"Work Life Balance",
		"betriebliche Gesundheitsförderung",
		"sicherer Arbeitsplatz",
	},
	IndustryPublicIT: {
		"Vereinbarkeit von Beruf und Familie",
		"attraktive Sozialleistungen",
		"sicheres Arbeitsumfeld im öffentlichen Dienst",
	},
	IndustryAIStartup: {
		"remote friendly",
		"stock options",
		"Weiterbildungsbudget für Konferenzen",
		"modernes Büro im Stadtzentrum",
	},
	IndustryEcommerce: {
		"Mitarbeiterrabatte",
		"flexible Arbeitszeiten",
		"hybrides Arbeiten",
	},
	IndustryManufacturing: {
		"attraktive Schichtmodelle",
		"Zuschuss zu Fahrtkosten",
		"betriebliche Altersvorsorge",
	},
}

// WithIndustryDefaults returns a copy with industry conventions applied:
// empty benefit keywords are filled from the per-industry default list
// (never overwriting caller-provided keywords), and industries tied to a
// company type coerce it (public_it => public_sector, ai_startup => startup).
func (c JobGenerationConfig) WithIndustryDefaults() JobGenerationConfig {
	out := c.Normalized()

	switch out.Industry {
	case IndustryPublicIT:
		out.CompanyType = CompanyPublicSector
	case IndustryAIStartup:
		out.CompanyType = CompanyStartup
	}

	if len(out.BenefitKeywords) == 0 {
		if defaults, ok := industryBenefitDefaults[out.Industry]; ok {
			out.BenefitKeywords = append([]string(nil), defaults...)
		}
	}
	return out
}
