//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Color is one quadrant of the four-color tone model.
type Color string

// The four tone colors, in canonical tie-break order.
const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
)

// Colors lists all four colors in canonical order. Rankings over equal
// scores preserve this order.
var Colors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// InteractionMode is the horizontal axis of the tone model.
type InteractionMode string

// Interaction modes.
const (
	ModeProactive InteractionMode = "proaktiv"
	ModeReactive  InteractionMode = "reaktiv"
)

// ReferenceFrame is the vertical axis of the tone model.
type ReferenceFrame string

// Reference frames.
const (
	FramePerson ReferenceFrame = "personenbezug"
	FrameObject ReferenceFrame = "objektbezug"
)

// StyleProfile is the routed tone classification for one generation run.
// Produced once by the style router, read-only afterward.
type StyleProfile struct {
	PrimaryColor     Color           `json:"primary_color"`
	SecondaryColor   Color           `json:"secondary_color,omitempty"`
	InteractionMode  InteractionMode `json:"interaction_mode"`
	ReferenceFrame   ReferenceFrame  `json:"reference_frame"`
	Constraints      []string        `json:"constraints,omitempty"`
	ScoringRationale string          `json:"scoring_rationale,omitempty"`
}

// StyleKit is a profile plus the retrieved or default style content consumed
// by the drafter: do/don't rules, adjectives, hooks, syntax constraints.
type StyleKit struct {
	Profile             StyleProfile `json:"profile"`
	DoAndDont           []string     `json:"do_and_dont"`
	PreferredAdjectives []string     `json:"preferred_adjectives"`
	HookTemplates       []string     `json:"hook_templates"`
	SyntaxConstraints   []string     `json:"syntax_constraints"`
}

// PromptBlock renders the kit as one compact prompt section. Pure formatting,
// no side effects. Hard constraints render last and carry a warning marker so
// the consuming model treats them as highest priority.
func (k StyleKit) PromptBlock(lang Language) string {
	var lines []string

	if lang == LanguageGerman {
		lines = append(lines, "## Stil-Vorgaben")
	} else {
		lines = append(lines, "## Style Kit")
	}

	primary := fmt.Sprintf("Primary style: %s", k.Profile.PrimaryColor)
	if k.Profile.SecondaryColor != "" {
		primary += fmt.Sprintf(" + secondary: %s", k.Profile.SecondaryColor)
	}
	lines = append(lines, primary)
	lines = append(lines, fmt.Sprintf("Mode: %s | Frame: %s", k.Profile.InteractionMode, k.Profile.ReferenceFrame))

	if len(k.DoAndDont) > 0 {
		if lang == LanguageGerman {
			lines = append(lines, "\n### Regeln:")
		} else {
			lines = append(lines, "\n### Do / Don't:")
		}
		for _, item := range k.DoAndDont {
			lines = append(lines, "- "+item)
		}
	}

	if len(k.PreferredAdjectives) > 0 {
		label := "Preferred adjectives"
		if lang == LanguageGerman {
			label = "Bevorzugte Adjektive"
		}
		lines = append(lines, fmt.Sprintf("\n### %s: %s", label, strings.Join(k.PreferredAdjectives, ", ")))
	}

	if len(k.HookTemplates) > 0 {
		if lang == LanguageGerman {
			lines = append(lines, "\n### Hook-Vorlagen:")
		} else {
			lines = append(lines, "\n### Hook templates:")
		}
		for _, h := range k.HookTemplates {
			lines = append(lines, "- "+h)
		}
	}

	if len(k.SyntaxConstraints) > 0 {
		if lang == LanguageGerman {
			lines = append(lines, "\n### Satzstruktur:")
		} else {
			lines = append(lines, "\n### Sentence structure:")
		}
		for _, c := range k.SyntaxConstraints {
			lines = append(lines, "- "+c)
		}
	}

	if len(k.Profile.Constraints) > 0 {
		lines = append(lines, "\n### Hard constraints (override all above):")
		for _, c := range k.Profile.Constraints {
			lines = append(lines, "- ⚠️ "+c)
		}
	}

	return strings.Join(lines, "\n")
}
