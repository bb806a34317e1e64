// Package styling routes a job configuration to a four-color tone profile
// and assembles the prompt-injectable style kit for that profile.
package styling

import "github.com/matthias/jobad-composer/internal/types"

// colorWeight is one signed contribution of a signal to a color accumulator.
// Signals keep their weights ordered so traces render deterministically.
type colorWeight struct {
	Color  types.Color
	Weight float64
}

// Margin within which a runner-up color is kept as secondary.
const Margin = 0.15

// blueBias is the default accumulator head start for blue. Evidence-based
// framing is the safest default register for job-ad copy.
const blueBias = 0.10

// colorSignals maps a signal value to its per-color weights. The table is
// string-keyed and wider than the config enums on purpose: upstream callers
// feed free-form industry and company-type values (social_care, sme,
// hospitality, ...) and those keep routing sensibly.
var colorSignals = map[string][]colorWeight{
	// industry
	"finance":       {{types.ColorBlue, 0.4}, {types.ColorGreen, 0.2}},
	"healthcare":    {{types.ColorGreen, 0.4}, {types.ColorBlue, 0.2}},
	"social_care":   {{types.ColorGreen, 0.4}, {types.ColorYellow, 0.2}},
	"public_it":     {{types.ColorBlue, 0.3}, {types.ColorGreen, 0.3}},
	"ai_startup":    {{types.ColorYellow, 0.3}, {types.ColorRed, 0.2}},
	"ecommerce":     {{types.ColorRed, 0.3}, {types.ColorYellow, 0.2}},
	"manufacturing": {{types.ColorBlue, 0.3}, {types.ColorGreen, 0.2}},
	"generic":       {{types.ColorBlue, 0.1}},

	// company type
	"startup":       {{types.ColorYellow, 0.3}, {types.ColorRed, 0.2}},
	"scaleup":       {{types.ColorRed, 0.2}, {types.ColorBlue, 0.2}},
	"sme":           {{types.ColorBlue, 0.2}, {types.ColorGreen, 0.2}},
	"corporate":     {{types.ColorBlue, 0.3}, {types.ColorGreen, 0.2}},
	"public_sector": {{types.ColorBlue, 0.3}, {types.ColorGreen, 0.3}},
	"social_sector": {{types.ColorGreen, 0.4}, {types.ColorBlue, 0.2}},
	"agency":        {{types.ColorYellow, 0.3}, {types.ColorRed, 0.2}},
	"consulting":    {{types.ColorRed, 0.3}, {types.ColorBlue, 0.2}},
	"hospitality":   {{types.ColorYellow, 0.3}, {types.ColorGreen, 0.2}},
	"retail":        {{types.ColorYellow, 0.2}, {types.ColorRed, 0.2}},

	// formality
	"casual":  {{types.ColorYellow, 0.3}, {types.ColorRed, 0.1}},
	"neutral": {{types.ColorBlue, 0.2}},
	"formal":  {{types.ColorBlue, 0.3}, {types.ColorGreen, 0.2}},

	// seniority
	"intern":    {{types.ColorGreen, 0.3}, {types.ColorYellow, 0.2}},
	"junior":    {{types.ColorYellow, 0.2}, {types.ColorGreen, 0.1}},
	"mid":       {{types.ColorBlue, 0.1}},
	"senior":    {{types.ColorBlue, 0.2}, {types.ColorRed, 0.1}},
	"lead":      {{types.ColorRed, 0.3}, {types.ColorBlue, 0.2}},
	"principal": {{types.ColorBlue, 0.3}, {types.ColorRed, 0.2}},
}

// axisMap derives the two tone axes from the primary color.
var axisMap = map[types.Color]struct {
	Mode  types.InteractionMode
	Frame types.ReferenceFrame
}{
	types.ColorRed:    {types.ModeProactive, types.FrameObject},
	types.ColorYellow: {types.ModeProactive, types.FramePerson},
	types.ColorGreen:  {types.ModeReactive, types.FramePerson},
	types.ColorBlue:   {types.ModeReactive, types.FrameObject},
}
