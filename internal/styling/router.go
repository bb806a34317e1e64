package styling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matthias/jobad-composer/internal/types"
)

// rankedColor pairs a color with its accumulated score.
type rankedColor struct {
	Color types.Color
	Score float64
}

// Route scores the configuration against the signal tables and returns the
// tone profile. Pure function: no I/O, deterministic, idempotent.
func Route(cfg types.JobGenerationConfig) types.StyleProfile {
	ranked := rankColors(cfg)

	primary := ranked[0]
	runnerUp := ranked[1]

	profile := types.StyleProfile{
		PrimaryColor:     primary.Color,
		InteractionMode:  axisMap[primary.Color].Mode,
		ReferenceFrame:   axisMap[primary.Color].Frame,
		ScoringRationale: rationale(ranked),
	}
	if primary.Score-runnerUp.Score < Margin {
		profile.SecondaryColor = runnerUp.Color
	}
	return profile
}

// rankColors accumulates all signal weights plus the blue bias and sorts
// colors by score descending. Ties keep canonical order (red, yellow,
// green, blue) via the stable sort.
func rankColors(cfg types.JobGenerationConfig) []rankedColor {
	cfg = cfg.Normalized()
	scores := map[types.Color]float64{}

	for _, key := range signalKeys(cfg) {
		for _, cw := range colorSignals[key.value] {
			scores[cw.Color] += cw.Weight
		}
	}
	scores[types.ColorBlue] += blueBias

	ranked := make([]rankedColor, 0, len(types.Colors))
	for _, c := range types.Colors {
		ranked = append(ranked, rankedColor{Color: c, Score: scores[c]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

type signalKey struct {
	label string
	value string
}

func signalKeys(cfg types.JobGenerationConfig) []signalKey {
	return []signalKey{
		{"industry", string(cfg.Industry)},
		{"company_type", string(cfg.CompanyType)},
		{"formality", string(cfg.Formality)},
		{"seniority", string(cfg.SeniorityLabel)},
	}
}

func rationale(ranked []rankedColor) string {
	parts := make([]string, 0, len(ranked))
	for _, rc := range ranked {
		parts = append(parts, fmt.Sprintf("%s: %.2f", rc.Color, rc.Score))
	}
	return strings.Join(parts, " | ")
}

// ExplainRoute returns the per-signal delta breakdown behind a routing
// decision as a human-readable trace. Audit output only; Route does not
// consume it.
func ExplainRoute(cfg types.JobGenerationConfig) string {
	cfg = cfg.Normalized()
	var parts []string

	for _, key := range signalKeys(cfg) {
		if key.value == "" {
			continue
		}
		deltas, ok := colorSignals[key.value]
		if !ok {
			parts = append(parts, fmt.Sprintf("%s='%s' => no signal", key.label, key.value))
			continue
		}
		deltaStrs := make([]string, 0, len(deltas))
		for _, cw := range deltas {
			deltaStrs = append(deltaStrs, fmt.Sprintf("%s+%.2f", cw.Color, cw.Weight))
		}
		parts = append(parts, fmt.Sprintf("%s='%s' => %s", key.label, key.value, strings.Join(deltaStrs, ", ")))
	}
	parts = append(parts, "Default blue bias => blue+0.10")

	ranked := rankColors(cfg)
	primary, runnerUp := ranked[0], ranked[1]

	parts = append(parts, "\nFinal scores: "+rationale(ranked))
	parts = append(parts, fmt.Sprintf("Primary: %s (%.2f)", primary.Color, primary.Score))

	if gap := primary.Score - runnerUp.Score; gap < Margin {
		parts = append(parts, fmt.Sprintf("Secondary: %s (%.2f) — within margin %g", runnerUp.Color, runnerUp.Score, Margin))
	} else {
		parts = append(parts, fmt.Sprintf("No secondary — gap %.2f > margin %g", gap, Margin))
	}

	return strings.Join(parts, "\n")
}
