package styling

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/matthias/jobad-composer/internal/knowledge"
	"github.com/matthias/jobad-composer/internal/types"
)

// styleSearchK is how many chunks one color query fetches.
const styleSearchK = 12

// modeSyntaxK is how many mode-specific syntax chunks are fetched.
const modeSyntaxK = 4

// Assembler builds style kits, preferring retrieved chunks and topping up
// every dimension from the built-in defaults so the kit is never empty.
type Assembler struct {
	src knowledge.Source
}

// NewAssembler returns an assembler over the given knowledge source.
// A nil source is valid and skips retrieval entirely.
func NewAssembler(src knowledge.Source) *Assembler {
	return &Assembler{src: src}
}

// Assemble builds the kit for a routed profile. Retrieval failures are
// logged and treated as empty results; the returned kit always has content
// in all four dimensions.
func (a *Assembler) Assemble(ctx context.Context, profile types.StyleProfile, lang types.Language) types.StyleKit {
	kit := types.StyleKit{Profile: profile}

	if a != nil && a.src != nil {
		a.fillFromStore(ctx, &kit, profile)
	}
	fillDefaults(&kit, profile, lang)

	log.WithFields(log.Fields{
		"primary":   profile.PrimaryColor,
		"secondary": profile.SecondaryColor,
		"rules":     len(kit.DoAndDont),
		"adj":       len(kit.PreferredAdjectives),
		"hooks":     len(kit.HookTemplates),
		"syntax":    len(kit.SyntaxConstraints),
	}).Debug("style kit assembled")
	return kit
}

// fillFromStore queries style chunks by color and buckets them by the
// dimension metadata. Any error is logged and swallowed.
func (a *Assembler) fillFromStore(ctx context.Context, kit *types.StyleKit, profile types.StyleProfile) {
	colors := []types.Color{profile.PrimaryColor}
	if profile.SecondaryColor != "" {
		colors = append(colors, profile.SecondaryColor)
	}

	for _, color := range colors {
		query := fmt.Sprintf("%s style job description", color)
		hits, err := a.src.Search(ctx, knowledge.StyleCollection(string(color)), query, styleSearchK)
		if err != nil {
			log.WithField("color", color).WithError(err).Warn("style retrieval failed, using defaults")
			continue
		}
		for _, hit := range hits {
			content := strings.TrimSpace(hit.Content)
			if content == "" {
				continue
			}
			switch hit.Metadata["dimension"] {
			case "hooks":
				kit.HookTemplates = append(kit.HookTemplates, content)
			case "adjectives":
				// One chunk may carry a comma-separated adjective list.
				for _, w := range strings.Split(content, ",") {
					if w = strings.TrimSpace(w); w != "" {
						kit.PreferredAdjectives = append(kit.PreferredAdjectives, w)
					}
				}
			case "syntax":
				kit.SyntaxConstraints = append(kit.SyntaxConstraints, content)
			case "do_dont":
				kit.DoAndDont = append(kit.DoAndDont, content)
			}
		}
	}

	modeQuery := fmt.Sprintf("%s sentence structure", profile.InteractionMode)
	modeHits, err := a.src.Search(ctx, knowledge.CollectionStyleSyntax, modeQuery, modeSyntaxK)
	if err != nil {
		log.WithError(err).Debug("mode syntax retrieval failed")
		return
	}
	for _, hit := range modeHits {
		if content := strings.TrimSpace(hit.Content); content != "" {
			kit.SyntaxConstraints = append(kit.SyntaxConstraints, content)
		}
	}
}

// fillDefaults tops up every dimension that retrieval left empty from the
// static table for the primary color, blending in up to two secondary
// adjectives and one secondary hook when a secondary color is set.
func fillDefaults(kit *types.StyleKit, profile types.StyleProfile, lang types.Language) {
	source := defaultsFor(lang)
	primary, ok := source[profile.PrimaryColor]
	if !ok {
		primary = source[types.ColorBlue]
	}
	secondary, hasSecondary := source[profile.SecondaryColor]

	if len(kit.DoAndDont) == 0 {
		kit.DoAndDont = append([]string(nil), primary.DoAndDont...)
	}
	if len(kit.PreferredAdjectives) == 0 {
		kit.PreferredAdjectives = append([]string(nil), primary.Adjectives...)
		if hasSecondary {
			for _, adj := range firstN(secondary.Adjectives, 2) {
				if !contains(kit.PreferredAdjectives, adj) {
					kit.PreferredAdjectives = append(kit.PreferredAdjectives, adj)
				}
			}
		}
	}
	if len(kit.HookTemplates) == 0 {
		kit.HookTemplates = append([]string(nil), primary.Hooks...)
		if hasSecondary && len(secondary.Hooks) > 0 && !contains(kit.HookTemplates, secondary.Hooks[0]) {
			kit.HookTemplates = append(kit.HookTemplates, secondary.Hooks[0])
		}
	}
	if len(kit.SyntaxConstraints) == 0 {
		kit.SyntaxConstraints = append([]string(nil), primary.Syntax...)
	}
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
