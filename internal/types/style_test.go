//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitFixture() StyleKit {
	return StyleKit{
		Profile: StyleProfile{
			PrimaryColor:    ColorBlue,
			InteractionMode: ModeReactive,
			ReferenceFrame:  FrameObject,
		},
		DoAndDont:           []string{"Use facts", "Avoid hype"},
		PreferredAdjectives: []string{"strukturiert", "präzise"},
		HookTemplates:       []string{"Qualität ist kein Zufall."},
		SyntaxConstraints:   []string{"Klare Hauptsätze."},
	}
}

func TestStyleKit_PromptBlockEnglish(t *testing.T) {
	kit := kitFixture()
	block := kit.PromptBlock(LanguageEnglish)

	assert.True(t, strings.HasPrefix(block, "## Style Kit"))
	assert.Contains(t, block, "Primary style: blue")
	assert.NotContains(t, block, "secondary:")
	assert.Contains(t, block, "Mode: reaktiv | Frame: objektbezug")
	assert.Contains(t, block, "### Do / Don't:")
	assert.Contains(t, block, "- Use facts")
	assert.Contains(t, block, "### Preferred adjectives: strukturiert, präzise")
	assert.Contains(t, block, "### Hook templates:")
	assert.Contains(t, block, "### Sentence structure:")
}

func TestStyleKit_PromptBlockGerman(t *testing.T) {
	kit := kitFixture()
	block := kit.PromptBlock(LanguageGerman)

	assert.True(t, strings.HasPrefix(block, "## Stil-Vorgaben"))
	assert.Contains(t, block, "### Regeln:")
	assert.Contains(t, block, "### Bevorzugte Adjektive: strukturiert, präzise")
	assert.Contains(t, block, "### Hook-Vorlagen:")
	assert.Contains(t, block, "### Satzstruktur:")
}

func TestStyleKit_PromptBlockSecondary(t *testing.T) {
	kit := kitFixture()
	kit.Profile.SecondaryColor = ColorGreen

	block := kit.PromptBlock(LanguageEnglish)
	assert.Contains(t, block, "Primary style: blue + secondary: green")
}

func TestStyleKit_PromptBlockHardConstraintsLast(t *testing.T) {
	kit := kitFixture()
	kit.Profile.Constraints = []string{"Nie Superlative verwenden"}

	block := kit.PromptBlock(LanguageGerman)
	idx := strings.Index(block, "### Hard constraints (override all above):")
	require.Positive(t, idx)
	assert.Contains(t, block[idx:], "- ⚠️ Nie Superlative verwenden")

	// Every other section renders before the hard constraints.
	for _, section := range []string{"### Regeln:", "### Bevorzugte Adjektive", "### Hook-Vorlagen:", "### Satzstruktur:"} {
		assert.Less(t, strings.Index(block, section), idx, section)
	}
}

func TestStyleKit_PromptBlockOmitsEmptySections(t *testing.T) {
	kit := StyleKit{Profile: StyleProfile{
		PrimaryColor:    ColorRed,
		InteractionMode: ModeProactive,
		ReferenceFrame:  FrameObject,
	}}
	block := kit.PromptBlock(LanguageEnglish)

	assert.NotContains(t, block, "###")
	assert.Contains(t, block, "Primary style: red")
}
