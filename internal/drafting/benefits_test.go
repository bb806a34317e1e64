package drafting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthias/jobad-composer/internal/duties"
	"github.com/matthias/jobad-composer/internal/types"
)

func TestMatchBestSentence(t *testing.T) {
	tests := []struct {
		name      string
		keyword   string
		sentences []string
		want      string
		wantOK    bool
	}{
		{
			name:      "substring match wins",
			keyword:   "remote work switzerland",
			sentences: []string{"Great coffee", "Remote work Switzerland with flexible hours"},
			want:      "Remote work Switzerland with flexible hours",
			wantOK:    true,
		},
		{
			name:      "word overlap scores half",
			keyword:   "remote work switzerland",
			sentences: []string{"Work remotely from anywhere in Switzerland"},
			want:      "Work remotely from anywhere in Switzerland",
			wantOK:    true,
		},
		{
			name:      "substring beats word overlap",
			keyword:   "stock options",
			sentences: []string{"Options for flexible scheduling", "Generous stock options package"},
			want:      "Generous stock options package",
			wantOK:    true,
		},
		{
			name:      "first best match is kept on ties",
			keyword:   "flexible hours",
			sentences: []string{"We offer flexible hours", "Enjoy flexible hours every week"},
			want:      "We offer flexible hours",
			wantOK:    true,
		},
		{
			name:      "words of three chars or less never count",
			keyword:   "gym fee",
			sentences: []string{"A fee for the gym next door"},
			want:      "",
			wantOK:    false,
		},
		{
			name:      "no match",
			keyword:   "childcare support",
			sentences: []string{"Free snacks", "Annual team retreat"},
			want:      "",
			wantOK:    false,
		},
		{
			name:      "case insensitive",
			keyword:   "Remote Work Schweiz",
			sentences: []string{"remote work schweiz an drei Tagen pro Woche"},
			want:      "remote work schweiz an drei Tagen pro Woche",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchBestSentence(tt.keyword, tt.sentences)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforceBenefits_OneSentencePerKeyword(t *testing.T) {
	body := types.JobBody{
		Benefits: []string{
			"Remote work in Switzerland up to three days a week",
			"Five weeks of vacation",
			"Unlimited espresso",
		},
	}

	got := EnforceBenefits(body, []string{"remote work switzerland", "5 weeks vacation"})

	require.Len(t, got.Benefits, 2)
	assert.Equal(t, "Remote work in Switzerland up to three days a week", got.Benefits[0])
	assert.Equal(t, "Five weeks of vacation", got.Benefits[1])
}

func TestEnforceBenefits_FallsBackToRawKeyword(t *testing.T) {
	body := types.JobBody{Benefits: []string{"Free parking"}}

	got := EnforceBenefits(body, []string{"Weiterbildungsbudget"})

	require.Len(t, got.Benefits, 1)
	assert.Equal(t, "Weiterbildungsbudget", got.Benefits[0])
}

func TestEnforceBenefits_NoKeywordsEmptiesList(t *testing.T) {
	body := types.JobBody{Benefits: []string{"Something the model invented"}}

	got := EnforceBenefits(body, nil)

	require.NotNil(t, got.Benefits)
	assert.Empty(t, got.Benefits)
}

func TestEnforceBenefits_CountMatchesEvenWhenModelDrifts(t *testing.T) {
	// Model produced one blob covering everything plus an invention
	body := types.JobBody{
		Benefits: []string{"We offer remote work and vacation", "A pet iguana"},
	}
	keywords := []string{"remote work", "vacation days", "pension plan"}

	got := EnforceBenefits(body, keywords)

	require.Len(t, got.Benefits, 3)
	assert.Equal(t, "We offer remote work and vacation", got.Benefits[0])
	assert.Equal(t, "We offer remote work and vacation", got.Benefits[1])
	assert.Equal(t, "pension plan", got.Benefits[2])
}

func TestEnforceDuties_PinsCountAndOrder(t *testing.T) {
	body := types.JobBody{
		Duties: []string{
			"You maintain the CI/CD-Pipelines daily",
			"You support internal applications",
			"You invent new duties",
		},
	}
	resolved := []string{
		"Betreuung der internen Applikationen und Support",
		"Pflege der CI/CD-Pipelines",
	}

	got := EnforceDuties(body, resolved, duties.SourceCategory)

	require.Len(t, got.Duties, 2)
	// Word overlap keeps the model's rephrasing where it exists
	assert.Equal(t, "You support internal applications", got.Duties[0])
	assert.Equal(t, "You maintain the CI/CD-Pipelines daily", got.Duties[1])
}

func TestEnforceDuties_FallsBackToResolvedText(t *testing.T) {
	body := types.JobBody{Duties: []string{"Completely unrelated bullet"}}
	resolved := []string{"Durchführung von Lohnläufen"}

	got := EnforceDuties(body, resolved, duties.SourceUser)

	require.Len(t, got.Duties, 1)
	assert.Equal(t, "Durchführung von Lohnläufen", got.Duties[0])
}

func TestEnforceDuties_LLMSourceUntouched(t *testing.T) {
	body := types.JobBody{Duties: []string{"a", "b", "c", "d", "e"}}

	got := EnforceDuties(body, nil, duties.SourceLLM)

	assert.Equal(t, body.Duties, got.Duties)
}
