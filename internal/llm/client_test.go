package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestFactory_BindsConfigAndKey(t *testing.T) {
	factory := Factory(DefaultConfig().WithModel(TierStandard, "custom-model"), "test-key")

	client, err := factory(context.Background())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "custom-model", client.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", client.GetModel(TierAdvanced))
}

func TestFactory_PropagatesMissingKey(t *testing.T) {
	factory := Factory(DefaultConfig(), "")

	_, err := factory(context.Background())
	assert.Error(t, err)
}

func TestJobBodySchema_RequiredFields(t *testing.T) {
	schema := JobBodySchema()

	require.NotNil(t, schema)
	assert.ElementsMatch(t, []string{"job_description", "requirements", "benefits", "duties"}, schema.Required)
	for _, name := range []string{"job_description", "requirements", "benefits", "duties", "summary"} {
		assert.Contains(t, schema.Properties, name)
	}
}
