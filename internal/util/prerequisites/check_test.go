package prerequisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	results := Check([]Tool{
		{Name: "sh", Required: true},
		{Name: "nonexistent-tool-xyz123", Required: true, InstallURL: "https://example.com"},
	})

	require.Len(t, results.Results, 2)
	assert.Equal(t, "sh", results.Results[0].Tool.Name)
	assert.True(t, results.Results[0].Found)
	assert.False(t, results.Results[1].Found)
	assert.Empty(t, results.Results[1].Version)
	assert.Equal(t, "https://example.com", results.Results[1].Tool.InstallURL)
}

func TestDefaultTools(t *testing.T) {
	t.Parallel()

	tools := DefaultTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "docker", tools[0].Name)
	assert.True(t, tools[0].Required)
	assert.NotEmpty(t, tools[0].InstallURL)
}

func TestOptionalTools(t *testing.T) {
	t.Parallel()

	tools := OptionalTools()
	require.NotEmpty(t, tools)
	for _, tool := range tools {
		assert.False(t, tool.Required, tool.Name)
	}
	assert.Equal(t, "psql", tools[0].Name)
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	results := CheckAll()
	require.Len(t, results.Results, len(DefaultTools())+len(OptionalTools()))
	assert.Equal(t, "docker", results.Results[0].Tool.Name)
}
