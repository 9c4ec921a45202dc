package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/agentlens/internal/facts"
	"github.com/dotcommander/agentlens/internal/weights"
)

func TestResolveTargets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantURL   bool
	}{
		{"https url passes through", "https://shop.example.com/widget", 1, true},
		{"http url passes through", "http://shop.example.com/widget", 1, true},
		{"directory expands to snapshots", dir, 2, false},
		{"plain file stands alone", filepath.Join(dir, "one.html"), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := resolveTargets(tt.target)
			require.Len(t, resolved, tt.wantCount)
			if tt.wantURL {
				assert.Equal(t, tt.target, resolved[0].url)
				assert.Empty(t, resolved[0].path)
			} else {
				assert.NotEmpty(t, resolved[0].path)
				assert.Empty(t, resolved[0].url)
			}
		})
	}
}

func TestRunEngineEndToEnd(t *testing.T) {
	wcfg := weights.Default()
	data := &facts.ExtractedPageData{
		URL: "https://shop.example.com/widget",
		ProtocolMeta: facts.ProtocolMetaFacts{
			TitleLength:           45,
			MetaDescriptionLength: 150,
			HasOGImage:            true,
			OGImageURL:            "https://cdn.example.com/widget.jpg",
		},
		ContentQuality: facts.ContentQualityFacts{
			DescriptionWordCount: 150,
		},
	}

	verification := &facts.ImageVerification{IsValidFormat: true, Format: "jpeg"}
	result, recs := runEngine(wcfg, data, verification, "hybrid")

	assert.Equal(t, "hybrid", result.Context)
	assert.GreaterOrEqual(t, result.TotalScore, 0)
	assert.LessOrEqual(t, result.TotalScore, 100)
	assert.Len(t, result.CategoryScores, 5)

	// Missing Product schema is the single biggest gap on this page.
	require.NotEmpty(t, recs)
	assert.Equal(t, "product_schema", recs[0].Factor)
	assert.Equal(t, "high", recs[0].Impact)

	// Determinism: same inputs, same outcome.
	again, _ := runEngine(wcfg, data, verification, "hybrid")
	assert.Equal(t, result.TotalScore, again.TotalScore)
	assert.Equal(t, result.Grade, again.Grade)
}

func TestWeightsViewShape(t *testing.T) {
	view := weightsView(weights.Default())

	categories, ok := view["categories"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, categories, 5)
	assert.Equal(t, "structured_data", categories[0]["key"])

	grades, ok := view["grades"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, grades, 5)
	assert.Equal(t, "A", grades[0]["grade"])
}
