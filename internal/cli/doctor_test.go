package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/hostdash/internal/config"
	"github.com/rileyhilliard/hostdash/internal/doctor"
)

func TestCollectChecks_Order(t *testing.T) {
	isolateConfig(t)
	cfg := config.DefaultConfig()

	checks := collectChecks("", cfg, &stubProvider{})

	var categories []string
	for _, c := range checks {
		if len(categories) == 0 || categories[len(categories)-1] != c.Category() {
			categories = append(categories, c.Category())
		}
	}
	assert.Equal(t, doctor.CategoryOrder, categories)
}

func TestOutputDoctorJSON(t *testing.T) {
	isolateConfig(t)
	stubTerminal(t, false, nil)
	cfg := config.DefaultConfig()
	cfg.GPU.Enabled = false

	checks := collectChecks("", cfg, &stubProvider{})
	results := doctor.RunAll(context.Background(), checks)

	var buf bytes.Buffer
	require.NoError(t, outputDoctorJSON(&buf, checks, results))

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Categories, 4)
	assert.Equal(t, "CONFIG", out.Categories[0].Name)
	assert.Len(t, out.Categories[1].Results, 4)

	// Only the terminal check warns.
	assert.Equal(t, 1, out.Summary.Warn)
	assert.Equal(t, 0, out.Summary.Fail)
	assert.False(t, out.Summary.AllClear)
	assert.Contains(t, buf.String(), `"status": "warn"`)
}

func TestOutputDoctorText(t *testing.T) {
	isolateConfig(t)
	stubTerminal(t, true, nil)
	cfg := config.DefaultConfig()
	cfg.GPU.Enabled = false

	checks := collectChecks("", cfg, &stubProvider{})
	results := doctor.RunAll(context.Background(), checks)

	var buf bytes.Buffer
	outputDoctorText(&buf, checks, results)
	out := buf.String()

	assert.Contains(t, out, "hostdash Diagnostic Report")
	assert.Contains(t, out, "METRICS")
	assert.Contains(t, out, "No config file, using defaults")
	assert.Contains(t, out, "GPU reads disabled in config")
	assert.Contains(t, out, "Everything looks good")
}

func TestDoctorCommand_InvalidConfigReported(t *testing.T) {
	dir := isolateConfig(t)
	stubTerminal(t, true, nil)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  highlight: cyan\n"), 0o644))

	origJSON := doctorJSON
	t.Cleanup(func() { doctorJSON = origJSON })
	doctorJSON = true

	var buf bytes.Buffer
	require.NoError(t, doctorCommand(context.Background(), &buf, path))

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotEmpty(t, out.Categories)
	schema := out.Categories[0].Results[1]
	assert.Equal(t, "config_schema", schema.Name)
	assert.Contains(t, schema.Message, "theme.highlight")
	assert.GreaterOrEqual(t, out.Summary.Fail, 1)
}
