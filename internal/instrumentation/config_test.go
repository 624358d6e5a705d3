package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gmail-analysis", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterNone, cfg.MetricsExporter)
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom-name")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")

	cfg := DefaultConfig()
	assert.Equal(t, "custom-name", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ExporterStdout, cfg.MetricsExporter)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		wantErr  bool
	}{
		{"stdout exporter", ExporterStdout, false},
		{"none exporter", ExporterNone, false},
		{"prometheus is not supported", "prometheus", true},
		{"empty exporter", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MetricsExporter = tt.exporter
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("TEST_BOOL_VAL", "not-a-bool")
	assert.True(t, getEnvBoolOrDefault("TEST_BOOL_VAL", true), "invalid value falls back to default")

	t.Setenv("TEST_BOOL_VAL", "true")
	assert.True(t, getEnvBoolOrDefault("TEST_BOOL_VAL", false))
}
