package config

import (
	"os"
	"strings"
)

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	Protocol    string  `mapstructure:"protocol" json:"protocol" yaml:"protocol"`
	ServiceName string  `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	Insecure    bool    `mapstructure:"insecure" json:"insecure" yaml:"insecure"`
}

// Enabled reports whether spans should be exported, either because an
// endpoint is configured or because the standard OTLP environment variable
// is set.
func (t TracingConfig) Enabled() bool {
	if strings.TrimSpace(t.Endpoint) != "" {
		return true
	}
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}
