package tracing

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(DefaultConfig())
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanSubmit)
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.FilePath = path

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanSubmit)
	span.SetAttributes(attribute.String(AttrID, "abc"))
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	require.Equal(t, SpanSubmit, records[0].Name)
	require.Equal(t, "abc", records[0].Attributes[AttrID])
}

func TestNewProvider_StdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = ExporterStdout
	cfg.Writer = &buf

	p, err := NewProvider(cfg)
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), SpanSubmit)
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	require.Contains(t, buf.String(), SpanSubmit)
}

func TestNewProvider_NoneExporterStillTraces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Exporter = ExporterNone

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	defer p.Shutdown(context.Background())

	_, span := p.Tracer().Start(context.Background(), SpanSubmit)
	require.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"disabled ignores everything", func(c *Config) { c.Exporter = "otlp" }, ""},
		{"file needs path", func(c *Config) { c.Enabled = true }, "file_path required"},
		{"unknown exporter", func(c *Config) { c.Enabled = true; c.Exporter = "otlp" }, "unsupported tracing exporter"},
		{"sample rate too high", func(c *Config) { c.Enabled = true; c.Exporter = ExporterNone; c.SampleRate = 2 }, "sample_rate"},
		{"stdout ok", func(c *Config) { c.Enabled = true; c.Exporter = ExporterStdout }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := NewProvider(Config{Enabled: true, Exporter: "otlp"})
	require.Error(t, err)
}
