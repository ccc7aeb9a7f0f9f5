package telemetry

import (
	"testing"
	"time"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestLoadConfigFromEnv_ClusterDetection(t *testing.T) {
	tests := []struct {
		name             string
		kubernetesHost   string
		customEndpoint   string
		expectedEndpoint string
	}{
		{
			name:             "cluster detected",
			kubernetesHost:   "10.0.0.1",
			expectedEndpoint: clusterCollector,
		},
		{
			name:             "outside a cluster",
			expectedEndpoint: "",
		},
		{
			name:             "custom endpoint overrides cluster default",
			kubernetesHost:   "10.0.0.1",
			customEndpoint:   "http://custom-collector:4318",
			expectedEndpoint: "http://custom-collector:4318",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("KUBERNETES_SERVICE_HOST", test.kubernetesHost)

			ctx := t.Context()
			if test.customEndpoint != "" {
				ctx = envutil.WithEnvOverride(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", test.customEndpoint)
			}

			config, err := LoadConfigFromEnv(ctx, "test")
			require.NoError(t, err)
			assert.Equal(t, test.expectedEndpoint, config.Endpoint)
		})
	}
}

func TestLoadConfigFromEnv_Values(t *testing.T) {
	t.Parallel()

	ctx := logger.WithSubsystem(t.Context(), "heroslide")
	ctx = envutil.WithEnvOverride(ctx, "OTEL_ENABLED", "true")
	ctx = envutil.WithEnvOverride(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://collector:4318")
	ctx = envutil.WithEnvOverride(ctx, "OTEL_EXPORTER_OTLP_TRACES_TIMEOUT", "2s")
	ctx = envutil.WithEnvOverride(ctx, "OTEL_LOGS_ENABLED", "1")
	ctx = envutil.WithEnvOverride(ctx, "OTEL_EXPORTER_OTLP_LOGS_ENDPOINT", "http://collector:4318/v1/logs")

	config, err := LoadConfigFromEnv(ctx, "dev")
	require.NoError(t, err)

	assert.Equal(t, &Config{
		ServiceName:    "heroslide",
		ServiceVersion: defaultServiceVersion,
		Environment:    "dev",
		Endpoint:       "http://collector:4318",
		Enabled:        true,
		Timeout:        2 * time.Second,
		LogsEnabled:    true,
		LogsEndpoint:   "http://collector:4318/v1/logs",
	}, config)

	_, err = LoadConfigFromEnv(envutil.WithEnvOverride(t.Context(), "OTEL_ENABLED", "yes please"), "dev")
	require.ErrorIs(t, err, envutil.ErrBadEnvVar)
}

//nolint:paralleltest // Mutates the package-level providers.
func TestInitialize_DisabledIsNoop(t *testing.T) {
	require.NoError(t, Initialize(t.Context(), nil))
	require.NoError(t, Initialize(t.Context(), &Config{Enabled: false}))
	require.NoError(t, Initialize(t.Context(), &Config{Enabled: true}))

	assert.Nil(t, LogHandler())
	require.NoError(t, Shutdown(t.Context()))
}

//nolint:paralleltest // Mutates the package-level providers.
func TestInitialize_WithLogs(t *testing.T) {
	config := &Config{
		ServiceName:    "heroslide-test",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		Endpoint:       "http://127.0.0.1:1",
		Enabled:        true,
		Timeout:        50 * time.Millisecond,
		LogsEnabled:    true,
		LogsEndpoint:   "http://127.0.0.1:1",
	}

	require.NoError(t, Initialize(t.Context(), config))
	require.NotNil(t, LogHandler())

	_ = Shutdown(t.Context())

	assert.Nil(t, LogHandler())
}
