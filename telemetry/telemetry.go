// Package telemetry wires OpenTelemetry trace and log export over OTLP/HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultTimeout        = 5 * time.Second
	clusterCollector      = "http://opentelemetry-collector.opentelemetry.svc.cluster.local:4318"
)

var (
	mu             sync.Mutex               //nolint:gochecknoglobals
	tracerProvider *sdktrace.TracerProvider //nolint:gochecknoglobals
	loggerProvider *sdklog.LoggerProvider   //nolint:gochecknoglobals
	logHandler     slog.Handler             //nolint:gochecknoglobals
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
	// LogsEnabled also exports slog records, to LogsEndpoint.
	LogsEnabled  bool
	LogsEndpoint string
}

// LoadConfigFromEnv loads OpenTelemetry configuration from environment variables.
func LoadConfigFromEnv(ctx context.Context, runningEnv string) (*Config, error) {
	enabled, err := envutil.Bool(ctx, "OTEL_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	// Inside Kubernetes default to the cluster collector.
	defaultEndpoint := ""
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		defaultEndpoint = clusterCollector
	}

	svcName, err := envutil.String(ctx, "OTEL_SERVICE_NAME",
		envutil.Default(logger.GetSubsystem(ctx))).
		Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envutil.String(ctx, "OTEL_SERVICE_VERSION",
		envutil.Default(defaultServiceVersion)).
		Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envutil.String(ctx, "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		envutil.Default(defaultEndpoint)).
		Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envutil.Duration(ctx, "OTEL_EXPORTER_OTLP_TRACES_TIMEOUT",
		envutil.Default(defaultTimeout)).
		Value()
	if err != nil {
		return nil, err
	}

	logsEnabled, err := envutil.Bool(ctx, "OTEL_LOGS_ENABLED", envutil.Default(false)).Value()
	if err != nil {
		return nil, err
	}

	logsEndpoint, err := envutil.String(ctx, "OTEL_EXPORTER_OTLP_LOGS_ENDPOINT",
		envutil.Default(defaultEndpoint)).
		Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    runningEnv,
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
		LogsEnabled:    logsEnabled,
		LogsEndpoint:   logsEndpoint,
	}, nil
}

// Initialize sets up OpenTelemetry tracing, and log export if configured.
// It is a no-op when telemetry is disabled or has no endpoint.
func Initialize(ctx context.Context, config *Config) error {
	if config == nil || !config.Enabled {
		logger.Get(ctx).Info("OpenTelemetry is disabled")

		return nil
	}

	if config.Endpoint == "" {
		logger.Get(ctx).Warn("OpenTelemetry endpoint not configured, tracing will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	mu.Lock()
	tracerProvider = tp
	mu.Unlock()

	logger.Get(ctx).Info("OpenTelemetry tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	if !config.LogsEnabled || config.LogsEndpoint == "" {
		return nil
	}

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(config.LogsEndpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	mu.Lock()
	loggerProvider = lp
	logHandler = otelslog.NewHandler(config.ServiceName, otelslog.WithLoggerProvider(lp))
	mu.Unlock()

	logger.Get(ctx).Info("OpenTelemetry log export initialized", "endpoint", config.LogsEndpoint)

	return nil
}

// LogHandler returns the slog handler that exports records over OTLP, or
// nil if log export is not initialized. Pass it to logger.WithExtraHandler.
func LogHandler() slog.Handler { //nolint:ireturn
	mu.Lock()
	defer mu.Unlock()

	return logHandler
}

// Shutdown flushes and stops the tracer and logger providers.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp, lp := tracerProvider, loggerProvider
	tracerProvider, loggerProvider, logHandler = nil, nil, nil
	mu.Unlock()

	var errs []error

	if tp != nil {
		logger.Get(ctx).Info("Shutting down OpenTelemetry tracer provider")

		errs = append(errs, tp.Shutdown(ctx))
	}

	if lp != nil {
		errs = append(errs, lp.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
