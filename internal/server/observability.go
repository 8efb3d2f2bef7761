package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/metrics"
	"github.com/FACorreiaa/hmhy-portal/internal/app/observability/tracer"
	"github.com/FACorreiaa/hmhy-portal/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability installs the tracer and meter providers before any
// instrument is created, so the portal metrics land on /metrics.
func InitObservability(cfg *config.Config, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(cfg.ServiceName, cfg.Observability.MetricsAddr, cfg.Observability.OTLPEndpoint, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("metrics_endpoint", cfg.Observability.MetricsAddr+"/metrics"),
		zap.String("otlp_endpoint", cfg.Observability.OTLPEndpoint))

	return otelShutdown, nil
}
