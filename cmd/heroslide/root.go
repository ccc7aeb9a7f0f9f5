package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/amp-labs/hero-slider/bgworker"
	"github.com/amp-labs/hero-slider/closer"
	"github.com/amp-labs/hero-slider/deck"
	"github.com/amp-labs/hero-slider/envutil"
	"github.com/amp-labs/hero-slider/logger"
	"github.com/amp-labs/hero-slider/player"
	"github.com/amp-labs/hero-slider/should"
	"github.com/amp-labs/hero-slider/shutdown"
	"github.com/amp-labs/hero-slider/slider"
	"github.com/amp-labs/hero-slider/spans"
	"github.com/amp-labs/hero-slider/telemetry"
	"github.com/amp-labs/hero-slider/timeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

const (
	appName         = "heroslide"
	shutdownTimeout = 5 * time.Second
)

type flags struct {
	deck          string
	interval      time.Duration
	noAutoplay    bool
	reducedMotion bool
	metricsAddr   string
	watch         bool
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Run the hero slider in the terminal",
		Long: `Run the hero slider in the terminal.

Slides come from a YAML deck file or directory (--deck), or the built-in
two-slide deck. Autoplay, interval and reduced motion default to
HERO_AUTOPLAY, HERO_INTERVAL and HERO_REDUCED_MOTION.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.deck, "deck", "", "deck YAML file or directory of YAML files")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "autoplay interval (overrides HERO_INTERVAL)")
	cmd.Flags().BoolVar(&f.noAutoplay, "no-autoplay", false, "start with autoplay off")
	cmd.Flags().BoolVar(&f.reducedMotion, "reduced-motion", false, "disable animation")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics here (overrides METRICS_ADDR)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "no prompt menu; autoplay until interrupted")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	ctx, sig := shutdown.SetupHandler(cmd.Context())
	defer sig.Stop()

	ctx = logger.WithSubsystem(ctx, appName)
	logger.ConfigureLogging(ctx, appName)

	ctx, err := setupTelemetry(ctx)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Get(ctx).Warn("telemetry shutdown failed", "error", err)
		}
	}()

	slides, err := loadDeck(ctx, f.deck)
	if err != nil {
		return err
	}

	cfg, err := slider.ConfigFromEnv(ctx)
	if err != nil {
		return err
	}

	if f.interval != 0 {
		cfg.Interval = f.interval
	}

	if f.noAutoplay {
		cfg.Autoplay = false
	}

	motion := slider.EnvMotionPreference(ctx)
	if f.reducedMotion {
		motion = slider.StaticMotion(true)
	}

	pool := bgworker.New(ctx, "media", 0)
	defer should.Close(ctx, pool, "stopping media pool")

	out := cmd.OutOrStdout()
	surface := newTerminalSurface(ctx, out, slides)

	runner := timeline.NewRunner(pool, timeline.WithMediaPlayer(mediaPlayer(ctx)))

	ctrl, err := slider.Mount(ctx, slides, runner,
		slider.WithConfig(cfg),
		slider.WithMotionPreference(motion),
		slider.WithSurface(surface))
	if err != nil {
		return err
	}

	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Get(ctx).Warn("error unmounting slider", "error", err)
		}
	}()

	sig.BeforeShutdown(func(ctx context.Context) {
		logger.Get(ctx).Info("pausing autoplay for shutdown")
		ctrl.SetAutoplay(false)
	})

	if err := ctrl.Bind(surface); err != nil {
		return err
	}

	if err := ctrl.Bind(ctrl.Subscribe(func(c slider.Change) {
		logger.Get(ctx).Debug("slide changed", "from", c.From, "to", c.To, "slide", c.Slide.ID)
	})); err != nil {
		return err
	}

	if err := serveMetrics(ctx, ctrl, f.metricsAddr); err != nil {
		return err
	}

	if f.watch {
		<-ctx.Done()

		return nil
	}

	return interact(ctx, ctrl, out)
}

// setupTelemetry starts the exporters and returns ctx carrying the tracer
// used for transition and deck spans.
func setupTelemetry(ctx context.Context) (context.Context, error) {
	config, err := telemetry.LoadConfigFromEnv(ctx, envutil.String(ctx, "HERO_ENV",
		envutil.Default("local")).ValueOrElse("local"))
	if err != nil {
		return ctx, err
	}

	if err := telemetry.Initialize(ctx, config); err != nil {
		return ctx, err
	}

	if h := telemetry.LogHandler(); h != nil {
		logger.ConfigureLogging(ctx, appName, logger.WithExtraHandler(h))
	}

	return spans.WithTracer(ctx, otel.Tracer(appName)), nil
}

func loadDeck(ctx context.Context, path string) ([]slider.Slide, error) {
	if path == "" {
		return deck.Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("deck: %w", err)
	}

	if info.IsDir() {
		return deck.LoadDir(ctx, path)
	}

	return deck.LoadFile(ctx, path)
}

func mediaPlayer(ctx context.Context) timeline.MediaPlayer { //nolint:ireturn
	if c := player.CommandFromEnv(ctx); c != nil {
		return c
	}

	return player.Log{}
}

// serveMetrics exposes promhttp on addr (or METRICS_ADDR). The server is
// bound to the controller and stops when it unmounts.
func serveMetrics(ctx context.Context, ctrl *slider.Controller, addr string) error {
	if addr == "" {
		addr = envutil.String(ctx, "METRICS_ADDR").ValueOrElse("")
	}

	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get(ctx).Error("metrics server failed", "addr", addr, "error", err)
		}
	}()

	logger.Get(ctx).Info("serving metrics", "addr", addr)

	return ctrl.Bind(closer.CustomCloser(func() error {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}))
}

func writeLine(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		logger.Get().Debug("terminal write failed", "error", err)
	}
}
