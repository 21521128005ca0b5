package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/clambin/rachio-tools/internal/notifier"
	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// app holds what all commands need: the configuration, a logger and the registry for the command's metrics.
type app struct {
	cfg      *viper.Viper
	logger   *slog.Logger
	registry *prometheus.Registry
	now      func() time.Time
	api      *rachio.Client
}

func newApp(cfg *viper.Viper, logger *slog.Logger) *app {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		now:      time.Now,
	}
}

func (a *app) client() (*rachio.Client, error) {
	if a.api != nil {
		return a.api, nil
	}
	m := rachio.NewRequestMetrics("rachio", "api", nil)
	c, err := rachio.New(a.cfg.GetString("rachio.url"), a.cfg.GetString("rachio.apiKey"), rachio.WithRequestMetrics(m))
	if err != nil {
		return nil, err
	}
	if err = a.registry.Register(m); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	a.api = c
	return c, nil
}

func (a *app) notifier() notifier.Notifier {
	n := notifier.Notifiers{notifier.SLogNotifier{Logger: a.logger.With("component", "notifier")}}
	if token := a.cfg.GetString("slack.token"); token != "" {
		n = append(n, &notifier.SlackNotifier{
			SlackSender: slack.New(token),
			Logger:      a.logger.With("component", "slack"),
		})
	}
	return n
}

// deviceName returns the device selected on the command line, or the winterize device if none was specified.
func (a *app) deviceName(device string) string {
	if device != "" {
		return device
	}
	return a.cfg.GetString("winterize.deviceName")
}

// run calls f. If metrics.addr is set, the metrics server runs until f returns.
func (a *app) run(ctx context.Context, health http.Handler, f func(context.Context) error) error {
	addr := a.cfg.GetString("metrics.addr")
	if addr == "" {
		return f(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := server.New(addr, a.registry, health, a.logger.With("component", "server"))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		return f(ctx)
	})
	return g.Wait()
}
