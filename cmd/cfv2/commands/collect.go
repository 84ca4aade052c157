package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/collector"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// NewCollectCommand creates the collect command
func NewCollectCommand() *cobra.Command {
	var (
		once       bool
		sinkType   string
		sinkURL    string
		cursorType string
		cursorURL  string
		filter     string
		listenAddr string
		kinds      []string
		interval   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect usage events into a sink",
		Long: `Continuously read app and service usage events after the last stored
cursor and write them to a sink.

Sinks: log, nats (JetStream), postgres. Cursor stores: memory, nats (KV),
redis, postgres. Settings are read from the collector section of the config
file; flags override them. Metrics and /healthz are served on --listen-addr.

The --filter expression sees guid, kind, created_at, entity, now and
hoursSince(t), for example:

  entity.state == "STARTED" && entity.memory_in_mb_per_instance >= 1024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCollectorConfig()
			if err != nil {
				return err
			}

			overrides := map[string]func(){
				"sink":        func() { cfg.Sink.Type = sinkType },
				"sink-url":    func() { cfg.Sink.URL = sinkURL },
				"cursor":      func() { cfg.Cursor.Type = cursorType },
				"cursor-url":  func() { cfg.Cursor.URL = cursorURL },
				"filter":      func() { cfg.Filter = filter },
				"listen-addr": func() { cfg.ListenAddr = listenAddr },
				"kinds":       func() { cfg.Kinds = kinds },
				"interval":    func() { cfg.Interval = interval },
			}

			for name, apply := range overrides {
				if cmd.Flags().Changed(name) {
					apply()
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cmd.ErrOrStderr())
			if !viper.GetBool("verbose") {
				logger = logger.Level(zerolog.InfoLevel)
			}

			return runCollector(ctx, cfg, once, logger)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single round per kind and exit")
	cmd.Flags().StringVar(&sinkType, "sink", "", "sink type (log, nats, postgres)")
	cmd.Flags().StringVar(&sinkURL, "sink-url", "", "sink connection URL")
	cmd.Flags().StringVar(&cursorType, "cursor", "", "cursor store type (memory, nats, redis, postgres)")
	cmd.Flags().StringVar(&cursorURL, "cursor-url", "", "cursor store connection URL")
	cmd.Flags().StringVar(&filter, "filter", "", "expression events must match to be stored")
	cmd.Flags().StringVar(&listenAddr, "listen-addr", "", "metrics and health check address")
	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "event kinds to collect (app, service)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "wait between rounds")

	return cmd
}

func loadCollectorConfig() (collector.Config, error) {
	cfg := collector.DefaultConfig()

	if !viper.IsSet("collector") {
		return cfg, nil
	}

	err := viper.UnmarshalKey("collector", &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to read collector configuration: %w", err)
	}

	return cfg, nil
}

func runCollector(ctx context.Context, cfg collector.Config, once bool, logger zerolog.Logger) error {
	kinds, err := cfg.ParseKinds()
	if err != nil {
		return err
	}

	filter, err := collector.NewFilter(cfg.Filter)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := collector.NewMetrics(registry)
	if err != nil {
		return err
	}

	requestMetrics, err := cfapi.NewRequestMetrics(registry)
	if err != nil {
		return err
	}

	client, err := createClient(ctx, func(config *cfapi.Config) {
		chain := cfapi.NewInterceptorChain()
		requestMetrics.Install(chain)

		config.Interceptors = chain
		config.Logger = cfapi.NewZerologLogger(logger)
	})
	if err != nil {
		return err
	}

	backends := collector.NewBackends()
	defer func() { _ = backends.Close() }()

	cursors, err := collector.OpenCursorStore(ctx, cfg.Cursor, backends)
	if err != nil {
		return err
	}

	sink, err := collector.OpenSink(ctx, cfg.Sink, kinds, backends, logger)
	if err != nil {
		return err
	}

	sources := usageEventSources(client, kinds, cfg.MinAge)
	c := collector.New(sources, cursors, sink, filter, metrics, logger, cfg.Options())

	if once {
		for _, source := range sources {
			_, err := c.CollectOnce(ctx, source)
			if err != nil {
				return fmt.Errorf("collecting %s usage events: %w", source.Kind(), err)
			}
		}

		return nil
	}

	server := collector.NewServer(cfg.ListenAddr, registry, c.Healthy, logger)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return server.Run(groupCtx) })
	group.Go(func() error { return c.Run(groupCtx) })

	return group.Wait()
}

func usageEventSources(client cfclient.Client, kinds []collector.Kind, minAge time.Duration) []collector.Source {
	sources := make([]collector.Source, 0, len(kinds))

	for _, kind := range kinds {
		switch kind {
		case collector.KindApp:
			sources = append(sources, collector.NewApplicationUsageEventSource(client.ApplicationUsageEvents(), minAge))
		case collector.KindService:
			sources = append(sources, collector.NewServiceUsageEventSource(client.ServiceUsageEvents(), minAge))
		}
	}

	return sources
}
