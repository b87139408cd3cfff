package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homeworkbot/internal/config"
	"homeworkbot/internal/notifier"
	"homeworkbot/internal/observability/metrics"
	"homeworkbot/internal/poller"
	"homeworkbot/internal/practicum"
	"homeworkbot/internal/runtime/sdnotify"
	"homeworkbot/internal/runtime/supervisor"
	telegram "homeworkbot/internal/transport/telegram/adapter"
	logx "homeworkbot/pkg/logx"
)

// Options configure NewApp. Lookup defaults to os.LookupEnv.
type Options struct {
	ConfigPath string
	Lookup     config.LookupFunc
}

type App struct {
	cfgm *config.ConfigManager
	sup  *supervisor.Supervisor

	log  logx.Logger
	logs *logx.Service

	metrics *metrics.Metrics
	server  *metrics.Server
	sd      *sdnotify.Notifier
	loop    *poller.Loop
}

// NewApp loads the configuration and builds every component. A
// *config.MissingSecretsError or *config.ConfigError is returned as is so
// the caller can report it before exiting.
func NewApp(opts Options) (*App, error) {
	cfgm := config.NewConfigManager(opts.ConfigPath, opts.Lookup)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(mapLogConfig(cfg))
	log = log.With(logx.String("comp", "app"))
	cfgm.SetLogger(log.With(logx.String("comp", "config")))

	tcfg, err := mapTelegramConfig(cfg)
	if err != nil {
		return nil, err
	}
	ad, err := telegram.New(tcfg, log.With(logx.String("comp", "telegram")))
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}

	pcfg, err := mapPracticumConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, err := practicum.New(pcfg)
	if err != nil {
		return nil, fmt.Errorf("practicum: %w", err)
	}

	m := metrics.New()

	ncfg, err := mapNotifierConfig(cfg)
	if err != nil {
		return nil, err
	}
	notif := notifier.New(ncfg, ad, log.With(logx.String("comp", "notifier")), m)

	lcfg, err := mapPollConfig(cfg)
	if err != nil {
		return nil, err
	}
	sd := sdnotify.New(log.With(logx.String("comp", "systemd")))
	loop := poller.New(lcfg, client, notif, log.With(logx.String("comp", "poller")),
		poller.WithMetrics(m),
		poller.WithStatusReporter(sd),
	)

	return &App{
		cfgm:    cfgm,
		log:     log,
		logs:    logSvc,
		metrics: m,
		server:  metrics.NewServer(mapMetricsConfig(cfg), m, log.With(logx.String("comp", "metrics"))),
		sd:      sd,
		loop:    loop,
	}, nil
}

func (a *App) Logger() logx.Logger { return a.log }

// Done is closed when the app supervisor context is canceled (fatal error or Stop()).
func (a *App) Done() <-chan struct{} {
	if a.sup == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return a.sup.Context().Done()
}

// Err returns the first fatal error observed by the supervisor (if any).
func (a *App) Err() error {
	if a.sup == nil {
		return nil
	}
	return a.sup.Err()
}

func (a *App) Start(ctx context.Context) error {
	a.sup = supervisor.New(ctx, supervisor.WithLogger(a.log), supervisor.WithCancelOnError(true))

	a.sup.Go("poller", a.loop.Run)
	a.sup.GoRestart("metrics.server", a.server.Run, time.Second, 30*time.Second)
	a.sup.Go("systemd.watchdog", a.sd.Watchdog)

	sub := a.cfgm.Subscribe(8)
	a.sup.Go0("config.reload", func(c context.Context) {
		defer a.cfgm.Unsubscribe(sub)
		lastApplied := a.cfgm.Get()
		for {
			select {
			case <-c.Done():
				return
			case newCfg, ok := <-sub:
				if !ok {
					return
				}
				a.applyConfig(lastApplied, newCfg)
				lastApplied = newCfg
			}
		}
	})
	a.sup.GoRestart("config.watch", a.cfgm.Watch, time.Second, time.Minute)

	a.sd.Ready()
	a.log.Info("app started", logx.String("config", a.cfgm.Path()))
	return nil
}

// applyConfig applies hot-reloadable sections and warns about the rest.
func (a *App) applyConfig(oldCfg, newCfg *config.Config) {
	sections, attrs := config.SummarizeConfigChange(oldCfg, newCfg)
	if len(sections) == 0 {
		a.log.Info("config reloaded (no changes)")
		return
	}

	var restart []string
	for _, s := range sections {
		if config.HotReloadable(s) {
			continue
		}
		restart = append(restart, s)
	}
	for _, s := range sections {
		if s == "logging" {
			a.logs.Apply(mapLogConfig(newCfg))
			break
		}
	}
	if len(restart) > 0 {
		a.log.Warn("config changed; restart required for changes to take effect", logx.Strings("sections", restart))
	}

	fields := append([]logx.Field{logx.String("changed", strings.Join(sections, ","))}, attrs...)
	a.log.Info("config reloaded", fields...)
}

func (a *App) Stop(ctx context.Context, reason StopReason) error {
	if a.sup == nil {
		return nil
	}
	a.log.Info("stopping", logx.String("reason", string(reason)))
	a.sd.Stopping()

	a.sup.Cancel()
	err := a.sup.Wait(ctx)
	if err != nil {
		a.log.Warn("stopped with error", logx.Err(err), logx.Int64("active", a.sup.Active()))
	}

	a.log.Info("stopped")
	if a.logs != nil {
		_ = a.logs.Close()
	}
	return err
}
