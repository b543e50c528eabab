package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/newsdeck/pkg/config"
	"github.com/umputun/newsdeck/pkg/content"
	"github.com/umputun/newsdeck/pkg/feedsync"
	"github.com/umputun/newsdeck/pkg/newsapi"
	"github.com/umputun/newsdeck/pkg/repository"
	"github.com/umputun/newsdeck/pkg/scheduler"
	"github.com/umputun/newsdeck/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"newsdeck.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, nil)
	lgr.Printf("[INFO] starting newsdeck version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires storage, remote client, coordinator, scheduler and server, blocks until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	if cfg.Log.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   true,
		}
		defer rotator.Close()
		setupLog(opts.Debug, opts.NoColor, rotator, cfg.NewsAPI.APIKey)
	} else {
		setupLog(opts.Debug, opts.NoColor, nil, cfg.NewsAPI.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	client := newsapi.New(newsapi.Params{
		BaseURL: cfg.NewsAPI.BaseURL,
		APIKey:  cfg.NewsAPI.APIKey,
		Country: cfg.NewsAPI.Country,
		Timeout: cfg.NewsAPI.Timeout,
		Retries: cfg.NewsAPI.Retries,
	})

	coordinator := feedsync.NewCoordinator(feedsync.Params{
		Client:       client,
		Store:        repos.News,
		Topic:        cfg.TopicQuery(),
		TTL:          cfg.Cache.TTL,
		FetchTimeout: cfg.Cache.FetchTimeout,
	})
	// closed before the database, pending bookmark writes need it
	defer func() {
		if err := coordinator.Close(); err != nil {
			lgr.Printf("[WARN] failed to close coordinator: %v", err)
		}
	}()

	if cfg.Schedule.Enabled {
		sched := scheduler.NewScheduler(scheduler.Params{Loader: coordinator, Spec: cfg.Schedule.Refresh})
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	params := server.Params{
		Config:   cfg,
		Syncer:   coordinator,
		Settings: repos.Setting,
		Version:  revision,
		Debug:    opts.Debug,
	}
	if extraction := cfg.GetExtractionConfig(); extraction.Enabled {
		params.Extractor = content.NewHTTPExtractor(extraction.Timeout, extraction.UserAgent)
		lgr.Printf("[INFO] full text extraction enabled")
	}

	if err := server.New(params).Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// setupLog configures lgr and the standard logger. Output is copied to logFile if set,
// secrets are masked in every record.
func setupLog(dbg, noColor bool, logFile io.Writer, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if logFile != nil {
		logOpts = append(logOpts, lgr.Out(io.MultiWriter(os.Stdout, logFile)), lgr.Err(io.MultiWriter(os.Stderr, logFile)))
	}

	color.NoColor = color.NoColor || noColor
	if !color.NoColor && logFile == nil {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var masked []string
	for _, s := range secrets {
		if s != "" {
			masked = append(masked, s)
		}
	}
	if len(masked) > 0 {
		logOpts = append(logOpts, lgr.Secret(masked...))
	}

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
