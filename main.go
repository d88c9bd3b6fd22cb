package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/finance-calculator/config"
	"github.com/example/finance-calculator/modules/archive"
	"github.com/example/finance-calculator/modules/audit"
	"github.com/example/finance-calculator/modules/calculator"
	"github.com/example/finance-calculator/modules/console"
	"github.com/example/finance-calculator/modules/evaluator"
	"github.com/example/finance-calculator/modules/ledger"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("=== Finance Calculator ===")

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	switch cfg.LogLevel {
	case config.LogLevelDebug:
		logLevel = mono.WithLogLevel(mono.LogLevelDebug)
	case config.LogLevelError:
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	jsDir := cfg.ArchiveDir
	if jsDir == "" {
		jsDir = filepath.Join(os.TempDir(), "finance-calculator")
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(jsDir),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	if cfg.ArchiveEnabled() {
		storagePlugin, err := fsjetstream.New(fsjetstream.Config{
			Buckets: []fsjetstream.BucketConfig{
				{
					Name:        archive.BucketName,
					Description: "Exported operation reports",
					MaxBytes:    100 * 1024 * 1024, // 100MB
					Storage:     fsjetstream.FileStorage,
					Compression: true,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create storage plugin: %v", err)
		}
		if err := app.RegisterPlugin(storagePlugin, "storage"); err != nil {
			log.Fatalf("Failed to register storage plugin: %v", err)
		}
	}

	// Order: independent modules first, then modules with dependencies
	// - evaluator: formula table (evaluate service)
	// - ledger: SQLite operation log (append/recent/export services)
	// - audit: event consumer (session tallies)
	// - archive: event consumer (copies reports into JetStream), optional
	// - calculator: command layer (depends on evaluator and ledger, emits events)
	// - console: driving adapter (depends on calculator)
	consoleModule := console.NewModule(os.Stdin, os.Stdout, cfg.Theme, logger)

	app.Register(evaluator.NewModule(cfg.EMITimeUnit, logger))
	app.Register(ledger.NewModule(cfg.DBPath, cfg.DBDebug, logger))
	app.Register(audit.NewModule(logger))
	if cfg.ArchiveEnabled() {
		app.Register(archive.NewModule(logger))
	}
	app.Register(calculator.NewModule(cfg.HistorySize, cfg.ReportPath, logger))
	app.Register(consoleModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Ending the console session (quit or end of input) triggers the same
	// shutdown path as SIGINT/SIGTERM, so app.Stop runs exactly once.
	shutdownCtx, triggerShutdown := shutdownTrigger(consoleModule.Done())
	defer triggerShutdown()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		shutdownCtx,
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// shutdownTrigger returns a context that is cancelled when done closes.
func shutdownTrigger(done <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-done:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Printf("  - Operation log: %s", cfg.DBPath)
	log.Printf("  - Report path: %s", cfg.ReportPath)
	log.Printf("  - EMI period unit: %s", cfg.EMITimeUnit)
	if cfg.ArchiveEnabled() {
		log.Printf("  - Report archive: %s (bucket %q)", cfg.ArchiveDir, archive.BucketName)
	}
	log.Println("")
}
