// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_cli is the single entrypoint behind every cmd/ binary.
// The Dispatcher's Worker spawns the Recorder and the Report Builder by
// re-execing os.Args[0] with a subcommand name, so whichever binary name
// is invoked must answer to every subcommand, not just the one its cmd/
// directory is named after.
package internal_cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	internal_dispatcher "github.com/rapidaai/meetingbot/internal/dispatcher"
	internal_httpapi "github.com/rapidaai/meetingbot/internal/httpapi"
	internal_ipc "github.com/rapidaai/meetingbot/internal/ipc"
	internal_persistence "github.com/rapidaai/meetingbot/internal/persistence"
	internal_platform "github.com/rapidaai/meetingbot/internal/platform"
	internal_recorder "github.com/rapidaai/meetingbot/internal/recorder"
	internal_report "github.com/rapidaai/meetingbot/internal/report"
	internal_storage "github.com/rapidaai/meetingbot/internal/storage"
	internal_transcription "github.com/rapidaai/meetingbot/internal/transcription"
	internal_worker "github.com/rapidaai/meetingbot/internal/worker"
	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/rapidaai/meetingbot/pkg/configs"
)

// workerMarkers identifies this binary's own subprocesses for the zombie
// sweep, independent of whatever name it was invoked under.
var workerMarkers = []string{"recorder", "report"}

// Main dispatches on the subcommand name (argv[1]) the way a multicall
// binary does; every cmd/*/main.go calls this identically.
func Main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: meetingbot <dispatcher|worker|recorder|report|api> [flags]")
		os.Exit(2)
	}

	subcommand, args := os.Args[1], os.Args[2:]
	cfg, logger, err := loadConfig(subcommand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meetingbot: config error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch subcommand {
	case "dispatcher":
		err = runDispatcher(ctx, cfg, logger)
	case "worker":
		err = runWorkerOnce(ctx, cfg, logger)
	case "recorder":
		err = runRecorder(ctx, cfg, logger, args)
	case "report":
		err = runReport(ctx, cfg, logger, args)
	case "api":
		err = runAPI(cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "meetingbot: unknown subcommand %q\n", subcommand)
		os.Exit(2)
	}

	if err != nil {
		logger.Errorf("meetingbot: %s exited with error: %v", subcommand, err)
		os.Exit(1)
	}
}

func loadConfig(subcommand string) (*configs.AppConfig, commons.Logger, error) {
	v, err := configs.InitConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := configs.GetApplicationConfig(v)
	if err != nil {
		return nil, nil, err
	}
	logger, err := commons.NewApplicationLogger(
		commons.Name("meetingbot-"+subcommand),
		commons.Path(cfg.DataDir),
		commons.Level(cfg.LogLevel),
	)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newIPCStore(cfg *configs.AppConfig) *internal_ipc.Store {
	return internal_ipc.NewStore(cfg.DataDir)
}

// runDispatcher is the long-lived supervisor process: it polls for
// a Job and runs the Worker in-process (no further self-reexec needed for
// the worker stage itself, only for its recorder/report children).
func runDispatcher(ctx context.Context, cfg *configs.AppConfig, logger commons.Logger) error {
	store := newIPCStore(cfg)

	worker := workerRunnerFunc(func(ctx context.Context, job internal_ipc.Job) error {
		w := internal_worker.New(logger, store, internal_worker.Config{
			DataDir:     cfg.DataDir,
			SegmentDir:  cfg.SegmentDir,
			ReportDir:   cfg.ReportDir,
			BinaryPath:  resolveBrowserBinary(),
			DebugPort:   9333,
			UploadURL:   fmt.Sprintf("http://%s:%d/transcribe-webm", cfg.APIHost, cfg.APIPort),
			WelcomeText: "",
		})
		return w.Run(ctx, job)
	})

	d := internal_dispatcher.New(logger, store, worker, cfg.SegmentDir, workerMarkers)
	return d.Run(ctx)
}

type workerRunnerFunc func(ctx context.Context, job internal_ipc.Job) error

func (f workerRunnerFunc) Run(ctx context.Context, job internal_ipc.Job) error { return f(ctx, job) }

// runWorkerOnce runs a single currently-staged Job synchronously, for
// operators driving a Worker by hand without the Dispatcher's poll loop.
func runWorkerOnce(ctx context.Context, cfg *configs.AppConfig, logger commons.Logger) error {
	store := newIPCStore(cfg)
	job, ok := store.LoadJob()
	if !ok {
		return fmt.Errorf("cli: no active job staged in %s", cfg.DataDir)
	}
	w := internal_worker.New(logger, store, internal_worker.Config{
		DataDir:    cfg.DataDir,
		SegmentDir: cfg.SegmentDir,
		ReportDir:  cfg.ReportDir,
		BinaryPath: resolveBrowserBinary(),
		DebugPort:  9333,
		UploadURL:  fmt.Sprintf("http://%s:%d/transcribe-webm", cfg.APIHost, cfg.APIPort),
	})
	return w.Run(ctx, job)
}

// runRecorder is the subprocess target of Worker.spawnRecorder.
func runRecorder(ctx context.Context, cfg *configs.AppConfig, logger commons.Logger, args []string) error {
	fs := flag.NewFlagSet("recorder", flag.ExitOnError)
	platform := fs.String("platform", "", "meeting platform")
	dataDir := fs.String("data-dir", cfg.DataDir, "shared IPC data directory")
	segmentDir := fs.String("segment-dir", cfg.SegmentDir, "ffmpeg segment output directory")
	uploadURL := fs.String("upload-url", "", "this process's /transcribe-webm endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := internal_ipc.NewStore(*dataDir)
	adapter := internal_platform.New(logger, cfg.FFmpegPath)
	rec := internal_recorder.New(logger, adapter, store, *segmentDir, *uploadURL, internal_ipc.Platform(*platform))
	return rec.Run(ctx)
}

// runReport is the subprocess target of Worker.runReportBuilder.
func runReport(ctx context.Context, cfg *configs.AppConfig, logger commons.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	platform := fs.String("platform", "", "meeting platform")
	dataDir := fs.String("data-dir", cfg.DataDir, "shared IPC data directory")
	reportDir := fs.String("report-dir", cfg.ReportDir, "local report/transcript output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := internal_ipc.NewStore(*dataDir)
	job, ok := store.LoadJob()
	if !ok {
		job = internal_ipc.Job{Platform: internal_ipc.Platform(*platform)}
	}

	llm, blobStore, persist := wireReportDependencies(ctx, cfg, logger)
	builder := internal_report.New(logger, store, llm, blobStore, persist, *reportDir)
	result, err := builder.Build(ctx, job)
	if err != nil {
		return err
	}
	logger.Infof("report: built for platform=%s uploaded=%v persisted=%v", job.Platform, result.Uploaded, result.Persisted)
	return nil
}

// wireReportDependencies builds the Report Builder's optional collaborators,
// degrading to nil (local-only output) for whichever ones fail to connect
// rather than aborting report generation entirely.
func wireReportDependencies(ctx context.Context, cfg *configs.AppConfig, logger commons.Logger) (internal_report.LLM, internal_storage.Store, internal_persistence.Store) {
	var llm internal_report.LLM
	if client, err := internal_transcription.NewLLM(ctx, logger, cfg.Gemini.APIKey, cfg.Gemini.Model); err != nil {
		logger.Warnf("report: gemini client unavailable, falling back to stats-only summary: %v", err)
	} else {
		llm = client
	}

	var blobStore internal_storage.Store
	if cfg.AssetStore.Bucket != "" {
		if s, err := internal_storage.NewStore(cfg.AssetStore, logger); err != nil {
			logger.Warnf("report: blob store unavailable, keeping artifacts local only: %v", err)
		} else {
			blobStore = s
		}
	}

	var persist internal_persistence.Store
	if db, err := internal_persistence.Open(cfg.Postgres); err != nil {
		logger.Warnf("report: database unavailable, skipping persistence: %v", err)
	} else {
		persist = internal_persistence.NewStore(db, logger)
	}

	return llm, blobStore, persist
}

// runAPI serves the bot-control HTTP surface.
func runAPI(cfg *configs.AppConfig, logger commons.Logger) error {
	store := newIPCStore(cfg)
	llmClient, err := internal_transcription.NewLLM(context.Background(), logger, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("cli: failed to construct gemini client: %w", err)
	}
	transcriber := internal_transcription.NewService(logger, store, llmClient)
	handler := internal_httpapi.NewHandler(logger, store, transcriber, "")
	engine := internal_httpapi.NewEngine(cfg, logger, handler)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	logger.Infof("api: listening on %s", addr)
	return engine.Run(addr)
}

// resolveBrowserBinary mirrors the env-override-then-PATH resolution the
// platform Adapter uses for ffmpeg, applied to the Chromium/Chrome binary.
func resolveBrowserBinary() string {
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path
	}
	return "chromium"
}
