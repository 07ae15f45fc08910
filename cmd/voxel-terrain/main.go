package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/intake"
	"voxel-terrain/internal/journal"
	"voxel-terrain/internal/logging"
	"voxel-terrain/internal/noise"
	"voxel-terrain/internal/orchestrator"
	"voxel-terrain/internal/preset"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "voxel-terrain:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML settings file (default: ./voxel-terrain.yaml if present)")
	presetPath := flag.String("preset", "", "YAML preset applied over the configured start state")
	headless := flag.Bool("headless", false, "run the intake and pipeline without opening a window")
	resetJournal := flag.Bool("reset-journal", false, "clear the update journal before starting")
	savePreset := flag.String("save-preset", "", "write the final state as a YAML preset to this path on exit")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}
	config.SetFPSLimit(settings.FPSLimit)
	config.SetWireframe(settings.Wireframe)

	initial, err := settings.State()
	if err != nil {
		return err
	}
	if *presetPath != "" {
		p, err := preset.Load(*presetPath, initial)
		if err != nil {
			return fmt.Errorf("load preset: %w", err)
		}
		initial = p.State
		log.Info().Str("path", *presetPath).Str("name", p.Name).Msg("preset loaded")
	}

	var jrnl *journal.Journal
	if settings.Journal.Path != "" {
		jrnl, err = journal.Open(settings.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer jrnl.Close()
		if *resetJournal {
			if err := jrnl.Truncate(context.Background()); err != nil {
				return fmt.Errorf("reset journal: %w", err)
			}
			log.Info().Str("path", settings.Journal.Path).Msg("journal cleared")
		}
		if settings.Journal.Replay && *presetPath == "" {
			restored, n, err := jrnl.Restore(context.Background(), initial)
			if err != nil {
				return fmt.Errorf("replay journal: %w", err)
			}
			initial = restored
			log.Info().Int("updates", n).Msg("journal replayed")
		}
	}

	sampler, err := noise.New(settings.Noise)
	if err != nil {
		return err
	}
	previewSampler, _ := noise.New(settings.Noise)

	queue := orchestrator.NewQueue(settings.QueueCapacity)
	defer queue.Close()

	opts := orchestrator.Options{Sampler: sampler, Logger: &log}
	if jrnl != nil {
		opts.Journal = jrnl
	}
	orch := orchestrator.New(queue, initial, opts)
	log.Info().
		Str("noise", settings.Noise).
		Int("triangles", orch.Mesh().TriangleCount()).
		Msg("initial terrain built")

	srv, err := intake.NewServer(queue, orch, intake.Options{Sampler: previewSampler, Logger: &log})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe(ctx, settings.Server.Addr)
		if err != nil {
			log.Error().Err(err).Msg("intake stopped")
			stop()
		}
		serveErr <- err
	}()

	if *headless {
		err = runHeadless(ctx, orch, log)
	} else {
		err = runViewer(ctx, settings, orch, log)
	}
	stop()
	if serr := <-serveErr; serr != nil && err == nil {
		err = fmt.Errorf("intake: %w", serr)
	}
	if *savePreset != "" {
		if serr := preset.Save(*savePreset, preset.Preset{State: orch.Published()}); serr != nil {
			log.Error().Err(serr).Str("path", *savePreset).Msg("failed to save preset")
		} else {
			log.Info().Str("path", *savePreset).Msg("preset saved")
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runHeadless drives Frame at the configured rate without a window, so the
// intake, journal and previews work on machines without a display.
func runHeadless(ctx context.Context, orch *orchestrator.Orchestrator, log zerolog.Logger) error {
	log.Info().Msg("running headless")
	limiter := NewFPSLimiter(func() int {
		if fps := config.GetFPSLimit(); fps > 0 {
			return fps
		}
		return headlessFallbackFPS
	})
	for ctx.Err() == nil {
		orch.Frame()
		limiter.Wait()
	}
	return nil
}
