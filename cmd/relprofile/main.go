package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/relprofile/internal/config"
	domainErrors "github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
	domainRun "github.com/leengari/relprofile/internal/domain/run"
	"github.com/leengari/relprofile/internal/infrastructure/logging"
	"github.com/leengari/relprofile/internal/metrics"
	"github.com/leengari/relprofile/internal/profiling"
	"github.com/leengari/relprofile/internal/profiling/structures"
	"github.com/leengari/relprofile/internal/storage/loader"
	"github.com/leengari/relprofile/internal/storage/postgres"
	"github.com/leengari/relprofile/internal/storage/writer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "relprofile: %v\n", err)
		if errors.Is(err, domainErrors.ErrInvalidInput) || errors.Is(err, domainErrors.ErrNotSupported) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("relprofile", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (environment only when empty)")
	kind := fs.String("source", "", "Override source.kind (json, database, csv, postgres)")
	format := fs.String("format", "", "Override output.format (text, json, yaml)")
	out := fs.String("out", "", "Override output.path")
	workers := fs.Int("workers", 0, "Override profile.workers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// Flags and positional paths win over file and environment
	if *kind != "" {
		cfg.Source.Kind = *kind
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *workers > 0 {
		cfg.Profile.Workers = *workers
	}
	if fs.NArg() > 0 {
		if cfg.Source.Kind == config.SourcePostgres {
			cfg.Source.Tables = fs.Args()
		} else {
			cfg.Source.Paths = fs.Args()
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeFn := logging.SetupLogger(cfg.Log)
	defer closeFn()
	slog.SetDefault(logger)

	start := time.Now()
	runID := uuid.NewString()
	logger.Info("starting relprofile",
		slog.String("run_id", runID),
		slog.String("source", cfg.Source.Kind),
		slog.Int("workers", cfg.Profile.Workers),
	)

	relations, err := loadRelations(ctx, cfg, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	lifecycle := profiling.NewLoggingObserver(logger)

	var (
		uccs    []structures.UCC
		inds    []structures.IND
		skipped []string
	)

	if cfg.Profile.SkipUCC {
		skipped = append(skipped, string(domainRun.KindUCC))
	} else {
		p := profiling.NewUCCProfiler(profiling.WithWorkers(cfg.Profile.Workers))
		p.AddObserver(lifecycle)
		p.AddObserver(m)
		for _, rel := range relations {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := p.Profile(rel)
			if err != nil {
				return fmt.Errorf("ucc discovery on %s failed: %w", rel.Name, err)
			}
			uccs = append(uccs, found...)
		}
	}

	if cfg.Profile.SkipIND {
		skipped = append(skipped, string(domainRun.KindIND))
	} else {
		p := profiling.NewINDProfiler()
		p.AddObserver(lifecycle)
		p.AddObserver(m)
		inds, err = p.Profile(relations, cfg.Profile.IncludeNary)
		if err != nil {
			return fmt.Errorf("ind discovery failed: %w", err)
		}
	}

	report := writer.NewReport(runID, relations, uccs, inds, time.Since(start))
	report.Skipped = skipped
	if err := writer.WriteReport(report, cfg.Output.Format, cfg.Output.Path, stdout); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Output.MetricsPath != "" {
		if err := m.WriteTextfile(cfg.Output.MetricsPath); err != nil {
			return err
		}
	}

	logger.Info("relprofile finished",
		slog.String("run_id", runID),
		slog.Int("relations", len(relations)),
		slog.Int("uccs", len(uccs)),
		slog.Int("inds", len(inds)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

// loadRelations reads every configured source in order
func loadRelations(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*relation.Relation, error) {
	var relations []*relation.Relation

	switch cfg.Source.Kind {
	case config.SourcePostgres:
		pg, err := postgres.Connect(ctx, cfg.Source.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		return pg.LoadTables(ctx, cfg.Source.Tables)

	case config.SourceJSON:
		for _, path := range cfg.Source.Paths {
			rel, err := loader.LoadTable(path, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to load table %s: %w", path, err)
			}
			relations = append(relations, rel)
		}

	case config.SourceDatabase:
		for _, path := range cfg.Source.Paths {
			db, err := loader.LoadDatabase(path, logger)
			if err != nil {
				return nil, err
			}
			relations = append(relations, db.Relations...)
		}

	case config.SourceCSV:
		opts := loader.CSVOptions{
			NullToken:  cfg.Source.CSVNullToken,
			Headerless: cfg.Source.CSVHeaderless,
		}
		for _, path := range cfg.Source.Paths {
			rel, err := loader.LoadCSV(path, opts, logger)
			if err != nil {
				return nil, err
			}
			relations = append(relations, rel)
		}

	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	if len(relations) == 0 {
		return nil, fmt.Errorf("no relations loaded from source %q: set source.paths", cfg.Source.Kind)
	}
	return relations, nil
}
