package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/feed"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/session"
	"main/internal/sink"
	"main/internal/vwap"
	"main/pkg/exception"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("vwap: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "JSON config file")
	feedFlag := flag.String("feed", "", "feed file path (overrides config)")
	outFlag := flag.String("out", "", "output directory or file (overrides config)")
	sinkFlag := flag.String("sink", "", "row sink: csv, jsonl or postgres (overrides config)")
	policyFlag := flag.String("policy", "", "ledger policy: replace or accumulate (overrides config)")
	profileFlag := flag.String("pyroscope", "", "pyroscope server address (enables profiling)")
	flag.Parse()

	cfg, err := ops.Load(*configFlag)
	if err != nil {
		return err
	}
	if err := applyOverrides(&cfg, *feedFlag, *outFlag, *sinkFlag, *policyFlag); err != nil {
		return err
	}
	if cfg.FeedPath == "" {
		return errors.New("missing feed path; use -feed or the config file")
	}

	if *profileFlag != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "itch/vwap",
			ServerAddress:   *profileFlag,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return fmt.Errorf("start pyroscope: %w", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	source, err := feed.OpenFile(cfg.FeedPath, feed.ReaderOptions{MaxRecordSize: cfg.MaxRecordSize})
	if err != nil {
		return err
	}
	defer source.Close()

	rowSink, err := buildSink(cfg)
	if err != nil {
		return err
	}
	defer rowSink.Close()

	metrics := obs.NewMetrics()
	processor := session.NewProcessor(cfg.Session, rowSink, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		select {
		case <-sys.Shutdown():
			cancel()
		case <-done:
		}
	}()

	logs.Infof("processing %s (policy=%s, sink=%s)", cfg.FeedPath, cfg.Session.Policy, cfg.Sink)
	runErr := processor.Run(ctx, source)
	close(done)

	snap := metrics.Snapshot()
	logs.Infof("processed %d records, %d flushes, %d rows", snap.Records, snap.Flushes, snap.Rows)

	if runErr != nil {
		if errors.Is(runErr, exception.ErrFeedTruncated) {
			logs.Warnf("feed ended before the session close marker; partial window flushed")
			return nil
		}
		return runErr
	}
	return nil
}

func applyOverrides(cfg *ops.Loaded, feedPath, out, sinkName, policy string) error {
	if feedPath != "" {
		cfg.FeedPath = feedPath
	}
	if sinkName != "" {
		switch kind := ops.SinkKind(sinkName); kind {
		case ops.SinkCSV, ops.SinkJSONL, ops.SinkPostgres:
			cfg.Sink = kind
		default:
			return fmt.Errorf("unknown sink: %q", sinkName)
		}
	}
	if out != "" {
		if cfg.Sink == ops.SinkJSONL {
			cfg.OutputPath = out
		} else {
			cfg.OutputDir = out
		}
	}
	if policy != "" {
		parsed, err := vwap.ParsePolicy(policy)
		if err != nil {
			return err
		}
		cfg.Session.Policy = parsed
	}
	return nil
}

func buildSink(cfg ops.Loaded) (sink.Sink, error) {
	switch cfg.Sink {
	case ops.SinkCSV:
		return sink.NewCSV(cfg.OutputDir)
	case ops.SinkJSONL:
		return sink.NewJSONL(cfg.OutputPath)
	case ops.SinkPostgres:
		return sink.NewPostgres(cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown sink: %q", cfg.Sink)
	}
}
