package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	aoc "github.com/nicklasmoeller/adventofcode"
	"github.com/nicklasmoeller/adventofcode/internal/inputs"
)

const watchDebounce = 200 * time.Millisecond

func runSolve(cmd *cobra.Command, args []string) error {
	if day == 0 {
		return errors.New("--day is required")
	}
	parts, err := aoc.ParsePart(part)
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	y := selectedYear()
	p, err := reg.Lookup(y, day)
	if err != nil {
		return err
	}

	src := solveSource(cmd, y)
	runner := aoc.CreateRunner(p, aoc.RunnerParams{Parts: parts, Logger: logger})

	stop, err := startProfile()
	if err != nil {
		return err
	}
	defer stop()

	solve := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		input, err := src.Load(ctx, y, day)
		if err != nil {
			return err
		}
		for answer, err := range runner.Answers(ctx, input) {
			if err != nil {
				return err
			}
			logger.Debug("answer", zap.String("answer", answer.DebugString()))
			fmt.Fprintln(cmd.OutOrStdout(), answer.Repr())
		}
		return nil
	}

	if !watch {
		return solve(cmd.Context())
	}

	path := src.Path(y, day)
	if path == "" {
		return errors.New("--watch needs an input file")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report := func() {
		if err := solve(ctx); err != nil {
			logger.Error("solve failed", zap.Error(err))
		}
	}
	report()
	logger.Info("watching input", zap.String("path", path))
	return inputs.Watch(ctx, path, watchDebounce, report)
}

// solveSource picks the input for a single puzzle. The configured input
// directory is only used when it holds the day's file, so piping to stdin
// keeps working with the default config.
func solveSource(cmd *cobra.Command, y int) inputs.Source {
	src := inputs.Source{File: file, Stdin: cmd.InOrStdin()}
	if file != "" {
		return src
	}

	dir := selectedInputDir()
	if inputDir != "" {
		src.Dir = dir
	} else if _, err := os.Stat(inputs.DayPath(dir, y, day)); err == nil {
		src.Dir = dir
	}
	return src
}

func runAll(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	stop, err := startProfile()
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	src := inputs.Source{Dir: selectedInputDir()}
	answers, err := aoc.RunAll(ctx, reg, selectedYear(), src.Load, aoc.RunnerParams{
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	for _, a := range answers {
		fmt.Fprintf(cmd.OutOrStdout(), "%d day %02d part %d: %s\n", a.Year, a.Day, int(a.Part), a.Repr())
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	for _, p := range reg.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d day %02d: %s\n", p.Year, p.Day, p.Title)
	}
	return nil
}

// startProfile starts CPU profiling when --profile is set. The returned func
// stops it and writes the heap profile.
func startProfile() (func(), error) {
	if !profile {
		return func() {}, nil
	}

	f, err := os.Create(profileFile)
	if err != nil {
		return nil, fmt.Errorf("create profile file: %w", err)
	}
	mf, err := os.Create(memoryProfileFile)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create memory profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		mf.Close()
		return nil, fmt.Errorf("start CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			logger.Warn("write heap profile", zap.Error(err))
		}
		mf.Close()
	}, nil
}
