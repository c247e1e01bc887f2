package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	aoc "github.com/nicklasmoeller/adventofcode"
	"github.com/nicklasmoeller/adventofcode/internal/config"
	"github.com/nicklasmoeller/adventofcode/internal/logging"
	"github.com/nicklasmoeller/adventofcode/internal/puzzles"
)

var (
	// Puzzle selection
	year     int
	day      int
	part     int
	file     string
	inputDir string

	configPath string
	verbose    bool
	timeout    time.Duration
	watch      bool

	profile           bool
	profileFile       string
	memoryProfileFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aoccli",
	Short: "Solve Advent of Code puzzles",
	Long: `aoccli solves one registered puzzle and prints one answer per line.

Input is read from --file, else from <input-dir>/<year>/<day>.txt when an
input directory is configured, else from stdin.

Example:
  aoccli --day 16 --file data/2020/16.txt
  aoccli --year 2020 --day 16 --part 2 < input.txt`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv(config.EnvConfigPath)
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSolve,
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Solve every registered puzzle of a year from the input directory",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered puzzles",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&year, "year", "y", 0, "Puzzle year (default from config)")
	pf.StringVar(&inputDir, "input-dir", "", "Directory holding <year>/<day>.txt inputs (default from config)")
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default $"+config.EnvConfigPath+")")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.DurationVar(&timeout, "timeout", time.Minute, "Timeout for solving")
	pf.BoolVar(&profile, "profile", false, "Profile the solver")
	pf.StringVar(&profileFile, "profile-file", "cpu.pprof", "The file to write the CPU profile to")
	pf.StringVar(&memoryProfileFile, "memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	f := rootCmd.Flags()
	f.IntVarP(&day, "day", "d", 0, "Puzzle day")
	f.IntVarP(&part, "part", "p", 0, "Part to solve: 1, 2, or 0 for both")
	f.StringVarP(&file, "file", "f", "", "Input file")
	f.BoolVarP(&watch, "watch", "w", false, "Solve again whenever the input file changes")

	rootCmd.AddCommand(allCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRegistry() (*aoc.Registry, error) {
	return puzzles.Default(puzzles.Options{
		TicketMarker: cfg.Puzzles.TicketMarker,
		Logger:       logger,
	})
}

func selectedYear() int {
	if year != 0 {
		return year
	}
	return cfg.Year
}

func selectedInputDir() string {
	if inputDir != "" {
		return inputDir
	}
	return cfg.InputDir
}
