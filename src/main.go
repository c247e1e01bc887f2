package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	aoc "github.com/nicklasmoeller/adventofcode"
	"github.com/nicklasmoeller/adventofcode/internal/config"
	"github.com/nicklasmoeller/adventofcode/internal/logging"
	"github.com/nicklasmoeller/adventofcode/internal/puzzles"
)

type SolveRequest struct {
	Year       int    `json:"year"`
	Day        int    `json:"day"`
	Part       int    `json:"part"`
	Input      string `json:"input"`
	InputScope string `json:"inputScope"`
}

type SolveResponse struct {
	Success   bool     `json:"success"`
	Answers   []string `json:"answers"`
	Error     string   `json:"error,omitempty"`
	RequestID string   `json:"requestId"`
}

// errNoInput is returned when a scope has no stored input for a puzzle.
var errNoInput = errors.New("no stored input")

// InputStore looks up stored puzzle input by scope, year and day.
type InputStore interface {
	Input(ctx context.Context, scope string, year, day int) (string, error)
}

type bigQueryStore struct {
	projectID string
	location  string
	table     string
}

func (s bigQueryStore) Input(ctx context.Context, scope string, year, day int) (string, error) {
	if s.table == "" {
		return "", errors.New("no input table configured")
	}

	client, err := bigquery.NewClient(ctx, s.projectID)
	if err != nil {
		return "", fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT input FROM `%s` WHERE scope = @scope AND year = @year AND day = @day LIMIT 1", s.table))
	q.Location = s.location
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: scope},
		{Name: "year", Value: year},
		{Name: "day", Value: day},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return "", fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return "", fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("job.Read: %w", err)
	}

	var row []bigquery.Value
	err = it.Next(&row)
	if err == iterator.Done {
		return "", fmt.Errorf("%w for %q %d day %d", errNoInput, scope, year, day)
	}
	if err != nil {
		return "", fmt.Errorf("it.Next: %w", err)
	}
	input, ok := row[0].(string)
	if !ok {
		return "", fmt.Errorf("row[0] is not a string: %v", row[0])
	}
	return input, nil
}

type solver struct {
	reg            *aoc.Registry
	store          InputStore
	logger         *zap.Logger
	defaultYear    int
	defaultTimeout time.Duration
}

func (s *solver) execute(ctx context.Context, req SolveRequest) ([]string, error) {
	if req.Year == 0 {
		req.Year = s.defaultYear
	}
	p, err := s.reg.Lookup(req.Year, req.Day)
	if err != nil {
		if req.Day < 1 || req.Day > 25 {
			return nil, fmt.Errorf("day must be between 1 and 25")
		}
		return nil, err
	}
	parts, err := aoc.ParsePart(req.Part)
	if err != nil {
		return nil, err
	}

	input := req.Input
	if input == "" {
		if req.InputScope == "" {
			return nil, fmt.Errorf("input or inputScope is required")
		}
		if input, err = s.store.Input(ctx, req.InputScope, req.Year, req.Day); err != nil {
			return nil, fmt.Errorf("getInput: %w", err)
		}
		s.logger.Info("loaded input", zap.String("scope", req.InputScope), zap.Int("bytes", len(input)))
	}

	timeout := solveTimeout(ctx, s.defaultTimeout)
	s.logger.Debug("setting timeout", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var answers []string
	for answer, err := range aoc.CreateRunner(p, aoc.RunnerParams{Parts: parts, Logger: s.logger}).Answers(ctx, input) {
		if err != nil {
			return answers, err
		}
		answers = append(answers, answer.Repr())
	}
	return answers, nil
}

// deadlineMargin is kept free before the request deadline to write the
// response.
const deadlineMargin = 5 * time.Second

// solveTimeout leaves deadlineMargin before the request deadline. A deadline
// less than twice the margin away gets all of the remaining time.
func solveTimeout(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	remaining := time.Until(deadline)
	if remaining > 2*deadlineMargin {
		return remaining - deadlineMargin
	}
	return remaining
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *solver) solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("requestId", requestID))

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(SolveResponse{
			Error:     fmt.Sprintf("Method %s not allowed", r.Method),
			RequestID: requestID,
		})
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{
			Error:     fmt.Sprintf("Invalid JSON: %v", err),
			RequestID: requestID,
		})
		return
	}

	answers, err := s.execute(r.Context(), req)

	response := SolveResponse{
		Success:   err == nil,
		Answers:   answers,
		RequestID: requestID,
	}
	if err != nil {
		logger.Info("solve failed", zap.Int("year", req.Year), zap.Int("day", req.Day), zap.Error(err))
		response.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("error marshaling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func newSolver(cfg *config.Config, logger *zap.Logger, store InputStore) (*solver, error) {
	reg, err := puzzles.Default(puzzles.Options{
		TicketMarker: cfg.Puzzles.TicketMarker,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	return &solver{
		reg:            reg,
		store:          store,
		logger:         logger,
		defaultYear:    cfg.Year,
		defaultTimeout: cfg.GetTimeout(),
	}, nil
}

func main() {
	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	logger, err := logging.New(cfg.Logging, false)
	if err != nil {
		log.Fatalf("logging.New: %v\n", err)
	}
	defer logger.Sync()

	s, err := newSolver(cfg, logger, bigQueryStore{
		projectID: cfg.Cloud.ProjectID,
		location:  cfg.Cloud.Location,
		table:     cfg.Cloud.InputTable,
	})
	if err != nil {
		logger.Fatal("newSolver", zap.Error(err))
	}

	funcframework.RegisterHTTPFunction("/solve", s.solve)

	hostname := ""
	if cfg.Cloud.LocalOnly {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, cfg.Cloud.Port); err != nil {
		logger.Fatal("funcframework.StartHostPort", zap.Error(err))
	}
}
