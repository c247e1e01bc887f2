package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nicklasmoeller/adventofcode/internal/config"
)

const departureExample = `departure_class: 0-1 or 4-19
row: 0-5 or 8-19
departure_seat: 0-13 or 16-19

your ticket:
11,12,13

nearby tickets:
3,9,18
15,1,5
5,14,9`

type fakeStore map[string]string

func (f fakeStore) Input(ctx context.Context, scope string, year, day int) (string, error) {
	input, ok := f[scope]
	if !ok {
		return "", errNoInput
	}
	return input, nil
}

func newTestSolver(t *testing.T) *solver {
	t.Helper()
	s, err := newSolver(config.DefaultConfig(), zap.NewNop(), fakeStore{"alice": departureExample})
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s *solver, body string) (*httptest.ResponseRecorder, SolveResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	s.solve(w, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body)))

	var resp SolveResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name string
		req  SolveRequest
		want []string
	}{
		{"inline both parts", SolveRequest{Year: 2020, Day: 16, Input: departureExample}, []string{"0", "156"}},
		{"default year", SolveRequest{Day: 16, Part: 2, Input: departureExample}, []string{"156"}},
		{"stored input", SolveRequest{Year: 2020, Day: 16, Part: 2, InputScope: "alice"}, []string{"156"}},
		{"template", SolveRequest{Year: 42, Day: 42, Part: 1, Input: "echo"}, []string{"echo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.req)
			require.NoError(t, err)

			w, resp := post(t, newTestSolver(t), string(body))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.True(t, resp.Success, resp.Error)
			assert.Equal(t, tt.want, resp.Answers)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestSolve_Failures(t *testing.T) {
	tests := []struct {
		name    string
		req     SolveRequest
		wantErr string
	}{
		{"day out of range", SolveRequest{Year: 2020, Day: 26, Input: "x"}, "between 1 and 25"},
		{"unregistered day", SolveRequest{Year: 2020, Day: 3, Input: "x"}, "not implemented"},
		{"bad part", SolveRequest{Year: 2020, Day: 16, Part: 3, Input: "x"}, "part"},
		{"no input", SolveRequest{Year: 2020, Day: 16}, "input or inputScope is required"},
		{"unknown scope", SolveRequest{Year: 2020, Day: 16, InputScope: "bob"}, "no stored input"},
		{"parse error", SolveRequest{Year: 2020, Day: 16, Input: "class 1-3"}, "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.req)
			require.NoError(t, err)

			_, resp := post(t, newTestSolver(t), string(body))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestSolve_BadRequests(t *testing.T) {
	s := newTestSolver(t)

	w, resp := post(t, s, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "Invalid JSON")

	w = httptest.NewRecorder()
	s.solve(w, httptest.NewRequest(http.MethodGet, "/solve", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	s.solve(w, httptest.NewRequest(http.MethodOptions, "/solve", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestBigQueryStore_NoTable(t *testing.T) {
	_, err := bigQueryStore{}.Input(t.Context(), "alice", 2020, 16)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errNoInput))
}

func TestSolveTimeout(t *testing.T) {
	assert.Equal(t, time.Minute, solveTimeout(t.Context(), time.Minute))

	ctx, cancel := context.WithTimeout(t.Context(), time.Hour)
	defer cancel()
	got := solveTimeout(ctx, time.Minute)
	assert.Greater(t, got, 50*time.Minute)
	assert.LessOrEqual(t, got, time.Hour-deadlineMargin)

	// Too close to the deadline for the margin: use what is left.
	ctx, cancel = context.WithTimeout(t.Context(), 3*time.Second)
	defer cancel()
	got = solveTimeout(ctx, time.Minute)
	assert.Greater(t, got, time.Duration(0))
	assert.LessOrEqual(t, got, 3*time.Second)
}

func TestSolve_ShortDeadline(t *testing.T) {
	body, err := json.Marshal(SolveRequest{Year: 2020, Day: 16, Part: 2, Input: departureExample})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	w := httptest.NewRecorder()
	newTestSolver(t).solve(w, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(string(body))).WithContext(ctx))

	var resp SolveResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success, resp.Error)
	assert.Equal(t, []string{"156"}, resp.Answers)
}
