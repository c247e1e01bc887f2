package aoc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func upper(ctx context.Context, input string) (string, error) {
	return strings.ToUpper(input), nil
}

func length(ctx context.Context, input string) (string, error) {
	return fmt.Sprint(len(input)), nil
}

var errBroken = errors.New("broken")

func broken(ctx context.Context, input string) (string, error) {
	return "", errBroken
}

func TestRunner_Answers(t *testing.T) {
	p := Puzzle{Year: 2020, Day: 16, PartOne: upper, PartTwo: length}

	tests := []struct {
		name  string
		parts []Part
		want  []string
	}{
		{"both by default", nil, []string{"ABC", "3"}},
		{"part one", []Part{PartOne}, []string{"ABC"}},
		{"part two", []Part{PartTwo}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for answer, err := range CreateRunner(p, RunnerParams{Parts: tt.parts}).Answers(t.Context(), "abc") {
				require.NoError(t, err)
				assert.Equal(t, 2020, answer.Year)
				assert.Equal(t, 16, answer.Day)
				got = append(got, answer.Repr())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_AnswersStopsAtFirstError(t *testing.T) {
	p := Puzzle{Year: 2020, Day: 16, PartOne: broken, PartTwo: upper}

	count := 0
	var gotErr error
	for _, err := range CreateRunner(p, RunnerParams{}).Answers(t.Context(), "abc") {
		count++
		gotErr = err
	}

	assert.Equal(t, 1, count)
	assert.ErrorIs(t, gotErr, errBroken)
	assert.Contains(t, gotErr.Error(), "2020 day 16 part 1")
}

func TestRunner_AnswersHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	p := Puzzle{Year: 2020, Day: 16, PartOne: upper, PartTwo: upper}
	for _, err := range CreateRunner(p, RunnerParams{}).Answers(ctx, "abc") {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRunAll(t *testing.T) {
	reg := NewRegistry()
	for day := 1; day <= 5; day++ {
		require.NoError(t, reg.Register(Puzzle{Year: 2020, Day: day, PartOne: upper, PartTwo: length}))
	}
	require.NoError(t, reg.Register(Puzzle{Year: 2022, Day: 1, PartOne: broken, PartTwo: broken}))

	var loads atomic.Int32
	load := func(ctx context.Context, year, day int) (string, error) {
		loads.Add(1)
		return strings.Repeat("x", day), nil
	}

	answers, err := RunAll(t.Context(), reg, 2020, load, RunnerParams{Parallelism: 2})
	require.NoError(t, err)
	require.Len(t, answers, 10)
	assert.Equal(t, int32(5), loads.Load())

	for i, answer := range answers {
		day := i/2 + 1
		assert.Equal(t, day, answer.Day)
		if i%2 == 0 {
			assert.Equal(t, PartOne, answer.Part)
			assert.Equal(t, strings.Repeat("X", day), answer.Value)
		} else {
			assert.Equal(t, PartTwo, answer.Part)
			assert.Equal(t, fmt.Sprint(day), answer.Value)
		}
	}
}

func TestRunAll_Errors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Puzzle{Year: 2022, Day: 1, PartOne: broken, PartTwo: broken}))
	require.NoError(t, reg.Register(Puzzle{Year: 2022, Day: 2, PartOne: upper, PartTwo: upper}))

	load := func(ctx context.Context, year, day int) (string, error) {
		return "in", nil
	}

	_, err := RunAll(t.Context(), reg, 2022, load, RunnerParams{Parallelism: 4})
	assert.ErrorIs(t, err, errBroken)

	_, err = RunAll(t.Context(), reg, 1999, load, RunnerParams{})
	assert.ErrorIs(t, err, ErrNotImplemented)

	errMissing := errors.New("missing input")
	_, err = RunAll(t.Context(), reg, 2022, func(ctx context.Context, year, day int) (string, error) {
		return "", errMissing
	}, RunnerParams{})
	assert.ErrorIs(t, err, errMissing)
}

func BenchmarkRunAll(b *testing.B) {
	b.ReportAllocs()

	for _, tc := range []struct {
		name        string
		days        int
		parallelism int
	}{
		{name: "serial", days: 25, parallelism: 1},
		{name: "parallel", days: 25, parallelism: 8},
	} {
		b.Run(tc.name, func(b *testing.B) {
			reg := NewRegistry()
			for day := 1; day <= tc.days; day++ {
				if err := reg.Register(Puzzle{Year: 2020, Day: day, PartOne: upper, PartTwo: length}); err != nil {
					b.Fatal(err)
				}
			}
			load := func(ctx context.Context, year, day int) (string, error) {
				return "puzzle input", nil
			}

			for b.Loop() {
				answers, err := RunAll(b.Context(), reg, 2020, load, RunnerParams{Parallelism: tc.parallelism})
				if err != nil {
					b.Fatal(err)
				}
				b.ReportMetric(float64(len(answers)), "answers")
			}
		})
	}
}
