// Package inputs locates and reads puzzle input text.
package inputs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNoInput is returned when a Source has nowhere to read from.
var ErrNoInput = errors.New("no input source")

// Source says where puzzle input comes from. The first non-empty field wins:
// File, then Dir, then Stdin.
type Source struct {
	// File is read as is, whatever the year and day.
	File string
	// Dir holds inputs laid out as <Dir>/<year>/<day>.txt, day zero padded.
	Dir   string
	Stdin io.Reader
}

// Path returns the file Load reads for year and day, or "" when input
// comes from Stdin.
func (s Source) Path(year, day int) string {
	switch {
	case s.File != "":
		return s.File
	case s.Dir != "":
		return DayPath(s.Dir, year, day)
	}
	return ""
}

// Load reads the input for year and day.
func (s Source) Load(ctx context.Context, year, day int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if path := s.Path(year, day); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read input for %d day %d: %w", year, day, err)
		}
		return string(data), nil
	}

	if s.Stdin == nil {
		return "", ErrNoInput
	}
	data, err := io.ReadAll(s.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// DayPath is the conventional location of an input under dir.
func DayPath(dir string, year, day int) string {
	return filepath.Join(dir, strconv.Itoa(year), fmt.Sprintf("%02d.txt", day))
}
