// Package file provides a filesystem log store. Each interaction
// transcript is one JSON file whose name encodes the agent, the time
// of the final message and a random suffix, so concurrent writers
// never collide and files sort chronologically.
package file

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.LogStore = (*Store)(nil)

// DefaultDir is the default log directory, relative to the working
// directory. Overridable via the DOCENT_LOGS_DIR environment variable.
const DefaultDir = "logs"

// EnvDir names the environment variable overriding the log directory.
const EnvDir = "DOCENT_LOGS_DIR"

// DefaultEvalDir is the default evaluation data directory, holding the
// curated transcripts the evaluation pipeline reads. Kept separate from
// the live log directory so evaluation runs against a stable set.
const DefaultEvalDir = "evaluation_data"

// EnvEvalDir names the environment variable overriding the evaluation
// data directory.
const EnvEvalDir = "DOCENT_EVAL_DIR"

const timestampLayout = "20060102_150405"

// Store writes and reads transcript files under one directory.
type Store struct {
	dir string
}

// NewStore creates a log store rooted at dir. An empty dir falls back
// to the DOCENT_LOGS_DIR environment variable, then to "logs".
func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// NewEvalStore creates a store over the evaluation data set. An empty
// dir falls back to the DOCENT_EVAL_DIR environment variable, then to
// "evaluation_data".
func NewEvalStore(dir string) *Store {
	if dir == "" {
		dir = os.Getenv(EnvEvalDir)
	}
	if dir == "" {
		dir = DefaultEvalDir
	}
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Write stores a record under a generated name and returns that name.
// The record is written to a temporary file first and renamed into
// place, so readers never observe a partial file.
func (s *Store) Write(_ context.Context, rec *domain.LogRecord) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	name, err := s.fileName(rec)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal log record: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write log record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename log record: %w", err)
	}
	return name, nil
}

// List returns the base names of all stored records, sorted.
func (s *Store) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one record by base name and sets its LogFile field.
func (s *Store) Load(_ context.Context, name string) (*domain.LogRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var rec domain.LogRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	rec.LogFile = name
	return &rec, nil
}

// fileName builds "{agent}_{timestamp}_{hex}.json". The timestamp is
// taken from the record's last message; records whose final message
// carries no timestamp use the current time.
func (s *Store) fileName(rec *domain.LogRecord) (string, error) {
	ts := time.Now().UTC()
	if n := len(rec.Messages); n > 0 && rec.Messages[n-1].Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, rec.Messages[n-1].Timestamp)
		if err == nil {
			ts = parsed.UTC()
		}
	}

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate file suffix: %w", err)
	}

	return fmt.Sprintf("%s_%s_%s.json",
		rec.AgentName, ts.Format(timestampLayout), hex.EncodeToString(suffix)), nil
}
