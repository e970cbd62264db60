package history

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/longkey1/askgpt/internal/askgpt"
	"go.uber.org/zap"
)

// FileStore reads and rewrites the history log at Path.
type FileStore struct {
	Path   string
	Logger *zap.Logger
}

// NewFileStore creates a store for the log at path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{Path: path, Logger: logger}
}

// Load returns every parseable entry of the log, oldest first.
// A missing file is an empty history. Lines that fail to parse are skipped.
func (s *FileStore) Load() ([]askgpt.HistoricMessage, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []askgpt.HistoricMessage
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var entry askgpt.HistoricMessage
		if err := json.Unmarshal(raw, &entry); err != nil {
			s.Logger.Debug("skipping unparseable history line",
				zap.String("path", s.Path),
				zap.Int("line", line),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan history file: %w", err)
	}

	s.Logger.Debug("loaded history", zap.String("path", s.Path), zap.Int("entries", len(entries)))
	return entries, nil
}

// Save overwrites the log with entries, one JSON object per line.
func (s *FileStore) Save(entries []askgpt.HistoricMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		// Encode terminates each record with a newline
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("failed to serialize history entry: %w", err)
		}
	}

	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	s.Logger.Debug("saved history", zap.String("path", s.Path), zap.Int("entries", len(entries)))
	return nil
}
