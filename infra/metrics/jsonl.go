package metrics

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kilianp07/patterns/core/factory"
	coremetrics "github.com/kilianp07/patterns/core/metrics"
)

// JSONLConfig configures the rotating execution journal.
type JSONLConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// JournalEntry is one line of the execution journal.
type JournalEntry struct {
	Kind       string    `json:"kind"` // "execution" or "lookup"
	Time       time.Time `json:"time"`
	RunID      string    `json:"run_id,omitempty"`
	Executor   string    `json:"executor"`
	Type       string    `json:"type,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	ExitCode   int       `json:"exit_code"`
	DurationMS float64   `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
	Found      *bool     `json:"found,omitempty"`
}

// JSONLSink appends records to a JSONL file with automatic rotation.
type JSONLSink struct {
	mu     sync.Mutex
	logger *lumberjack.Logger
	enc    *json.Encoder
	now    func() time.Time
}

// NewJSONLSink decodes conf and opens the journal.
func NewJSONLSink(conf map[string]any) (*JSONLSink, error) {
	var cfg JSONLConfig
	if err := factory.Decode(conf, &cfg); err != nil {
		return nil, err
	}
	return NewJSONLSinkWithConfig(cfg)
}

// NewJSONLSinkWithConfig creates a sink with rotation options in megabytes and days.
func NewJSONLSinkWithConfig(cfg JSONLConfig) (*JSONLSink, error) {
	if cfg.Path == "" {
		return nil, errors.New("jsonl sink: path is required")
	}
	// ensure directory exists
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return &JSONLSink{logger: lj, enc: json.NewEncoder(lj), now: time.Now}, nil
}

func (s *JSONLSink) RecordExecution(rec coremetrics.ExecutionRecord) error {
	e := JournalEntry{
		Kind:       "execution",
		Time:       rec.Time,
		RunID:      rec.RunID,
		Executor:   rec.Executor,
		Type:       rec.Type,
		Outcome:    rec.Outcome(),
		ExitCode:   rec.ExitCode,
		DurationMS: float64(rec.Duration) / float64(time.Millisecond),
	}
	if rec.Err != nil {
		e.Error = rec.Err.Error()
	}
	return s.append(e)
}

func (s *JSONLSink) RecordLookup(rec coremetrics.LookupRecord) error {
	found := rec.Found
	return s.append(JournalEntry{Kind: "lookup", Time: s.now(), Executor: rec.Name, Found: &found})
}

func (s *JSONLSink) append(e JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(e)
}

// Close closes the underlying writer.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger.Close()
}

// backupTimeFormat is the timestamp lumberjack inserts in backup names:
// <stem>-<timestamp><ext>.
const backupTimeFormat = "2006-01-02T15-04-05.000"

// ReadJournal reads the journal at path and its rotated backups, returning
// entries oldest first. Lines that fail to decode are skipped.
func ReadJournal(path string) ([]JournalEntry, error) {
	files, err := journalFiles(path)
	if err != nil {
		return nil, err
	}
	var res []JournalEntry
	for _, f := range files {
		entries, err := readJournalFile(f)
		if err != nil {
			return nil, err
		}
		res = append(res, entries...)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Time.Before(res[j].Time) })
	return res, nil
}

// journalFiles lists the backups of path in rotation order followed by the
// live file, skipping anything that is not a lumberjack backup name.
func journalFiles(path string) ([]string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	matches, err := filepath.Glob(stem + "-*" + ext)
	if err != nil {
		return nil, err
	}
	type backup struct {
		name string
		at   time.Time
	}
	var backups []backup
	for _, m := range matches {
		ts := strings.TrimSuffix(strings.TrimPrefix(m, stem+"-"), ext)
		at, err := time.Parse(backupTimeFormat, ts)
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: m, at: at})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].at.Before(backups[j].at) })
	files := make([]string, 0, len(backups)+1)
	for _, b := range backups {
		files = append(files, b.name)
	}
	if _, err := os.Stat(path); err == nil {
		files = append(files, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return files, nil
}

func readJournalFile(name string) ([]JournalEntry, error) {
	file, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var res []JournalEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		res = append(res, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal %s: %w", name, err)
	}
	return res, nil
}
