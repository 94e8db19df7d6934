// Package logger builds the tracker's zerolog logger.
package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/shanehull/bultentakip/internal/config"
)

const (
	// RotationAge is how long a log file collects lines before it is rotated
	// at the next start.
	RotationAge = 7 * 24 * time.Hour

	// MaxBackups is the number of rotated files kept next to the live one.
	MaxBackups = 8

	backupStamp = "20060102-150405"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing human-readable lines to console and, when
// cfg.File is set, JSON lines appended to that file. A file whose first entry
// is older than RotationAge is moved aside first. The returned closer releases
// the file.
func New(cfg config.LogConfig, console io.Writer) (zerolog.Logger, io.Closer, error) {
	return newAt(cfg, console, time.Now())
}

func newAt(cfg config.LogConfig, console io.Writer, now time.Time) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
	}
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := rotate(cfg.File, now); err != nil {
			return zerolog.Nop(), nil, err
		}

		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		writers = append(writers, f)
		closer = f
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return log, closer, nil
}

// rotate renames path to name-<first entry time>.ext when its first entry is
// RotationAge old, then drops backups beyond MaxBackups.
func rotate(path string, now time.Time) error {
	startedAt, ok := firstLineTime(path)
	if !ok || now.Sub(startedAt) < RotationAge {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backup := fmt.Sprintf("%s-%s%s", base, startedAt.UTC().Format(backupStamp), ext)
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("failed to rotate log file %s: %w", path, err)
	}

	backups, err := filepath.Glob(base + "-*" + ext)
	if err != nil || len(backups) <= MaxBackups {
		return nil
	}
	// The stamp sorts chronologically.
	sort.Strings(backups)
	for _, old := range backups[:len(backups)-MaxBackups] {
		os.Remove(old)
	}
	return nil
}

// firstLineTime reads the timestamp of the oldest entry in a JSON log file.
func firstLineTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return time.Time{}, false
	}

	var entry struct {
		Time string `json:"time"`
	}
	if err := json.Unmarshal(line, &entry); err != nil || entry.Time == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(zerolog.TimeFieldFormat, entry.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
