// Package logging builds the process logger.
// The terminal owns stdout and stderr while the animation runs, so debug output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultDir is where debug logs are written, relative to the working directory
	DefaultDir = "logs"
	// FileName is the debug log file inside the log directory
	FileName = "waving-simulation.log"
	// MaxSize is the size above which an existing log is rotated aside on Setup
	MaxSize = 10 * 1024 * 1024
)

// Setup returns a JSON file logger under dir when debug is set, otherwise a no-op logger
// The returned close function flushes and closes the file and is always non-nil
func Setup(debug bool, dir string) (*zap.Logger, func() error, error) {
	if !debug {
		return zap.NewNop(), func() error { return nil }, nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := rotate(path, time.Now()); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		zap.NewAtomicLevelAt(zap.DebugLevel),
	)
	logger := zap.New(core).With(zap.Int("pid", os.Getpid()))

	closeFn := func() error {
		_ = logger.Sync()
		return file.Close()
	}
	return logger, closeFn, nil
}

// rotate renames path to a timestamped sibling when it exceeds MaxSize
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxSize {
		return nil
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	rotated := base + "." + now.Format("20060102-150405") + ".log"
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
