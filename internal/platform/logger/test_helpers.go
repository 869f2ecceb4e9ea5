package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer collects JSON log lines; safe for concurrent writers.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// GetLogEntries decodes every record written so far.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(b.String()))

	var entries []map[string]any
	for {
		var entry map[string]any
		err := dec.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// GetTestLogger returns a debug-level JSON logger and the buffer it writes to.
func GetTestLogger(t *testing.T) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	buf := &TestLogBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// NewTestContext is GetTestLogger with the logger already attached to a context.
func NewTestContext(t *testing.T) (context.Context, *TestLogBuffer) {
	t.Helper()

	log, buf := GetTestLogger(t)
	return WithLogger(context.Background(), log), buf
}

func AssertLogContains(t *testing.T, logBuf *TestLogBuffer, content string) {
	t.Helper()

	if logs := logBuf.String(); !strings.Contains(logs, content) {
		t.Errorf("log does not contain %q\nlogs:\n%s", content, logs)
	}
}

// AssertLogField passes when any record has field == expected. JSON numbers
// decode as float64, so pass numeric expectations as float64.
func AssertLogField(t *testing.T, logBuf *TestLogBuffer, field string, expected any) {
	t.Helper()

	entries, err := logBuf.GetLogEntries()
	if err != nil {
		t.Fatalf("parse log entries: %v", err)
	}

	for _, entry := range entries {
		if value, ok := entry[field]; ok && value == expected {
			return
		}
	}
	t.Errorf("no log record has %s=%v\nlogs:\n%s", field, expected, logBuf.String())
}
