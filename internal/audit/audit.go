// Package audit appends one durable log line per completed conversion.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Entry is one append-only audit record. Entries are never mutated or
// removed by the gateway.
type Entry struct {
	Time         time.Time
	OriginalName string
	OutputName   string
	Month        string
	Bank         string
	Transactions int
}

// Logger serializes appends from concurrent requests onto a single file, so
// lines are never interleaved. There is no cross-request ordering guarantee.
type Logger struct {
	mu sync.Mutex
	f  *os.File
}

// Open creates or opens the audit log for appending.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %q: %w", path, err)
	}
	return &Logger{f: f}, nil
}

// Append writes one entry as a single line.
func (l *Logger) Append(e Entry) error {
	line := fmt.Sprintf("%s | original=%q output=%q month=%q bank=%q transactions=%d\n",
		e.Time.Format(time.RFC3339), e.OriginalName, e.OutputName, e.Month, e.Bank, e.Transactions)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
