package task

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Alerter appends operational alerts to a log file, one timestamped line
// per alert, and mirrors them to the structured log.
type Alerter struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewAlerter creates an alerter writing to the given file. The file and
// its directory are created on first use.
func NewAlerter(path string) *Alerter {
	return &Alerter{path: path, now: time.Now}
}

// Send records one alert.
func (a *Alerter) Send(message string) error {
	slog.Warn("alert", slog.String("message", message))

	a.mu.Lock()
	defer a.mu.Unlock()

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create alert directory: %w", err)
		}
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open alert file: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := a.now().Format(time.RFC3339) + " - " + message + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write alert: %w", err)
	}
	return nil
}
