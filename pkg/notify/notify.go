// Package notify delivers short-lived user notifications ("toasts").
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Durations used by the storefront.
const (
	Short = 2 * time.Second
	Long  = 3 * time.Second
)

// Notifier shows a message for roughly duration.
type Notifier interface {
	Notify(message string, duration time.Duration)
}

// Toast is a recorded notification.
type Toast struct {
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, time.Duration) {}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger discards output.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(message string, duration time.Duration) {
	n.logger.Info("notification", zap.String("message", message), zap.Duration("duration", duration))
}

// Recorder buffers notifications until they are drained.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(message string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Message: message, Duration: duration})
}

// Drain returns the buffered notifications and empties the buffer.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

// Pending returns the number of buffered notifications.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(message string, duration time.Duration) {
	for _, n := range m {
		n.Notify(message, duration)
	}
}
