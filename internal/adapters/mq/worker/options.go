package worker

import "github.com/Ayoubslh/Sanned/pkg/logger"

// Option configures a single worker.
type Option func(*Worker)

// WithName names the worker, which also names its logger.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(w *Worker) {
		if log != nil {
			w.logger = log
		}
	}
}
