package registration

import (
	"context"
	"time"

	"github.com/zjrosen/signup/internal/log"
)

// Submission is a validated record handed to a Handler.
type Submission struct {
	ID          string
	SubmittedAt time.Time
	Values      Values
}

// Handler receives each accepted submission. It runs on the caller's
// goroutine while the controller is locked and must not call back into the
// controller. A non-nil error rejects the submission: the form stays in
// editing mode with its values intact.
type Handler func(ctx context.Context, s Submission) error

// LogHandler logs the submission with secrets masked. This is the only
// integration point a real backend would replace.
func LogHandler() Handler {
	return func(_ context.Context, s Submission) error {
		masked := s.Values.Masked()
		fields := []any{"id", s.ID}
		for _, f := range Fields {
			fields = append(fields, f.Key(), masked.Get(f))
		}
		log.Info(log.CatSubmit, "registration received", fields...)
		return nil
	}
}

// Chain runs handlers in order and stops at the first error.
func Chain(handlers ...Handler) Handler {
	return func(ctx context.Context, s Submission) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h(ctx, s); err != nil {
				return err
			}
		}
		return nil
	}
}
