package registration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/pubsub"
	"github.com/zjrosen/signup/internal/tracing"
)

// Mode is the form's display mode.
type Mode int

const (
	// ModeEditing shows the form and accepts input.
	ModeEditing Mode = iota
	// ModeSuccessDisplayed shows the success card until the revert timer fires.
	ModeSuccessDisplayed
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeSuccessDisplayed:
		return "success"
	default:
		return "unknown"
	}
}

// DefaultSuccessDelay is how long the success card stays up.
const DefaultSuccessDelay = 5 * time.Second

// ModeEvent is published on every mode transition. Cycle counts accepted
// submissions, so a subscriber can tell consecutive success cards apart.
type ModeEvent struct {
	Mode  Mode
	Cycle uint64
}

// Options configures a Controller. Start from DefaultOptions.
type Options struct {
	SuccessDelay       time.Duration
	RevalidateOnChange bool
	Catalog            Catalog
	Clock              Clock
	Tracer             trace.Tracer
	Handler            Handler
}

// DefaultOptions returns the standard configuration: 5s success delay,
// re-validation on change after the first failed submit, default locale,
// real clock, no-op tracing, and LogHandler.
func DefaultOptions() Options {
	return Options{
		SuccessDelay:       DefaultSuccessDelay,
		RevalidateOnChange: true,
		Catalog:            DefaultCatalog(),
		Clock:              RealClock{},
		Tracer:             noop.NewTracerProvider().Tracer("signup"),
		Handler:            LogHandler(),
	}
}

// Outcome is the result of a submit attempt. Exactly one of Accepted and a
// non-empty Errors holds.
type Outcome struct {
	Accepted   bool
	Submission Submission
	Errors     Errors
}

// Controller owns the form values, the current validation errors and the
// Editing / SuccessDisplayed lifecycle. It is safe for concurrent use; the
// revert timer fires on its own goroutine and reports through Events.
type Controller struct {
	mu sync.Mutex

	values    Values
	errs      Errors
	mode      Mode
	cycle     uint64
	armed     bool // re-validate on change after a failed submit
	timer     Timer
	closed    bool
	validator Validator

	delay      time.Duration
	revalidate bool
	catalog    Catalog
	clock      Clock
	tracer     trace.Tracer
	handler    Handler

	events *pubsub.Broker[ModeEvent]
}

// New creates a controller in editing mode with an empty form.
// Zero-valued options fall back to their DefaultOptions counterparts, except
// RevalidateOnChange which is taken as given.
func New(opts Options) *Controller {
	def := DefaultOptions()
	if opts.SuccessDelay <= 0 {
		opts.SuccessDelay = def.SuccessDelay
	}
	if opts.Catalog == nil {
		opts.Catalog = def.Catalog
	}
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.Tracer == nil {
		opts.Tracer = def.Tracer
	}
	if opts.Handler == nil {
		opts.Handler = def.Handler
	}
	return &Controller{
		mode:       ModeEditing,
		validator:  NewValidator(opts.Catalog),
		delay:      opts.SuccessDelay,
		revalidate: opts.RevalidateOnChange,
		catalog:    opts.Catalog,
		clock:      opts.Clock,
		tracer:     opts.Tracer,
		handler:    opts.Handler,
		events:     pubsub.NewBroker[ModeEvent](),
	}
}

// Events returns the broker carrying mode transitions.
func (c *Controller) Events() *pubsub.Broker[ModeEvent] {
	return c.events
}

// Values returns a copy of the current field values.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Errors returns a copy of the errors from the last validation.
func (c *Controller) Errors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs.clone()
}

// Mode returns the current display mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Cycle returns the number of accepted submissions.
func (c *Controller) Cycle() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycle
}

// Catalog returns the active message catalog.
func (c *Controller) Catalog() Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Validator returns a validator using the active catalog.
func (c *Controller) Validator() Validator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validator
}

// UpdateField stores value in f. Once a submit attempt has failed, the
// whole record is re-validated so cross-field rules see the live password.
func (c *Controller) UpdateField(f Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.mode != ModeEditing {
		return ErrNotEditing
	}

	c.values.Set(f, value)
	if c.armed {
		c.errs = c.validator.Validate(c.values)
	}
	return nil
}

// Submit validates the current values. Invalid input is reported in
// Outcome.Errors and leaves the mode unchanged. Valid input is handed to the
// handler; on success the form is cleared, the mode switches to
// ModeSuccessDisplayed, and a one-shot timer reverts it after the success
// delay.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	ctx, span := c.tracer.Start(ctx, tracing.SpanSubmit)
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		span.SetStatus(codes.Error, ErrClosed.Error())
		return Outcome{}, ErrClosed
	}
	if c.mode != ModeEditing {
		span.SetStatus(codes.Error, ErrNotEditing.Error())
		return Outcome{}, ErrNotEditing
	}

	errs := c.validator.Validate(c.values)
	span.SetAttributes(
		attribute.Bool(tracing.AttrValid, len(errs) == 0),
		attribute.Int(tracing.AttrFailedFields, len(errs)),
	)
	if len(errs) > 0 {
		c.errs = errs
		c.armed = c.revalidate
		log.Debug(log.CatForm, "validation failed", "fields", fieldList(errs))
		span.SetStatus(codes.Error, "validation failed")
		return Outcome{Errors: errs.clone()}, nil
	}

	sub := Submission{
		ID:          uuid.NewString(),
		SubmittedAt: c.clock.Now(),
		Values:      c.values,
	}
	span.SetAttributes(attribute.String(tracing.AttrID, sub.ID))

	if err := c.handler(ctx, sub); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		log.ErrorErr(log.CatSubmit, "submission handler failed", err, "id", sub.ID)
		return Outcome{}, fmt.Errorf("handling submission %s: %w", sub.ID, err)
	}

	c.values = Values{}
	c.errs = nil
	c.armed = false
	c.mode = ModeSuccessDisplayed
	c.cycle++
	cycle := c.cycle
	c.timer = c.clock.AfterFunc(c.delay, func() { c.expire(cycle) })

	log.Info(log.CatSubmit, "mode changed", "mode", c.mode, "cycle", cycle, "revert_in", c.delay)
	c.events.Publish(pubsub.UpdatedEvent, ModeEvent{Mode: c.mode, Cycle: cycle})

	return Outcome{Accepted: true, Submission: sub}, nil
}

// expire is the revert timer callback for submission cycle.
func (c *Controller) expire(cycle uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || cycle != c.cycle || c.mode != ModeSuccessDisplayed {
		log.Debug(log.CatSubmit, "stale revert ignored", "cycle", cycle)
		return
	}

	c.mode = ModeEditing
	c.values = Values{}
	c.timer = nil

	log.Info(log.CatSubmit, "mode changed", "mode", c.mode, "cycle", cycle)
	c.events.Publish(pubsub.UpdatedEvent, ModeEvent{Mode: c.mode, Cycle: cycle})
}

// SetSuccessDelay changes the delay used by later submissions. A pending
// timer keeps its original deadline.
func (c *Controller) SetSuccessDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultSuccessDelay
	}
	c.mu.Lock()
	c.delay = d
	c.mu.Unlock()
}

// SetCatalog switches the message catalog. Errors already on display are
// re-labelled in place; which fields fail does not change.
func (c *Controller) SetCatalog(cat Catalog) {
	if cat == nil {
		cat = DefaultCatalog()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog = cat
	c.validator = NewValidator(cat)
	for f, fe := range c.errs {
		fe.Message = cat.Text(fe.Key)
		c.errs[f] = fe
	}
}

// Close tears the controller down: the pending revert timer is stopped, the
// event broker is closed, and later calls return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.events.Close()
}

func fieldList(errs Errors) string {
	keys := make([]string, 0, len(errs))
	for _, f := range errs.Fields() {
		keys = append(keys, f.Key())
	}
	return strings.Join(keys, ",")
}
