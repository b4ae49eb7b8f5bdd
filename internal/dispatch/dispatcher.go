package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/datawarden/datawarden/internal/log"
	"github.com/datawarden/datawarden/internal/pkg/xcontext"
)

// Config holds dispatcher-wide defaults and the worker pool bound.
type Config struct {
	// MaxConcurrent bounds the number of requests executing at once.
	MaxConcurrent int `conf:"max_concurrent" yaml:"max_concurrent" json:"max_concurrent"`

	// DefaultTimeout is the per-attempt timeout when a request supplies none.
	DefaultTimeout time.Duration `conf:"default_timeout" yaml:"default_timeout" json:"default_timeout"`

	// DefaultMaxRetries is the attempt bound when a request supplies none.
	DefaultMaxRetries int `conf:"default_max_retries" yaml:"default_max_retries" json:"default_max_retries"`

	// BaseBackoff is the first retry delay; it doubles on each further retry.
	BaseBackoff time.Duration `conf:"base_backoff" yaml:"base_backoff" json:"base_backoff"`
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 8
	}

	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = 30 * time.Second
	}

	if c.DefaultMaxRetries <= 0 {
		c.DefaultMaxRetries = 3
	}

	if c.BaseBackoff <= 0 {
		c.BaseBackoff = time.Second
	}

	return c
}

// errOverallDeadline marks an attempt cut short by the dispatch-wide deadline,
// as opposed to its own per-attempt timeout.
var errOverallDeadline = errors.New("dispatch deadline exceeded")

// Dispatcher executes tool requests with per-attempt timeouts, exponential
// backoff, and bounded concurrency. Terminal results are appended to history.
type Dispatcher struct {
	cfg      Config
	registry *Registry
	history  *History
}

func NewDispatcher(cfg Config, registry *Registry, history *History) *Dispatcher {
	if history == nil {
		history = NewHistory()
	}

	return &Dispatcher{
		cfg:      cfg.withDefaults(),
		registry: registry,
		history:  history,
	}
}

// History exposes the dispatch history for stats and operator actions.
func (d *Dispatcher) History() *History {
	return d.history
}

// Registry exposes the tool registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// DispatchOne executes a single request to a terminal result.
func (d *Dispatcher) DispatchOne(ctx context.Context, req Request) Result {
	result := d.execute(ctx, req)
	d.history.Append(result)

	return result
}

// DispatchMany executes the requests concurrently on a bounded worker pool.
// The returned slice matches the input index for index, regardless of
// completion order. When overallTimeout is positive and elapses first, every
// request still outstanding is force-terminated as timeout; the overall
// deadline takes precedence over any remaining per-request retries.
func (d *Dispatcher) DispatchMany(ctx context.Context, reqs []Request, overallTimeout time.Duration) []Result {
	if overallTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, overallTimeout)
		defer cancel()
	}

	start := time.Now()
	results := make([]Result, len(reqs))
	sem := semaphore.NewWeighted(int64(d.cfg.MaxConcurrent))

	var eg errgroup.Group

	for i, req := range reqs {
		eg.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Never started: forced terminal timeout, zero attempts.
				results[i] = Result{
					ID:              uuid.NewString(),
					ToolName:        req.ToolName,
					Status:          StatusTimeout,
					Error:           errOverallDeadline.Error(),
					Attempts:        0,
					ExecutionTimeMS: time.Since(start).Milliseconds(),
					Metadata:        req.Metadata,
					StartedAt:       start,
				}
				d.history.Append(results[i])

				return nil
			}
			defer sem.Release(1)

			results[i] = d.execute(ctx, req)
			d.history.Append(results[i])

			return nil
		})
	}

	// Workers never return errors; failures are isolated per result.
	_ = eg.Wait()

	return results
}

// execute runs the per-request attempt/retry state machine to a terminal
// status. It never panics and never returns early without a terminal result.
func (d *Dispatcher) execute(ctx context.Context, req Request) Result {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = d.cfg.DefaultTimeout
	}

	maxRetries := req.MaxRetries
	if maxRetries <= 0 {
		maxRetries = d.cfg.DefaultMaxRetries
	}

	start := time.Now()
	result := Result{
		ID:        uuid.NewString(),
		ToolName:  req.ToolName,
		Status:    StatusPending,
		Metadata:  req.Metadata,
		StartedAt: start,
	}

	tool, ok := d.registry.Get(req.ToolName)
	if !ok {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("unknown tool %q", req.ToolName)
		result.ExecutionTimeMS = time.Since(start).Milliseconds()

		return result
	}

	result.Status = StatusRunning

	for result.Attempts < maxRetries {
		result.Attempts++

		output, err := d.invokeOnce(ctx, tool, req, timeout)
		if err == nil {
			result.Status = StatusSuccess
			result.Output = output

			break
		}

		log.Debug(ctx, "tool attempt failed",
			log.String("tool", req.ToolName),
			log.Int("attempt", result.Attempts),
			log.Cause(err),
		)

		if errors.Is(err, errOverallDeadline) {
			result.Status = StatusTimeout
			result.Error = err.Error()

			break
		}

		if result.Attempts >= maxRetries {
			if errors.Is(err, context.DeadlineExceeded) {
				result.Status = StatusTimeout
			} else {
				result.Status = StatusFailed
			}

			result.Error = err.Error()

			break
		}

		backoff := d.cfg.BaseBackoff << (result.Attempts - 1)
		select {
		case <-ctx.Done():
			result.Status = StatusTimeout
			result.Error = errOverallDeadline.Error()
		case <-time.After(backoff):
			continue
		}

		break
	}

	result.ExecutionTimeMS = time.Since(start).Milliseconds()

	return result
}

// invokeOnce runs a single attempt under the per-attempt timeout. The attempt
// context is detached from the dispatch deadline so that a force-terminated
// result does not guarantee the underlying call is killed; result reporting is
// at most once, side effects are not.
func (d *Dispatcher) invokeOnce(ctx context.Context, tool Tool, req Request, timeout time.Duration) (map[string]any, error) {
	attemptCtx, cancel := xcontext.DetachWithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		output map[string]any
		err    error
	}

	done := make(chan outcome, 1)

	go func() {
		defer func() {
			// A panicking tool is a failed attempt, never a crashed sibling.
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("tool %q panic: %v", req.ToolName, r)}
			}
		}()

		output, err := tool.Invoke(attemptCtx, req.Target, req.Input)
		done <- outcome{output: output, err: err}
	}()

	select {
	case o := <-done:
		return o.output, o.err
	case <-attemptCtx.Done():
		return nil, fmt.Errorf("attempt timed out after %s: %w", timeout, context.DeadlineExceeded)
	case <-ctx.Done():
		return nil, errOverallDeadline
	}
}
