package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	appgames "github.com/preston-bernstein/free-games-service/internal/app/games"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	// cycleTimeout bounds one probe cycle regardless of the interval.
	cycleTimeout = time.Minute
	// failureThreshold consecutive failed cycles flip readiness.
	failureThreshold = 3
)

// Collector runs one aggregated pull.
type Collector interface {
	Collect(ctx context.Context, platform domaingames.Platform) appgames.Result
}

// Probe periodically pulls every source to track upstream health for readiness.
// Results are discarded; nothing is cached.
type Probe struct {
	collector Collector
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	timeout   time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// SourceStatus is the last observed outcome of one source.
type SourceStatus struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// Status describes the recent health of the probe loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Sources             []SourceStatus
}

// IsReady reports whether a cycle has succeeded and cycles are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < failureThreshold
}

// New constructs a Probe with sane defaults.
func New(collector Collector, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Probe {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Probe{
		collector: collector,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		timeout:   cycleTimeout,
		done:      make(chan struct{}),
	}
}

// Start begins probing until the context is cancelled or Stop is called.
func (p *Probe) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "probe started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "probe stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "probe stopped")
				return
			case <-p.ticker.C:
				p.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the probe loop.
func (p *Probe) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Probe) runOnce(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	p.recordAttempt(start)

	res := p.collector.Collect(cycleCtx, domaingames.PlatformAll)
	err := cycleError(res)
	p.metrics.RecordProbeCycle(time.Since(start), err)

	sources := sourceStatuses(res)
	if err != nil {
		logging.Error(p.logger, "probe cycle failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start, sources)
		return
	}

	p.recordSuccess(start, sources)
	if failed := res.Failed(); len(failed) > 0 {
		logging.Warn(p.logger, "probe cycle degraded",
			logging.FieldCount, len(res.Games),
			"failed_sources", len(failed),
		)
		return
	}
	logging.Info(p.logger, "probe cycle ok",
		logging.FieldCount, len(res.Games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// cycleError fails a cycle only when every source failed.
func cycleError(res appgames.Result) error {
	if len(res.Outcomes) == 0 {
		return errors.New("no sources configured")
	}
	errs := make([]error, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		if o.OK() {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", o.Source, o.Err))
	}
	return errors.Join(errs...)
}

func sourceStatuses(res appgames.Result) []SourceStatus {
	out := make([]SourceStatus, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		s := SourceStatus{Source: o.Source, OK: o.OK(), Count: o.Count}
		if o.Err != nil {
			s.Error = o.Err.Error()
		}
		out = append(out, s)
	}
	return out
}

func (p *Probe) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Probe) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Probe) recordSuccess(at time.Time, sources []SourceStatus) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Sources = sources
}

func (p *Probe) recordFailure(err error, at time.Time, sources []SourceStatus) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.Sources = sources
}

// Status returns a snapshot of the probe's recent health.
func (p *Probe) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	s := p.status
	s.Sources = append([]SourceStatus(nil), p.status.Sources...)
	return s
}
