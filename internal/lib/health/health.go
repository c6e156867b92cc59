// Package health probes the service dependencies on demand and on a schedule.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/deppfellow/pitchfund/internal/metrics"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type CheckFunc func(ctx context.Context) error

// Check is a named dependency probe. A failing optional check is reported
// but leaves the overall status healthy.
type Check struct {
	Name     string
	Fn       CheckFunc
	Required bool
}

type Result struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type Report struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]Result `json:"checks"`
}

func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type Checker struct {
	checks  []Check
	timeout time.Duration
	logger  *zerolog.Logger
	nrApp   *newrelic.Application

	mu   sync.Mutex
	cron *cron.Cron
	last *Report
}

func NewChecker(logger *zerolog.Logger, nrApp *newrelic.Application, timeout time.Duration, checks ...Check) *Checker {
	return &Checker{
		checks:  checks,
		timeout: timeout,
		logger:  logger,
		nrApp:   nrApp,
	}
}

// Run executes every check concurrently.
func (c *Checker) Run(ctx context.Context) Report {
	report := Report{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]Result, len(c.checks)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, check := range c.checks {
		wg.Add(1)
		go func(check Check) {
			defer wg.Done()
			res, ok := c.runOne(ctx, check)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[check.Name] = res
			if !ok && check.Required {
				report.Status = StatusUnhealthy
			}
		}(check)
	}
	wg.Wait()

	c.mu.Lock()
	c.last = &report
	c.mu.Unlock()

	return report
}

func (c *Checker) runOne(ctx context.Context, check Check) (Result, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := check.Fn(ctx)
	elapsed := time.Since(start)

	metrics.SetDependency(check.Name, err == nil)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		if c.nrApp != nil {
			c.nrApp.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       check.Name,
				"required":         check.Required,
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return Result{Status: StatusUnhealthy, ResponseTime: elapsed.String(), Error: err.Error()}, false
	}

	c.logger.Debug().
		Str("check", check.Name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return Result{Status: StatusHealthy, ResponseTime: elapsed.String()}, true
}

func (c *Checker) lastReport() (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Report{}, false
	}
	return *c.last, true
}

// Start runs the checks every interval until Stop.
func (c *Checker) Start(interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		return nil
	}

	sched := cron.New()
	_, err := sched.AddFunc("@every "+interval.String(), func() {
		report := c.Run(context.Background())
		if !report.Healthy() {
			c.logger.Warn().Msg("scheduled health check reported unhealthy")
		}
	})
	if err != nil {
		return err
	}

	sched.Start()
	c.cron = sched
	c.logger.Info().Dur("interval", interval).Msg("started scheduled health checks")
	return nil
}

func (c *Checker) Stop() {
	c.mu.Lock()
	sched := c.cron
	c.cron = nil
	c.mu.Unlock()

	if sched != nil {
		<-sched.Stop().Done()
	}
}
