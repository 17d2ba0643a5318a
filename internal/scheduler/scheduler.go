package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ha404/dual-momentum/internal/config"
	"github.com/ha404/dual-momentum/internal/notifier"
	"github.com/ha404/dual-momentum/internal/strategy"
)

const sendRetries = 3

// Notifier is the outbound messaging dependency.
type Notifier interface {
	SendWithRetry(ctx context.Context, subject, body string, maxRetries int) error
}

// Scheduler runs the momentum evaluation on a cron schedule and dispatches the
// rendered report by mail.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *strategy.Engine
	Notifier Notifier
	Reminder config.ReminderWindow
	Logger   zerolog.Logger
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, engine *strategy.Engine, n Notifier, reminder config.ReminderWindow, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Notifier: n,
		Reminder: reminder,
		Logger:   log,
		Ctx:      ctx,
	}
}

// RegisterAll registers the monthly evaluation task.
func (s *Scheduler) RegisterAll(monthlyCron string) error {
	if _, err := s.Cron.AddFunc(monthlyCron, s.monthlyTask); err != nil {
		return fmt.Errorf("register monthly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) monthlyTask() {
	s.Logger.Info().Msg("running monthly evaluation")
	if err := s.RunNow(); err != nil {
		s.Logger.Error().Err(err).Msg("monthly evaluation failed")
	}
}

// RunNow evaluates once and sends the report — plus a second, prefixed copy
// when the current date falls inside the annual reminder window. A failed
// evaluation sends nothing.
func (s *Scheduler) RunNow() error {
	res, err := s.Engine.Evaluate(s.Ctx)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	subject := notifier.Subject("", res.EvaluatedAt)
	if err := s.Notifier.SendWithRetry(s.Ctx, subject, res.Report, sendRetries); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	if InReminderWindow(res.EvaluatedAt, s.Reminder) {
		s.Logger.Info().Msg("inside annual reminder window, sending checkup copy")
		subject = notifier.Subject(notifier.AnnualPrefix, res.EvaluatedAt)
		if err := s.Notifier.SendWithRetry(s.Ctx, subject, res.Report, sendRetries); err != nil {
			return fmt.Errorf("send annual reminder: %w", err)
		}
	}

	return nil
}
