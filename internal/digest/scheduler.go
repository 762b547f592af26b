// Package digest pushes a once-a-day sales summary to every operator.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_bot/internal/sales"
)

// Sender delivers digest texts. A failure for one recipient never
// stops delivery to the rest.
type Sender interface {
	SendText(targetID int64, text string) error
}

// Scheduler fires at a fixed local time once every 24 hours. The next
// fire is recomputed from the wall clock after every tick, so a slow
// tick does not accumulate skew.
type Scheduler struct {
	storage    sales.Storage
	sender     Sender
	recipients []int64
	hour       int
	minute     int
	lines      int
	logger     *zap.Logger

	now func() time.Time
}

// New creates a Scheduler firing at hour:minute local time. lines caps
// the number of per-record lines in the summary.
func New(storage sales.Storage, sender Sender, recipients []int64, hour, minute, lines int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lines < 1 {
		lines = 5
	}
	return &Scheduler{
		storage:    storage,
		sender:     sender,
		recipients: recipients,
		hour:       hour,
		minute:     minute,
		lines:      lines,
		logger:     logger,
		now:        time.Now,
	}
}

// Run blocks until ctx is cancelled, firing at each occurrence of the
// configured time of day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextFire(s.now(), s.hour, s.minute)
		s.logger.Info("digest scheduled", zap.Time("next_fire", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.Fire(ctx)
		}
	}
}

// Fire composes and delivers the digest for the current calendar day.
// A day whose total is zero is suppressed entirely.
func (s *Scheduler) Fire(ctx context.Context) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records, err := s.storage.ListBetween(ctx, start, now)
	if err != nil {
		s.logger.Error("failed to fetch records for digest", zap.Error(err))
		return
	}

	total := sales.Total(records)
	if total.IsZero() {
		s.logger.Info("digest suppressed, no turnover today")
		return
	}

	text := s.compose(now, records, total)
	for _, recipient := range s.recipients {
		if err := s.sender.SendText(recipient, text); err != nil {
			s.logger.Error("failed to deliver digest",
				zap.Int64("recipient", recipient), zap.Error(err))
			continue
		}
	}
	s.logger.Info("digest delivered",
		zap.Int("records", len(records)),
		zap.String("total", total.String()),
	)
}

func (s *Scheduler) compose(now time.Time, records []*sales.Record, total decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Итоги за %s\n", now.Format("02.01.2006"))
	fmt.Fprintf(&b, "Записей: %d\n", len(records))
	fmt.Fprintf(&b, "Сумма: %s\n", total.String())

	tail := records
	if len(tail) > s.lines {
		tail = tail[len(tail)-s.lines:]
	}
	if len(tail) > 0 {
		b.WriteString("\nПоследние:\n")
		for _, r := range tail {
			fmt.Fprintf(&b, "• %s — %s\n", r.Item, r.Amount.String())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// nextFire returns the next occurrence of hour:minute strictly after
// now, in now's location.
func nextFire(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
