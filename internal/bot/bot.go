// Package bot turns inbound chat events into ledger mutations and
// replies. It owns the per-user session state machine; storage,
// rendering and the transport are injected.
package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_bot/internal/access"
	"sales_bot/internal/report"
	"sales_bot/internal/sales"
)

// EventKind distinguishes typed text from button presses. Both carry
// their payload as text and are interpreted identically.
type EventKind int

const (
	EventText EventKind = iota
	EventButton
)

// Event is one inbound chat event as delivered by the transport.
type Event struct {
	UserID  int64
	Kind    EventKind
	Payload string
}

// Sender is the outbound side of the transport. Failures are
// recoverable: they are logged and never abort the dispatcher.
type Sender interface {
	SendText(targetID int64, text string) error
	SendDocument(targetID int64, data []byte, filename string) error
	SendImage(targetID int64, data []byte, filename string) error
}

// Canonical item labels per menu branch.
const (
	itemProduct = "Товар"
	itemService = "Услуга"
)

// Dispatcher wires the access gate, session store, ledger and report
// renderers together. One inbound event produces at most one state
// transition and at most one ledger mutation.
type Dispatcher struct {
	storage      sales.Storage
	gate         *access.Gate
	sender       Sender
	logger       *zap.Logger
	historyLimit int

	sessions *sessionStore
	exports  sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(storage sales.Storage, gate *access.Gate, sender Sender, logger *zap.Logger, historyLimit int) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if historyLimit < 1 {
		historyLimit = 10
	}
	return &Dispatcher{
		storage:      storage,
		gate:         gate,
		sender:       sender,
		logger:       logger,
		historyLimit: historyLimit,
		sessions:     newSessionStore(),
	}
}

// Handle processes one inbound event. Events from the same user are
// serialized on the session lock; export rendering runs on its own
// goroutine so one user's report does not stall another user's chat.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) {
	if !d.gate.Allowed(ev.UserID) {
		d.logger.Warn("access denied", zap.Int64("user_id", ev.UserID))
		d.reply(ev.UserID, replyAccessDenied)
		return
	}

	sess := d.sessions.get(ev.UserID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	payload := strings.TrimSpace(ev.Payload)
	cmd := ParseCommand(payload)

	// Cancel is the one token honored in every state.
	if cmd == CmdCancel {
		if sess.step == StepIdle {
			d.reply(ev.UserID, replyNoCancel)
			return
		}
		sess.reset()
		d.reply(ev.UserID, replyCancelled)
		return
	}

	switch sess.step {
	case StepAwaitingPrice:
		d.handlePrice(ctx, ev.UserID, sess, payload)
	case StepAwaitingNote:
		d.handleNote(ctx, ev.UserID, sess, payload)
	default:
		d.handleIdle(ctx, ev.UserID, sess, cmd)
	}
}

// Flush waits for in-flight export goroutines. Used on shutdown and in
// tests.
func (d *Dispatcher) Flush() {
	d.exports.Wait()
}

func (d *Dispatcher) handleIdle(ctx context.Context, userID int64, sess *session, cmd Command) {
	switch cmd {
	case CmdStart:
		d.reply(userID, replyStart)
	case CmdProduct:
		sess.step = StepAwaitingPrice
		sess.pendingItem = itemProduct
		sess.pendingCategory = sales.CategoryProduct
		d.reply(userID, replyAskPrice)
	case CmdService:
		sess.step = StepAwaitingPrice
		sess.pendingItem = itemService
		sess.pendingCategory = sales.CategoryService
		d.reply(userID, replyAskPrice)
	case CmdNote:
		sess.step = StepAwaitingNote
		d.reply(userID, replyAskNote)
	case CmdHistory:
		d.handleHistory(ctx, userID)
	case CmdTotal:
		d.handleTotal(ctx, userID)
	case CmdDeleteLast:
		d.handleDeleteLast(ctx, userID)
	case CmdReset:
		d.handleReset(ctx, userID)
	case CmdExportCSV:
		d.spawnExport(ctx, userID, "csv")
	case CmdExportXLSX:
		d.spawnExport(ctx, userID, "xlsx")
	case CmdChart:
		d.spawnExport(ctx, userID, "chart")
	default:
		d.reply(userID, replyUnknown)
	}
}

func (d *Dispatcher) handlePrice(ctx context.Context, userID int64, sess *session, payload string) {
	price, err := ParsePrice(payload)
	if err != nil {
		// Session unchanged; the user may retry indefinitely.
		d.reply(userID, replyBadPrice)
		return
	}

	record, err := d.storage.Insert(ctx, sales.Draft{
		UserID:   userID,
		Item:     sess.pendingItem,
		Category: sess.pendingCategory,
		Amount:   price,
		Quantity: 1,
	})
	if err != nil {
		// Keep the draft so the user can retry the same price.
		d.logger.Error("failed to insert sale", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageFail)
		return
	}

	sess.reset()
	d.logger.Info("sale recorded",
		zap.Int64("record_id", record.ID),
		zap.Int64("user_id", userID),
		zap.String("category", string(record.Category)),
		zap.String("amount", record.Amount.String()),
	)
	d.reply(userID, fmt.Sprintf("✅ Записано: %s — %s", record.Item, record.Amount.String()))
}

func (d *Dispatcher) handleNote(ctx context.Context, userID int64, sess *session, payload string) {
	if payload == "" {
		d.reply(userID, replyEmptyNote)
		return
	}

	record, err := d.storage.Insert(ctx, sales.Draft{
		UserID:   userID,
		Item:     payload,
		Category: sales.CategoryNote,
		Amount:   decimal.Zero,
		Quantity: 1,
	})
	if err != nil {
		d.logger.Error("failed to insert note", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageFail)
		return
	}

	sess.reset()
	d.logger.Info("note recorded", zap.Int64("record_id", record.ID), zap.Int64("user_id", userID))
	d.reply(userID, replyNoteSaved)
}

func (d *Dispatcher) handleHistory(ctx context.Context, userID int64) {
	records, err := d.storage.ListAll(ctx)
	if err != nil {
		d.logger.Error("failed to list records", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageRead)
		return
	}
	if len(records) == 0 {
		d.reply(userID, replyNoData)
		return
	}

	if len(records) > d.historyLimit {
		records = records[len(records)-d.historyLimit:]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Последние записи (%d):\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&b, "#%d %s %s ×%d — %s\n",
			r.ID, r.CreatedAt.Format("02.01"), r.Item, r.Quantity, r.Amount.String())
	}
	d.reply(userID, strings.TrimRight(b.String(), "\n"))
}

func (d *Dispatcher) handleTotal(ctx context.Context, userID int64) {
	records, err := d.storage.ListAll(ctx)
	if err != nil {
		d.logger.Error("failed to list records", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageRead)
		return
	}
	total := sales.Total(records)
	d.reply(userID, fmt.Sprintf("💰 Итог: %s (записей: %d)", total.String(), len(records)))
}

func (d *Dispatcher) handleDeleteLast(ctx context.Context, userID int64) {
	ok, err := d.storage.DeleteLast(ctx, userID)
	if err != nil {
		d.logger.Error("failed to delete last record", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageRead)
		return
	}
	if !ok {
		d.reply(userID, replyNoDelete)
		return
	}
	d.reply(userID, replyDeleted)
}

func (d *Dispatcher) handleReset(ctx context.Context, userID int64) {
	if err := d.storage.ResetAll(ctx); err != nil {
		d.logger.Error("failed to reset ledger", zap.Int64("user_id", userID), zap.Error(err))
		d.reply(userID, replyStorageRead)
		return
	}
	d.logger.Info("ledger reset", zap.Int64("user_id", userID))
	d.reply(userID, replyResetDone)
}

// spawnExport renders and delivers an export off the event-intake path.
func (d *Dispatcher) spawnExport(ctx context.Context, userID int64, kind string) {
	d.exports.Add(1)
	go func() {
		defer d.exports.Done()
		d.runExport(ctx, userID, kind)
	}()
}

func (d *Dispatcher) runExport(ctx context.Context, userID int64, kind string) {
	jobID := uuid.NewString()
	logger := d.logger.With(
		zap.String("job_id", jobID),
		zap.Int64("user_id", userID),
		zap.String("kind", kind),
	)

	records, err := d.storage.ListAll(ctx)
	if err != nil {
		logger.Error("failed to list records for export", zap.Error(err))
		d.reply(userID, replyStorageRead)
		return
	}
	if len(records) == 0 {
		d.reply(userID, replyNoData)
		return
	}

	var sendErr error
	switch kind {
	case "csv":
		data, err := report.ToCSV(records)
		if err != nil {
			logger.Error("failed to render csv", zap.Error(err))
			d.reply(userID, replyRenderFail)
			return
		}
		sendErr = d.sender.SendDocument(userID, data, "sales_"+jobID[:8]+".csv")
	case "xlsx":
		data, err := report.ToSpreadsheet(records)
		if err != nil {
			logger.Error("failed to render spreadsheet", zap.Error(err))
			d.reply(userID, replyRenderFail)
			return
		}
		sendErr = d.sender.SendDocument(userID, data, "sales_"+jobID[:8]+".xlsx")
	case "chart":
		data, err := report.RenderDailyChart(records, chartTitle)
		if err != nil {
			logger.Error("failed to render chart", zap.Error(err))
			d.reply(userID, replyRenderFail)
			return
		}
		sendErr = d.sender.SendImage(userID, data, "sales_"+jobID[:8]+".png")
	}
	if sendErr != nil {
		logger.Error("failed to deliver export", zap.Error(sendErr))
		return
	}
	logger.Info("export delivered", zap.Int("records", len(records)))
}

func (d *Dispatcher) reply(userID int64, text string) {
	if err := d.sender.SendText(userID, text); err != nil {
		d.logger.Error("failed to send reply", zap.Int64("user_id", userID), zap.Error(err))
	}
}
