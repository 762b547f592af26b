package sales

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrInvalidAmount is returned when trying to store a record with a
// negative amount.
var ErrInvalidAmount = errors.New("amount must not be negative")

// ErrInvalidQuantity is returned when trying to store a record with a
// quantity below one.
var ErrInvalidQuantity = errors.New("quantity must be at least one")

// ErrInvalidCategory is returned for a category outside the known set.
var ErrInvalidCategory = errors.New("unknown category")

// Storage is the main interface for the ledger storage layer.
// Every mutation is atomic with respect to concurrent callers.
type Storage interface {
	// Insert assigns an ID and timestamp to the draft, persists it and
	// returns the stored record. IDs are unique and monotonically
	// increasing across the lifetime of the store.
	Insert(ctx context.Context, draft Draft) (*Record, error)
	// ListAll returns every record, ordered by ID ascending.
	ListAll(ctx context.Context) ([]*Record, error)
	// ListBetween returns records with CreatedAt in [start, end],
	// ordered by ID ascending.
	ListBetween(ctx context.Context, start, end time.Time) ([]*Record, error)
	// DeleteLast removes the highest-ID record owned by userID and
	// reports whether one existed.
	DeleteLast(ctx context.Context, userID int64) (bool, error)
	// ResetAll deletes every record. Irreversible.
	ResetAll(ctx context.Context) error
	Close() error
}

func validateDraft(draft Draft) error {
	if draft.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if draft.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if !draft.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// LocalStorage provides an in-memory implementation of Storage. It
// backs tests and token-only runs without a database file.
type LocalStorage struct {
	mu     sync.Mutex
	m      map[int64]*Record
	nextID int64
}

// NewLocalStorage instantiates a new LocalStorage with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m:      map[int64]*Record{},
		nextID: 1,
	}
}

func (l *LocalStorage) Insert(_ context.Context, draft Draft) (*Record, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record := &Record{
		ID:        l.nextID,
		UserID:    draft.UserID,
		Item:      draft.Item,
		Category:  draft.Category,
		Amount:    draft.Amount,
		Quantity:  draft.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	l.m[record.ID] = record
	l.nextID++
	return record, nil
}

func (l *LocalStorage) ListAll(_ context.Context) ([]*Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]*Record, 0, len(l.m))
	for _, r := range l.m {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (l *LocalStorage) ListBetween(_ context.Context, start, end time.Time) ([]*Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := make([]*Record, 0)
	for _, r := range l.m {
		if r.CreatedAt.Before(start) || r.CreatedAt.After(end) {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (l *LocalStorage) DeleteLast(_ context.Context, userID int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var last int64
	for id, r := range l.m {
		if r.UserID == userID && id > last {
			last = id
		}
	}
	if last == 0 {
		return false, nil
	}
	delete(l.m, last)
	return true, nil
}

func (l *LocalStorage) ResetAll(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m = map[int64]*Record{}
	return nil
}

func (l *LocalStorage) Close() error { return nil }
