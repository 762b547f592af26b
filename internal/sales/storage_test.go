package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productDraft(userID int64, amount string) Draft {
	return Draft{
		UserID:   userID,
		Item:     "Товар",
		Category: CategoryProduct,
		Amount:   decimal.RequireFromString(amount),
		Quantity: 1,
	}
}

func TestLocalStorage_InsertAssignsMonotonicIDs(t *testing.T) {
	store := NewLocalStorage()
	ctx := context.Background()

	first, err := store.Insert(ctx, productDraft(1, "10"))
	require.NoError(t, err)
	second, err := store.Insert(ctx, productDraft(2, "20"))
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, first.CreatedAt.Location())
}

func TestLocalStorage_InsertValidation(t *testing.T) {
	store := NewLocalStorage()
	ctx := context.Background()

	_, err := store.Insert(ctx, Draft{
		UserID:   1,
		Item:     "Товар",
		Category: CategoryProduct,
		Amount:   decimal.RequireFromString("-1"),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = store.Insert(ctx, Draft{
		UserID:   1,
		Item:     "Товар",
		Category: CategoryProduct,
		Amount:   decimal.Zero,
		Quantity: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = store.Insert(ctx, Draft{
		UserID:   1,
		Item:     "Товар",
		Category: Category("gift"),
		Amount:   decimal.Zero,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "rejected drafts must not reach the ledger")
}

func TestLocalStorage_DeleteLastIsPerUserRecency(t *testing.T) {
	store := NewLocalStorage()
	ctx := context.Background()

	r1, err := store.Insert(ctx, productDraft(7, "1"))
	require.NoError(t, err)
	r2, err := store.Insert(ctx, productDraft(7, "2"))
	require.NoError(t, err)
	// A later record from another user must not shadow user 7's last.
	_, err = store.Insert(ctx, productDraft(8, "3"))
	require.NoError(t, err)

	ok, err := store.DeleteLast(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.NotContains(t, ids, r2.ID)
	assert.Contains(t, ids, r1.ID)

	ok, err = store.DeleteLast(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteLast(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok, "third delete has nothing left to remove")
}

func TestLocalStorage_ResetAll(t *testing.T) {
	store := NewLocalStorage()
	ctx := context.Background()

	_, err := store.Insert(ctx, productDraft(1, "5"))
	require.NoError(t, err)
	require.NoError(t, store.ResetAll(ctx))

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// IDs keep climbing across a reset.
	r, err := store.Insert(ctx, productDraft(1, "5"))
	require.NoError(t, err)
	assert.Greater(t, r.ID, int64(1))
}

func TestLocalStorage_ListBetween(t *testing.T) {
	store := NewLocalStorage()
	ctx := context.Background()

	r, err := store.Insert(ctx, productDraft(1, "5"))
	require.NoError(t, err)

	in, err := store.ListBetween(ctx, r.CreatedAt.Add(-time.Minute), r.CreatedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, in, 1)

	out, err := store.ListBetween(ctx, r.CreatedAt.Add(time.Hour), r.CreatedAt.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTotal(t *testing.T) {
	records := []*Record{
		{Amount: decimal.RequireFromString("49.99"), Quantity: 1},
		{Amount: decimal.RequireFromString("10"), Quantity: 3},
		{Amount: decimal.Zero, Quantity: 1},
	}

	want := decimal.RequireFromString("79.99")
	assert.True(t, Total(records).Equal(want), "got %s", Total(records))

	// Order independence.
	reversed := []*Record{records[2], records[1], records[0]}
	assert.True(t, Total(reversed).Equal(want))

	assert.True(t, Total(nil).Equal(decimal.Zero))
}

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	draft := Draft{
		UserID:   42,
		Item:     "Услуга",
		Category: CategoryService,
		Amount:   decimal.RequireFromString("125.50"),
		Quantity: 2,
	}
	inserted, err := store.Insert(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted.ID)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, inserted.ID, got.ID)
	assert.Equal(t, draft.UserID, got.UserID)
	assert.Equal(t, draft.Item, got.Item)
	assert.Equal(t, draft.Category, got.Category)
	assert.True(t, got.Amount.Equal(draft.Amount))
	assert.Equal(t, draft.Quantity, got.Quantity)
	assert.WithinDuration(t, inserted.CreatedAt, got.CreatedAt, time.Millisecond)

	ok, err := store.DeleteLast(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteLast(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStorage_ResetAll(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, err = store.Insert(ctx, productDraft(1, "9.99"))
	require.NoError(t, err)
	require.NoError(t, store.ResetAll(ctx))

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
