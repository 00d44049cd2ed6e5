package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront/internal/model"
)

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "description", "image", "large_image", "price", "created_at", "updated_at"})
}

func TestItemRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO items (user_id, title, description, image, large_image, price)")).
		WithArgs(uint64(3), "Hat", "Warm", "hat.jpg", "hat-l.jpg", uint32(1999)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at, updated_at FROM items WHERE id = ?")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(ts, ts))

	it := &model.Item{UserID: 3, Title: "Hat", Description: "Warm", Image: "hat.jpg", LargeImage: "hat-l.jpg", Price: 1999}
	require.NoError(t, repo.Create(context.Background(), it))
	assert.Equal(t, uint64(11), it.ID)
	assert.Equal(t, ts, it.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(itemRows())

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_UpdateOnlyGivenFields(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	title := "Cap"
	price := uint32(999)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE items SET title = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")).
		WithArgs("Cap", uint32(999), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(itemRows().AddRow(5, 3, "Cap", "Warm", "", "", 999, ts, ts))

	it, err := repo.Update(context.Background(), 5, ItemUpdate{Title: &title, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Cap", it.Title)
	assert.Equal(t, uint32(999), it.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM items ORDER BY created_at DESC")).
		WillReturnRows(itemRows().
			AddRow(2, 3, "Cap", "", "", "", 999, ts, ts).
			AddRow(1, 4, "Hat", "", "", "", 1999, ts, ts))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(4), items[1].OwnerID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ListEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM items ORDER BY created_at DESC")).
		WillReturnRows(itemRows())

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_DeleteByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewItemRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items WHERE id = ?")).
		WithArgs(uint64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByID(context.Background(), 5))
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), 6), ErrItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
