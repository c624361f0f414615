package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/todolist/internal/domain"
)

func TestCategoryItemRepositoryLink(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "category_items" \("category_id","item_id"\)`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	link, err := repo.Link(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryItem{ID: 10, CategoryID: 1, ItemID: 5}, link)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryItemRepositoryLinkUnknownCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "category_items"`).
		WithArgs(int64(77), int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := repo.Link(context.Background(), 77, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "category not found", err.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryItemRepositoryExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryItemRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "category_items" WHERE category_id = \$1 AND item_id = \$2`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "category_items"`).
		WithArgs(int64(2), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryItemRepositoryDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryItemRepository(db)

	t.Run("existing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "category_items" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "item_id"}).AddRow(10, 1, 5))
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "category_items" WHERE id = \$1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		link, err := repo.Delete(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryItem{ID: 10, CategoryID: 1, ItemID: 5}, link)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "category_items" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "item_id"}))

		_, err := repo.Delete(context.Background(), 11)
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
