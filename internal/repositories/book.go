package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
)

type BookReadRepository struct {
	db *sqlx.DB
}

func NewBookReadRepository(db *sqlx.DB) *BookReadRepository {
	return &BookReadRepository{db: db}
}

// GetByID returns the book with the given id, or nil if none exists.
func (r *BookReadRepository) GetByID(ctx context.Context, id int64) (*models.BookDB, error) {
	const query = `
		SELECT id, title, author, year_published, view_count
		FROM books
		WHERE id = $1
	`

	var book models.BookDB
	err := r.db.GetContext(ctx, &book, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// GetByTitleAndAuthor returns the first book matching the (title, author)
// pair, or nil if none exists.
func (r *BookReadRepository) GetByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookDB, error) {
	const query = `
		SELECT id, title, author, year_published, view_count
		FROM books
		WHERE title = $1 AND author = $2
		LIMIT 1
	`

	var book models.BookDB
	err := r.db.GetContext(ctx, &book, query, title, author)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{title, author},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// List returns every book record, unfiltered.
func (r *BookReadRepository) List(ctx context.Context) ([]models.BookDB, error) {
	const query = `
		SELECT id, title, author, year_published, view_count
		FROM books
		ORDER BY id
	`

	books := []models.BookDB{}
	err := r.db.SelectContext(ctx, &books, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return books, nil
}

// ListByIDs returns all books whose id appears in ids.
// Ids with no matching row are silently absent from the result.
func (r *BookReadRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.BookDB, error) {
	query, args, err := sqlx.In(`
		SELECT id, title, author, year_published, view_count
		FROM books
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	books := []models.BookDB{}
	err = r.db.SelectContext(ctx, &books, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"rows", len(books),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return books, nil
}

// ListPopular returns a page of book titles ordered by descending view count.
func (r *BookReadRepository) ListPopular(ctx context.Context, offset, limit int) ([]models.BookTitleDB, error) {
	const query = `
		SELECT title
		FROM books
		ORDER BY view_count DESC
		OFFSET $1 LIMIT $2
	`

	titles := []models.BookTitleDB{}
	err := r.db.SelectContext(ctx, &titles, query, offset, limit)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{offset, limit},
		"rows", len(titles),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return titles, nil
}

type BookWriteRepository struct {
	db *sqlx.DB
}

func NewBookWriteRepository(db *sqlx.DB) *BookWriteRepository {
	return &BookWriteRepository{db: db}
}

// Save inserts a single book and returns its store-assigned id.
// The view count is stored as given.
func (r *BookWriteRepository) Save(ctx context.Context, book models.BookDB) (int64, error) {
	const query = `
		INSERT INTO books (title, author, year_published, view_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	args := []any{book.Title, book.Author, book.YearPublished, book.ViewCount}

	var id int64
	err := r.db.GetContext(ctx, &id, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return id, nil
}

// SaveAll inserts all books inside one transaction and returns them with
// their assigned ids. Any failure rolls the whole batch back.
func (r *BookWriteRepository) SaveAll(ctx context.Context, books []models.BookDB) ([]models.BookDB, error) {
	const query = `
		INSERT INTO books (title, author, year_published, view_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return nil, err
	}

	created := make([]models.BookDB, 0, len(books))
	for _, book := range books {
		var id int64
		if err := tx.GetContext(ctx, &id, query, book.Title, book.Author, book.YearPublished, book.ViewCount); err != nil {
			tx.Rollback()
			logger.Log.Errorw("bulk insert failed, rolled back",
				"title", book.Title,
				"author", book.Author,
				"error", err,
			)
			return nil, err
		}
		book.ID = id
		created = append(created, book)
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit bulk insert", "error", err)
		return nil, err
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(created),
		"error", nil,
	)

	return created, nil
}

// Update fully replaces the book with the given id and returns the number
// of rows affected.
func (r *BookWriteRepository) Update(ctx context.Context, book models.BookDB) (int64, error) {
	const query = `
		UPDATE books
		SET title = $2, author = $3, year_published = $4, view_count = $5
		WHERE id = $1
	`
	args := []any{book.ID, book.Title, book.Author, book.YearPublished, book.ViewCount}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}

// Delete removes the book with the given id.
func (r *BookWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// DeleteMany removes all books whose id appears in ids in one statement
// and returns the number of rows removed.
func (r *BookWriteRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	query, args, err := sqlx.In(`DELETE FROM books WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	query = r.db.Rebind(query)

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}

// IncrementViews bumps the view counter by one in a single statement and
// returns the new count. Concurrent readers each get a distinct count.
func (r *BookWriteRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	const query = `
		UPDATE books
		SET view_count = view_count + 1
		WHERE id = $1
		RETURNING view_count
	`

	var viewCount int64
	err := r.db.GetContext(ctx, &viewCount, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", viewCount,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return viewCount, nil
}
