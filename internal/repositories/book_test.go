package repositories

import (
	"context"
	"testing"

	"github.com/spolyakova/book-catalog/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBookRepositories_CRUD(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewBookReadRepository(db)
	writeRepo := NewBookWriteRepository(db)
	ctx := context.Background()

	dune := models.BookDB{Title: "Dune", Author: "Frank Herbert", YearPublished: 1965}
	hyperion := models.BookDB{Title: "Hyperion", Author: "Dan Simmons", YearPublished: 1989, ViewCount: 7}

	duneID, err := writeRepo.Save(ctx, dune)
	assert.NoError(t, err)
	assert.NotZero(t, duneID)

	hyperionID, err := writeRepo.Save(ctx, hyperion)
	assert.NoError(t, err)

	t.Run("GetByID", func(t *testing.T) {
		book, err := readRepo.GetByID(ctx, duneID)
		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, int64(0), book.ViewCount)

		// Client-supplied view count stored as given
		book, err = readRepo.GetByID(ctx, hyperionID)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), book.ViewCount)
	})

	t.Run("GetByID_Missing", func(t *testing.T) {
		book, err := readRepo.GetByID(ctx, 9999)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("GetByTitleAndAuthor", func(t *testing.T) {
		book, err := readRepo.GetByTitleAndAuthor(ctx, "Dune", "Frank Herbert")
		assert.NoError(t, err)
		assert.NotNil(t, book)
		assert.Equal(t, duneID, book.ID)

		book, err = readRepo.GetByTitleAndAuthor(ctx, "Dune", "Someone Else")
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("List", func(t *testing.T) {
		books, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("IncrementViews", func(t *testing.T) {
		// N calls bump the counter by exactly N
		for want := int64(1); want <= 3; want++ {
			count, err := writeRepo.IncrementViews(ctx, duneID)
			assert.NoError(t, err)
			assert.Equal(t, want, count)
		}

		book, err := readRepo.GetByID(ctx, duneID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), book.ViewCount)
	})

	t.Run("Update", func(t *testing.T) {
		rows, err := writeRepo.Update(ctx, models.BookDB{
			ID: duneID, Title: "Dune Messiah", Author: "Frank Herbert", YearPublished: 1969, ViewCount: 3,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		book, err := readRepo.GetByID(ctx, duneID)
		assert.NoError(t, err)
		assert.Equal(t, "Dune Messiah", book.Title)
		assert.Equal(t, 1969, book.YearPublished)
	})

	t.Run("Update_MissingRow", func(t *testing.T) {
		rows, err := writeRepo.Update(ctx, models.BookDB{ID: 9999, Title: "Ghost", Author: "Nobody"})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("ListByIDs_IgnoresUnmatched", func(t *testing.T) {
		books, err := readRepo.ListByIDs(ctx, []int64{duneID, 9999})
		assert.NoError(t, err)
		assert.Len(t, books, 1)
		assert.Equal(t, duneID, books[0].ID)
	})

	t.Run("DeleteMany", func(t *testing.T) {
		rows, err := writeRepo.DeleteMany(ctx, []int64{hyperionID, 9999})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, writeRepo.Delete(ctx, duneID))

		book, err := readRepo.GetByID(ctx, duneID)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})
}

func TestBookWriteRepository_SaveAll(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewBookReadRepository(db)
	writeRepo := NewBookWriteRepository(db)
	ctx := context.Background()

	batch := []models.BookDB{
		{Title: "Dune", Author: "Frank Herbert", YearPublished: 1965},
		{Title: "Hyperion", Author: "Dan Simmons", YearPublished: 1989},
		{Title: "Neuromancer", Author: "William Gibson", YearPublished: 1984},
	}

	created, err := writeRepo.SaveAll(ctx, batch)
	assert.NoError(t, err)
	assert.Len(t, created, 3)
	for i, book := range created {
		assert.NotZero(t, book.ID)
		assert.Equal(t, batch[i].Title, book.Title)
	}

	books, err := readRepo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestBookReadRepository_ListPopular(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewBookReadRepository(db)
	writeRepo := NewBookWriteRepository(db)
	ctx := context.Background()

	// 25 books with distinct view counts 1..25
	for i := 1; i <= 25; i++ {
		_, err := writeRepo.Save(ctx, models.BookDB{
			Title:         "Book " + string(rune('A'+i-1)),
			Author:        "Author",
			YearPublished: 2000,
			ViewCount:     int64(i),
		})
		assert.NoError(t, err)
	}

	// Page 2 of size 10 returns ranks 11-20 by descending view count,
	// i.e. counts 15 down to 6.
	titles, err := readRepo.ListPopular(ctx, 10, 10)
	assert.NoError(t, err)
	assert.Len(t, titles, 10)
	assert.Equal(t, "Book "+string(rune('A'+14)), titles[0].Title) // view count 15
	assert.Equal(t, "Book "+string(rune('A'+5)), titles[9].Title)  // view count 6

	// Final page is short
	titles, err = readRepo.ListPopular(ctx, 20, 10)
	assert.NoError(t, err)
	assert.Len(t, titles, 5)
}
