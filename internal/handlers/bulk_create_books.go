package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
	"github.com/spolyakova/book-catalog/internal/services"
)

// BookBulkCreator defines the interface that the bulk creation service must implement.
type BookBulkCreator interface {
	BulkCreate(ctx context.Context, books []models.BookDB) ([]models.BookDB, error)
}

// NewBulkCreateBooksHandler returns an HTTP handler inserting a batch of
// books atomically. Validation failures reject the batch before any row is
// written; an insert or commit failure after the transaction begins rolls
// the whole batch back and surfaces as a server error.
// @Summary Bulk create books
// @Description Inserts all given books inside one transaction; any validation failure or duplicate rejects the whole batch
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookRequests body []handlers.BookRequest true "Books to create"
// @Success 201 {array} models.BookDB "All created books"
// @Failure 400 {object} handlers.ErrorResponse "Empty list, missing fields or duplicate title/author"
// @Failure 500 {object} handlers.ErrorResponse "Transactional failure, nothing persisted"
// @Router /books/bulk [post]
func NewBulkCreateBooksHandler(svc BookBulkCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reqs []BookRequest

		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		books := make([]models.BookDB, 0, len(reqs))
		for _, req := range reqs {
			books = append(books, req.toModel())
		}

		created, err := svc.BulkCreate(r.Context(), books)
		if err != nil {
			var dup *services.BookAlreadyExistsError
			switch {
			case errors.Is(err, services.ErrEmptyBookList):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "No books provided",
				})
			case errors.Is(err, services.ErrMissingTitleOrAuthor):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Each book must have a title and author",
				})
			case errors.As(err, &dup):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: dup.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error while adding books",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}
