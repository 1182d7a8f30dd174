package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
	"github.com/spolyakova/book-catalog/internal/services"
)

// BookGetter defines the interface that the book detail service must implement.
type BookGetter interface {
	Get(ctx context.Context, id int64) (*models.BookDetails, error)
}

// NewGetBookHandler returns an HTTP handler for a single book lookup.
// Each successful call counts as one view and the popularity score is
// recomputed from the new view count.
// @Summary Get a book by id
// @Description Returns one book with its popularity score; increments the view counter by exactly one
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} models.BookDetails "Book with popularity score"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books/{id} [get]
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Book not found",
			})
			return
		}

		details, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBookNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Book not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(details)
	}
}
