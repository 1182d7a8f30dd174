package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/services"
)

// BookBulkRemover defines the interface that the bulk deletion service must implement.
type BookBulkRemover interface {
	BulkDelete(ctx context.Context, ids []int64) error
}

// NewBulkDeleteBooksHandler returns an HTTP handler removing a set of books
// in one store operation. Ids with no matching record are silently ignored.
// @Summary Bulk delete books
// @Description Removes all books matching the given ids; unmatched ids are ignored
// @Tags books
// @Accept json
// @Security BearerAuth
// @Param ids body []int true "Book IDs to delete"
// @Success 204 "Matching books deleted"
// @Failure 400 {object} handlers.ErrorResponse "Empty or missing id list"
// @Failure 404 {object} handlers.ErrorResponse "No books found with the given ids"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books/bulk [delete]
func NewBulkDeleteBooksHandler(svc BookBulkRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids []int64

		if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := svc.BulkDelete(r.Context(), ids); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyIDList):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "No book IDs provided",
				})
			case errors.Is(err, services.ErrBookNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "No books found with the given IDs",
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

		w.WriteHeader(http.StatusNoContent)
	}
}
