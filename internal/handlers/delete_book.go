package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/services"
)

// BookRemover defines the interface that the book deletion service must implement.
type BookRemover interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteBookHandler returns an HTTP handler for single book deletion.
// @Summary Delete a book
// @Description Removes the book with the given id
// @Tags books
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204 "Book deleted"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books/{id} [delete]
func NewDeleteBookHandler(svc BookRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Book not found",
			})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
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

		w.WriteHeader(http.StatusNoContent)
	}
}
