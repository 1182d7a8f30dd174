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

// BookUpdater defines the interface that the book update service must implement.
type BookUpdater interface {
	Update(ctx context.Context, book models.BookDB) error
}

// NewUpdateBookHandler returns an HTTP handler for full book replacement.
// The path id must equal the body id.
// @Summary Update a book
// @Description Fully replaces the book with the given id
// @Tags books
// @Accept json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param bookRequest body handlers.BookRequest true "Replacement record"
// @Success 204 "Book updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid body or id mismatch"
// @Failure 404 {object} handlers.ErrorResponse "Book not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books/{id} [put]
func NewUpdateBookHandler(svc BookUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Book not found",
			})
			return
		}

		var req BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if id != req.ID {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "path id does not match body id",
			})
			return
		}

		if err := svc.Update(r.Context(), req.toModel()); err != nil {
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
