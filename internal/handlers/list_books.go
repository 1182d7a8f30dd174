package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
)

// BookLister defines the interface that the book listing service must implement.
type BookLister interface {
	List(ctx context.Context) ([]models.BookDB, error)
}

// NewListBooksHandler returns an HTTP handler listing every book record.
// @Summary List all books
// @Description Returns every book record, unfiltered and unpaginated
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.BookDB "All book records"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books [get]
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(books)
	}
}
