package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
	"github.com/spolyakova/book-catalog/internal/services"
)

// PopularBookLister defines the interface that the popularity listing service must implement.
type PopularBookLister interface {
	Popular(ctx context.Context, pageNumber, pageSize int) ([]models.BookTitleDB, error)
}

// Defaults applied when a paging parameter is absent.
const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

// NewPopularBooksHandler returns an HTTP handler listing book titles by
// descending view count with offset/limit pagination.
// @Summary List popular books
// @Description Returns a page of book titles ordered by descending view count
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number, starting at 1" default(1)
// @Param pageSize query int false "Page size, 1 to 100" default(10)
// @Success 200 {array} models.BookTitleDB "Page of book titles"
// @Failure 400 {object} handlers.ErrorResponse "Out-of-range paging parameters"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books/popular [get]
func NewPopularBooksHandler(svc PopularBookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber, err := queryIntOrDefault(r, "pageNumber", defaultPageNumber)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "pageNumber must be an integer",
			})
			return
		}

		pageSize, err := queryIntOrDefault(r, "pageSize", defaultPageSize)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "pageSize must be an integer",
			})
			return
		}

		titles, err := svc.Popular(r.Context(), pageNumber, pageSize)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidPageNumber),
				errors.Is(err, services.ErrInvalidPageSize):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: err.Error(),
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
		json.NewEncoder(w).Encode(titles)
	}
}

func queryIntOrDefault(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
