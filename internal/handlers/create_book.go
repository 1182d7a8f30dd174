package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
)

// BookCreator defines the interface that the book creation service must implement.
type BookCreator interface {
	Create(ctx context.Context, book models.BookDB) (*models.BookDB, error)
}

// BookRequest represents the JSON body for creating or replacing a book
// swagger:model BookRequest
type BookRequest struct {
	// Identifier, required on update only
	ID int64 `json:"id"`

	// Title
	// required: true
	// default: Dune
	Title string `json:"title"`

	// Author
	// required: true
	// default: Frank Herbert
	Author string `json:"author"`

	// Year of publication
	// default: 1965
	YearPublished int `json:"yearPublished"`

	// Initial view count
	// default: 0
	ViewCount int64 `json:"viewCount"`
}

func (req BookRequest) toModel() models.BookDB {
	return models.BookDB{
		ID:            req.ID,
		Title:         req.Title,
		Author:        req.Author,
		YearPublished: req.YearPublished,
		ViewCount:     req.ViewCount,
	}
}

// NewCreateBookHandler returns an HTTP handler for single book creation.
// @Summary Create a book
// @Description Inserts one book record as given, including any client-supplied view count
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookRequest body handlers.BookRequest true "Book to create"
// @Success 201 {object} models.BookDB "Created book"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /books [post]
func NewCreateBookHandler(svc BookCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		created, err := svc.Create(r.Context(), req.toModel())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/v1/books/%d", created.ID))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}
