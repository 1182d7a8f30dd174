package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spolyakova/book-catalog/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestListBooksHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookLister(ctrl)

	t.Run("success", func(t *testing.T) {
		books := []models.BookDB{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", YearPublished: 1965, ViewCount: 20},
			{ID: 2, Title: "Hyperion", Author: "Dan Simmons", YearPublished: 1989, ViewCount: 5},
		}
		mockSvc.EXPECT().
			List(gomock.Any()).
			Return(books, nil)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		NewListBooksHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []models.BookDB
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, books, resp)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().
			List(gomock.Any()).
			Return(nil, errors.New("database error"))

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		NewListBooksHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
