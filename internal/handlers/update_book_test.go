package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/spolyakova/book-catalog/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestUpdateBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookUpdater(ctrl)

	r := chi.NewRouter()
	r.Put("/books/{id:[0-9]+}", NewUpdateBookHandler(mockSvc))

	doPut := func(path string, body interface{}) *httptest.ResponseRecorder {
		var bodyBytes []byte
		switch v := body.(type) {
		case string:
			bodyBytes = []byte(v)
		default:
			bodyBytes, _ = json.Marshal(v)
		}
		req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(bodyBytes))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	book := BookRequest{ID: 5, Title: "Dune", Author: "Frank Herbert", YearPublished: 1965}

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().
			Update(gomock.Any(), book.toModel()).
			Return(nil)

		w := doPut("/books/5", book)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("id mismatch", func(t *testing.T) {
		w := doPut("/books/6", book)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "path id does not match body id", resp.Error)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := doPut("/books/5", "{invalid")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing row", func(t *testing.T) {
		mockSvc.EXPECT().
			Update(gomock.Any(), book.toModel()).
			Return(services.ErrBookNotFound)

		w := doPut("/books/5", book)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
