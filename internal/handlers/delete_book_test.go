package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/spolyakova/book-catalog/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestDeleteBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookRemover(ctrl)

	r := chi.NewRouter()
	r.Delete("/books/{id:[0-9]+}", NewDeleteBookHandler(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().
			Delete(gomock.Any(), int64(5)).
			Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/books/5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.EXPECT().
			Delete(gomock.Any(), int64(99)).
			Return(services.ErrBookNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/books/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
