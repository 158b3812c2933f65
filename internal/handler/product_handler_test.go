package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var adminUser = &model.User{ID: "U-admin", Email: "admin@example.com", Role: model.RoleAdmin}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	testProducts := []model.Product{
		{ID: "P001", Name: "Product 1", Price: 10.00, Stock: 5, Category: "Cat1", CreatedAt: time.Now()},
		{ID: "P002", Name: "Product 2", Price: 20.00, Stock: 3, Category: "Cat2", CreatedAt: time.Now()},
	}

	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(m *MockCatalogService)
		expectedStatus int
	}{
		{
			name:        "Default pagination",
			queryParams: "",
			setupMock: func(m *MockCatalogService) {
				m.On("List", mock.Anything, 20, 0).Return(testProducts, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Custom pagination",
			queryParams: "?limit=5&offset=10",
			setupMock: func(m *MockCatalogService) {
				m.On("List", mock.Anything, 5, 10).Return(testProducts, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Search query",
			queryParams: "?q=walnut",
			setupMock: func(m *MockCatalogService) {
				m.On("Search", mock.Anything, "walnut").Return(testProducts[:1], nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Category filter",
			queryParams: "?category=Cat1",
			setupMock: func(m *MockCatalogService) {
				m.On("ListByCategory", mock.Anything, "Cat1").Return(testProducts[:1], nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Featured filter",
			queryParams: "?featured=true",
			setupMock: func(m *MockCatalogService) {
				m.On("ListFeatured", mock.Anything).Return(testProducts, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid limit parameter",
			queryParams:    "?limit=invalid",
			setupMock:      func(m *MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Service error",
			queryParams: "",
			setupMock: func(m *MockCatalogService) {
				m.On("List", mock.Anything, 20, 0).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCatalogService)
			tt.setupMock(mockService)
			h := NewProductHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			h.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		product := &model.Product{ID: "P001", Name: "Product 1", Price: 10.00}
		mockService.On("Get", mock.Anything, "P001").Return(product, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
		req.SetPathValue("id", "P001")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got model.Product
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "P001", got.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		mockService.On("Get", mock.Anything, "P999").Return(nil, model.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P999", nil)
		req.SetPathValue("id", "P999")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, model.ErrCodeProductNotFound, body.Error)
	})
}

func TestProductHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	payload := model.ProductRequest{Name: "New Product", Price: 19.99, Stock: 10, Category: "office"}

	t.Run("Admin creates product", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		created := &model.Product{ID: "P-new", Name: payload.Name}
		mockService.On("Add", mock.Anything, adminUser, &payload).Return(created, nil)

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		req = req.WithContext(auth.WithUser(req.Context(), adminUser))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Anonymous caller is forbidden", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		mockService.On("Add", mock.Anything, (*model.User)(nil), &payload).
			Return(nil, model.ErrForbidden)

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Malformed JSON rejected", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success returns no content", func(t *testing.T) {
		mockService := new(MockCatalogService)
		h := NewProductHandler(mockService, logger)

		mockService.On("Delete", mock.Anything, adminUser, "P001").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/products/P001", nil)
		req.SetPathValue("id", "P001")
		req = req.WithContext(auth.WithUser(req.Context(), adminUser))
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
