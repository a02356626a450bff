package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appOrder "github.com/mercadinho-dev/gostore/internal/application/order"
	"github.com/mercadinho-dev/gostore/internal/domain/customer"
	domainOrder "github.com/mercadinho-dev/gostore/internal/domain/order"
)

type stubOrderCreator struct {
	lastInput appOrder.CreateOrderInput
	result    *domainOrder.Order
	err       error
}

func (s *stubOrderCreator) Execute(_ context.Context, in appOrder.CreateOrderInput) (*domainOrder.Order, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func postOrders(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateOrder_Success(t *testing.T) {
	stub := &stubOrderCreator{
		result: &domainOrder.Order{
			ID:       "order-1",
			Customer: &customer.Customer{ID: "c1", Name: "Demo Customer"},
			Products: []domainOrder.OrderProduct{
				{ProductID: "p1", Quantity: 3, Price: 10},
			},
			CreatedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		},
	}
	router := NewHandler(stub, nil).Router()

	rec := postOrders(t, router, `{"customer_id":"c1","products":[{"id":"p1","quantity":3}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "c1", stub.lastInput.CustomerID)
	require.Len(t, stub.lastInput.Products, 1)
	assert.Equal(t, appOrder.ProductInput{ID: "p1", Quantity: 3}, stub.lastInput.Products[0])

	var resp struct {
		ID         string `json:"id"`
		CustomerID string `json:"customer_id"`
		Products   []struct {
			ProductID string  `json:"product_id"`
			Quantity  int     `json:"quantity"`
			Price     float64 `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, "c1", resp.CustomerID)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p1", resp.Products[0].ProductID)
	assert.Equal(t, 3, resp.Products[0].Quantity)
	assert.Equal(t, 10.0, resp.Products[0].Price)
}

func TestHandleCreateOrder_ErrorMapping(t *testing.T) {
	testCases := map[string]struct {
		err            error
		expectedStatus int
	}{
		"customer not found": {
			err:            appOrder.ErrCustomerNotFound,
			expectedStatus: http.StatusNotFound,
		},
		"no products found": {
			err:            appOrder.ErrNoProductsFound,
			expectedStatus: http.StatusNotFound,
		},
		"product not found": {
			err:            &appOrder.ProductNotFoundError{ProductID: "missing"},
			expectedStatus: http.StatusNotFound,
		},
		"insufficient stock": {
			err:            &appOrder.InsufficientStockError{ProductID: "p1", Requested: 6},
			expectedStatus: http.StatusBadRequest,
		},
		"collaborator failure": {
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			router := NewHandler(&stubOrderCreator{err: tc.err}, nil).Router()

			rec := postOrders(t, router, `{"customer_id":"c1","products":[{"id":"p1","quantity":6}]}`)

			assert.Equal(t, tc.expectedStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.err.Error(), resp["error"])
		})
	}
}

func TestHandleCreateOrder_InvalidJSON(t *testing.T) {
	router := NewHandler(&stubOrderCreator{}, nil).Router()

	rec := postOrders(t, router, `{"customer_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postOrders(t, router, `{"customer_id":"c1","unknown_field":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	router := NewHandler(&stubOrderCreator{}, nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
