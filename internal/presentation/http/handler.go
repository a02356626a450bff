package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appOrder "github.com/mercadinho-dev/gostore/internal/application/order"
	domainOrder "github.com/mercadinho-dev/gostore/internal/domain/order"
	"github.com/mercadinho-dev/gostore/internal/observability"
)

const componentHTTPHandler = "http_server"

// orderCreator is the slice of the order use case the handler needs.
type orderCreator interface {
	Execute(ctx context.Context, in appOrder.CreateOrderInput) (*domainOrder.Order, error)
}

type Handler struct {
	orders orderCreator
	log    observability.Logger
	tel    observability.Observability
}

func NewHandler(orders orderCreator, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		orders: orders,
		log:    tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:    tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(ObservabilityMiddleware(h.log, h.tel))

	r.Post("/orders", h.handleCreateOrder)
	r.Get("/health", h.handleHealth)
	return r
}

type createOrderRequest struct {
	CustomerID string                `json:"customer_id"`
	Products   []orderProductRequest `json:"products"`
}

type orderProductRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Products   []orderProductResponse `json:"products"`
	CreatedAt  time.Time              `json:"created_at"`
}

type orderProductResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	products := make([]appOrder.ProductInput, len(req.Products))
	for i, p := range req.Products {
		products[i] = appOrder.ProductInput{ID: p.ID, Quantity: p.Quantity}
	}

	created, err := h.orders.Execute(r.Context(), appOrder.CreateOrderInput{
		CustomerID: req.CustomerID,
		Products:   products,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	products := make([]orderProductResponse, len(o.Products))
	for i, p := range o.Products {
		products[i] = orderProductResponse{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			Price:     p.Price,
		}
	}

	customerID := ""
	if o.Customer != nil {
		customerID = o.Customer.ID
	}

	return orderResponse{
		ID:         o.ID,
		CustomerID: customerID,
		Products:   products,
		CreatedAt:  o.CreatedAt,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *appOrder.ProductNotFoundError
	var shortStock *appOrder.InsufficientStockError

	switch {
	case errors.Is(err, appOrder.ErrCustomerNotFound),
		errors.Is(err, appOrder.ErrNoProductsFound),
		errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &shortStock):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
