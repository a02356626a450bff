package order

import (
	"context"
	"errors"
	"time"

	"github.com/mercadinho-dev/gostore/internal/domain/customer"
	domain "github.com/mercadinho-dev/gostore/internal/domain/order"
	"github.com/mercadinho-dev/gostore/internal/domain/product"
	"github.com/mercadinho-dev/gostore/internal/observability"
	"github.com/mercadinho-dev/gostore/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService       = "order-service"
	useCaseOrderCreate = "order.create"
	spanPrefix         = "UC."

	peerOrderStore = "order-store"
	peerInventory  = "inventory"

	endpointOrderCreate    = "order.create"
	endpointUpdateQuantity = "product.update_quantity"
)

// ProductInput is one requested (product, quantity) pair. Duplicate ids
// are allowed and processed independently, never merged.
type ProductInput struct {
	ID       string
	Quantity int
}

type CreateOrderInput struct {
	CustomerID string
	Products   []ProductInput
}

// CreateOrderUseCase validates an order request against customer and
// inventory state, builds priced line items, persists the order, and
// decrements stock in one bulk update.
//
// Decrements are computed from the inventory snapshot read during
// validation, never re-read, so concurrent orders against the same product
// can oversell; callers needing stronger guarantees must coordinate at the
// inventory store. Requested quantities are not checked for positivity;
// the availability comparison is the only quantity guard.
type CreateOrderUseCase struct {
	customers customer.Repository
	products  product.Repository
	orders    domain.Repository
	tel       observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}

	extCounter   observability.Counter   // external_requests_total{peer,endpoint,outcome}
	extHistogram observability.Histogram // external_request_duration_seconds{peer,endpoint}
}

// NewCreateOrderUseCase wires the three collaborators required to execute
// the workflow. tel may be nil, in which case nothing is recorded.
func NewCreateOrderUseCase(
	customers customer.Repository,
	products product.Repository,
	orders domain.Repository,
	tel observability.Observability,
) *CreateOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}

	log := tel.Logger().With(observability.F("service", orderService))
	metrics := tel.Metrics()

	return &CreateOrderUseCase{
		customers:    customers,
		products:     products,
		orders:       orders,
		tel:          tel,
		log:          log,
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

// Execute runs the order-creation workflow. Any validation failure aborts
// before persistence; collaborator failures propagate unchanged.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, in CreateOrderInput) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCaseOrderCreate))

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+"CreateOrder",
		attribute.String("use_case", useCaseOrderCreate),
		attribute.String("order.customer_id", in.CustomerID),
		attribute.Int("order.lines", len(in.Products)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseOrderCreate),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(lat,
			observability.L("use_case", useCaseOrderCreate),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	cust, err := uc.customers.FindByID(ctx, in.CustomerID)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		outcome, statusText = "error", "CUSTOMER_NOT_FOUND"
		return nil, ErrCustomerNotFound
	case err != nil:
		outcome, statusText = "error", "CUSTOMER_LOOKUP_FAILED"
		return nil, err
	}

	ids := make([]string, len(in.Products))
	for i, p := range in.Products {
		ids[i] = p.ID
	}

	// Inventory snapshot: read once here, reused for the existence and
	// availability checks, pricing, and the decrement computation below.
	snapshot, err := uc.products.FindAllByID(ctx, ids)
	if err != nil {
		outcome, statusText = "error", "PRODUCT_LOOKUP_FAILED"
		return nil, err
	}
	if len(snapshot) == 0 {
		outcome, statusText = "error", "NO_PRODUCTS_FOUND"
		return nil, ErrNoProductsFound
	}

	resolved := make(map[string]struct{}, len(snapshot))
	for _, p := range snapshot {
		resolved[p.ID] = struct{}{}
	}
	for _, p := range in.Products {
		if _, ok := resolved[p.ID]; !ok {
			outcome, statusText = "error", "PRODUCT_NOT_FOUND"
			return nil, &ProductNotFoundError{ProductID: p.ID}
		}
	}

	for _, p := range in.Products {
		rec, _ := findProduct(snapshot, p.ID)
		if p.Quantity > rec.Quantity {
			outcome, statusText = "error", "INSUFFICIENT_STOCK"
			return nil, &InsufficientStockError{ProductID: p.ID, Requested: p.Quantity}
		}
	}

	// One line item per request entry, in request order; duplicates stay
	// duplicates, each priced from the same snapshot record.
	items := make([]domain.OrderProduct, len(in.Products))
	for i, p := range in.Products {
		rec, _ := findProduct(snapshot, p.ID)
		items[i] = domain.OrderProduct{
			ProductID: p.ID,
			Quantity:  p.Quantity,
			Price:     rec.Price,
		}
	}

	var created *domain.Order
	err = uc.trackExternal(peerOrderStore, endpointOrderCreate, func() error {
		var createErr error
		created, createErr = uc.orders.Create(ctx, domain.CreateParams{
			Customer: cust,
			Products: items,
		})
		return createErr
	})
	if err != nil {
		outcome, statusText = "error", "ORDER_CREATE_FAILED"
		return nil, err
	}

	span.AddEvent("order.created",
		trace.WithAttributes(attribute.String("order.id", created.ID)),
	)

	// One decrement per persisted line item, against the snapshot.
	updates := make([]product.QuantityUpdate, len(created.Products))
	for i, op := range created.Products {
		rec, _ := findProduct(snapshot, op.ProductID)
		updates[i] = product.QuantityUpdate{
			ID:       op.ProductID,
			Quantity: rec.Quantity - op.Quantity,
		}
	}

	err = uc.trackExternal(peerInventory, endpointUpdateQuantity, func() error {
		return uc.products.UpdateQuantity(ctx, updates)
	})
	if err != nil {
		// The order is already persisted at this point; stock stays stale.
		outcome, statusText = "error", "INVENTORY_UPDATE_FAILED"
		logger.Error("inventory_update_failed",
			observability.F("order_id", created.ID),
			observability.F("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("order_created",
		observability.F("order_id", created.ID),
		observability.F("customer_id", in.CustomerID),
		observability.F("lines", len(created.Products)),
	)

	return created, nil
}

func (uc *CreateOrderUseCase) trackExternal(peer, endpoint string, fn func() error) error {
	start := time.Now()
	err := fn()

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	uc.extCounter.Add(1,
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
		observability.L("outcome", outcome),
	)
	uc.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
	)
	return err
}

// findProduct returns the first snapshot record with the given id.
func findProduct(snapshot []product.Product, id string) (product.Product, bool) {
	for _, p := range snapshot {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}
