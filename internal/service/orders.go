package service

import (
	"context"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
	"github.com/matiasrv/tienda-api/internal/validate"
)

// Orders places and lists orders.
type Orders struct {
	store store.Store
}

func NewOrders(st store.Store) *Orders {
	return &Orders{store: st}
}

// CreateResult is the outcome of a placed order.
type CreateResult struct {
	ID         int64 `json:"id"`
	MontoTotal int64 `json:"monto_total"`
}

// Create validates the input and runs the order transaction: the referenced
// customer and product must exist, stock must cover the quantity, and the
// order insert and stock decrement commit atomically in the store.
func (o *Orders) Create(ctx context.Context, in model.OrderInput) (CreateResult, error) {
	if issues := validate.Order(in); len(issues) > 0 {
		return CreateResult{}, &model.ValidationError{Issues: issues}
	}
	id, monto, err := o.store.CreateOrder(ctx, model.NewOrder{
		ClienteID:  *in.ClienteID,
		ProductoID: *in.ProductoID,
		Cantidad:   *in.Cantidad,
	})
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{ID: id, MontoTotal: monto}, nil
}

// List returns all orders with customer and product names, most recent first.
func (o *Orders) List(ctx context.Context) ([]model.Order, error) {
	return o.store.ListOrders(ctx)
}
