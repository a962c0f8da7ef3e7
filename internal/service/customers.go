package service

import (
	"context"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
	"github.com/matiasrv/tienda-api/internal/validate"
)

// Customers registers and lists customers.
type Customers struct {
	store store.Store
}

func NewCustomers(st store.Store) *Customers {
	return &Customers{store: st}
}

// Create validates the input, rejects already-registered emails, and persists
// a new customer. The store's unique constraint backs the pre-insert check
// against concurrent registrations.
func (c *Customers) Create(ctx context.Context, in model.CustomerInput) (int64, error) {
	if issues := validate.Customer(in); len(issues) > 0 {
		return 0, &model.ValidationError{Issues: issues}
	}
	exists, err := c.store.CustomerEmailExists(ctx, in.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, model.ErrDuplicateEmail
	}
	return c.store.CreateCustomer(ctx, model.NewCustomer{
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
	})
}

// List returns all customers, most recently registered first.
func (c *Customers) List(ctx context.Context) ([]model.Customer, error) {
	return c.store.ListCustomers(ctx)
}
