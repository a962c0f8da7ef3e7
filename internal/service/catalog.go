// Package service implements the business operations of the store on top of
// the persistence gateway.
package service

import (
	"context"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
	"github.com/matiasrv/tienda-api/internal/validate"
)

// Catalog creates and lists products.
type Catalog struct {
	store store.Store
}

func NewCatalog(st store.Store) *Catalog {
	return &Catalog{store: st}
}

// Create validates the input and persists a new product, returning its id.
func (c *Catalog) Create(ctx context.Context, in model.ProductInput) (int64, error) {
	if issues := validate.Product(in); len(issues) > 0 {
		return 0, &model.ValidationError{Issues: issues}
	}
	return c.store.CreateProduct(ctx, model.NewProduct{
		Nombre:      in.Nombre,
		Precio:      *in.Precio,
		Categoria:   in.Categoria,
		Stock:       *in.Stock,
		Descripcion: in.Descripcion,
	})
}

// List returns all products, most recently created first.
func (c *Catalog) List(ctx context.Context) ([]model.Product, error) {
	return c.store.ListProducts(ctx)
}
