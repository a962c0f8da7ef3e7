// Package store implements the persistence gateway of the service.
package store

import (
	"context"

	"github.com/matiasrv/tienda-api/internal/model"
)

// Store is the persistence gateway. Implementations execute parameterized
// statements only and surface failures as *model.StorageError, never as
// driver-specific error shapes. Business conditions map to the model
// sentinels (ErrCustomerNotFound, ErrProductNotFound, ErrInsufficientStock,
// ErrDuplicateEmail).
type Store interface {
	// CreateProduct inserts a product and returns its generated id.
	CreateProduct(ctx context.Context, p model.NewProduct) (int64, error)
	// ListProducts returns all products, most recently created first.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// CreateCustomer inserts a customer and returns its generated id. The
	// email unique constraint is the backstop against concurrent inserts;
	// a conflict maps to model.ErrDuplicateEmail.
	CreateCustomer(ctx context.Context, c model.NewCustomer) (int64, error)
	// CustomerEmailExists reports whether a customer with the email exists.
	CustomerEmailExists(ctx context.Context, email string) (bool, error)
	// ListCustomers returns all customers, most recently created first.
	ListCustomers(ctx context.Context) ([]model.Customer, error)

	// CreateOrder atomically inserts the order and decrements the product's
	// stock. Either both happen or neither does. The stock check is
	// serialized against concurrent orders for the same product. Returns the
	// order id and the computed total amount.
	CreateOrder(ctx context.Context, o model.NewOrder) (id, montoTotal int64, err error)
	// ListOrders returns all orders with customer and product names joined,
	// most recent first.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// SalesReport returns one row per product-order pair, including products
	// with no orders, ordered by product name then order date descending.
	SalesReport(ctx context.Context) ([]model.ReportRow, error)

	Close() error
}
