package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matiasrv/tienda-api/internal/model"
)

// Memory is an in-process Store with the same semantics as the MySQL
// implementation, including the serialized stock check. It backs tests and
// the memory store driver for local runs.
type Memory struct {
	mu        sync.Mutex
	products  []model.Product
	customers []model.Customer
	orders    []model.Order
	emails    map[string]int64
	nextProd  int64
	nextCust  int64
	nextOrder int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{emails: make(map[string]int64)}
}

func (s *Memory) Close() error { return nil }

func (s *Memory) CreateProduct(ctx context.Context, p model.NewProduct) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProd++
	s.products = append(s.products, model.Product{
		ID:            s.nextProd,
		Nombre:        p.Nombre,
		Precio:        p.Precio,
		Categoria:     p.Categoria,
		Stock:         p.Stock,
		Descripcion:   p.Descripcion,
		FechaCreacion: time.Now().UTC(),
	})
	return s.nextProd, nil
}

func (s *Memory) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Insertion order stands in for fecha_creacion: newest first.
	out := make([]model.Product, 0, len(s.products))
	for i := len(s.products) - 1; i >= 0; i-- {
		out = append(out, s.products[i])
	}
	return out, nil
}

func (s *Memory) CreateCustomer(ctx context.Context, c model.NewCustomer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[c.Email]; ok {
		return 0, model.ErrDuplicateEmail
	}
	s.nextCust++
	s.customers = append(s.customers, model.Customer{
		ID:            s.nextCust,
		Nombre:        c.Nombre,
		Email:         c.Email,
		Telefono:      c.Telefono,
		Direccion:     c.Direccion,
		FechaCreacion: time.Now().UTC(),
	})
	s.emails[c.Email] = s.nextCust
	return s.nextCust, nil
}

func (s *Memory) CustomerEmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.emails[email]
	return ok, nil
}

func (s *Memory) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Customer, 0, len(s.customers))
	for i := len(s.customers) - 1; i >= 0; i-- {
		out = append(out, s.customers[i])
	}
	return out, nil
}

// CreateOrder holds the store lock across the check and the decrement, so
// concurrent orders for the same product serialize and stock never goes
// negative.
func (s *Memory) CreateOrder(ctx context.Context, o model.NewOrder) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customer *model.Customer
	for i := range s.customers {
		if s.customers[i].ID == o.ClienteID {
			customer = &s.customers[i]
			break
		}
	}
	if customer == nil {
		return 0, 0, model.ErrCustomerNotFound
	}

	var product *model.Product
	for i := range s.products {
		if s.products[i].ID == o.ProductoID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		return 0, 0, model.ErrProductNotFound
	}
	if product.Stock < o.Cantidad {
		return 0, 0, model.ErrInsufficientStock
	}

	montoTotal := product.Precio * int64(o.Cantidad)
	s.nextOrder++
	s.orders = append(s.orders, model.Order{
		ID:             s.nextOrder,
		ClienteID:      o.ClienteID,
		ProductoID:     o.ProductoID,
		Cantidad:       o.Cantidad,
		MontoTotal:     montoTotal,
		FechaPedido:    time.Now().UTC(),
		ClienteNombre:  customer.Nombre,
		ProductoNombre: product.Nombre,
		Precio:         product.Precio,
	})
	product.Stock -= o.Cantidad
	return s.nextOrder, montoTotal, nil
}

func (s *Memory) ListOrders(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.orders[i])
	}
	return out, nil
}

func (s *Memory) SalesReport(ctx context.Context) ([]model.ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName := make([]model.Product, len(s.products))
	copy(byName, s.products)
	sort.SliceStable(byName, func(i, j int) bool { return byName[i].Nombre < byName[j].Nombre })

	customersByID := make(map[int64]model.Customer, len(s.customers))
	for _, c := range s.customers {
		customersByID[c.ID] = c
	}

	report := []model.ReportRow{}
	for _, p := range byName {
		base := model.ReportRow{
			ProductoID:     p.ID,
			ProductoNombre: p.Nombre,
			Precio:         p.Precio,
			Categoria:      p.Categoria,
			Stock:          p.Stock,
			Descripcion:    p.Descripcion,
			EstadoVenta:    model.EstadoSinVentas,
		}
		sold := false
		// Reverse insertion order matches fecha_pedido descending.
		for i := len(s.orders) - 1; i >= 0; i-- {
			o := s.orders[i]
			if o.ProductoID != p.ID {
				continue
			}
			sold = true
			row := base
			row.EstadoVenta = model.EstadoVendido
			c := customersByID[o.ClienteID]
			row.ClienteID = ptr(c.ID)
			row.ClienteNombre = ptr(c.Nombre)
			row.ClienteEmail = ptr(c.Email)
			row.PedidoID = ptr(o.ID)
			row.Cantidad = ptr(o.Cantidad)
			row.MontoTotal = ptr(o.MontoTotal)
			fecha := o.FechaPedido
			row.FechaPedido = &fecha
			report = append(report, row)
		}
		if !sold {
			report = append(report, base)
		}
	}
	return report, nil
}

func ptr[T any](v T) *T { return &v }
