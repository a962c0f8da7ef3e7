// Package model defines the domain types of the store API.
//
// JSON tags follow the wire contract consumed by the UI, which uses Spanish
// field names (nombre, precio, cliente_id, ...).
package model

import "time"

// Product is a catalog entry.
type Product struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Precio        int64     `json:"precio"`
	Categoria     string    `json:"categoria"`
	Stock         int       `json:"stock"`
	Descripcion   *string   `json:"descripcion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// Customer is a registered buyer.
type Customer struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Telefono      string    `json:"telefono"`
	Direccion     string    `json:"direccion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// Order is a placed order, listed with the customer and product names joined
// in for display.
type Order struct {
	ID             int64     `json:"id"`
	ClienteID      int64     `json:"cliente_id"`
	ProductoID     int64     `json:"producto_id"`
	Cantidad       int       `json:"cantidad"`
	MontoTotal     int64     `json:"monto_total"`
	FechaPedido    time.Time `json:"fecha_pedido"`
	ClienteNombre  string    `json:"cliente_nombre"`
	ProductoNombre string    `json:"producto_nombre"`
	Precio         int64     `json:"precio"`
}

// ProductInput is an unvalidated create-product request body. Numeric fields
// are pointers so a missing field is distinguishable from zero.
type ProductInput struct {
	Nombre      string  `json:"nombre"`
	Precio      *int64  `json:"precio"`
	Categoria   string  `json:"categoria"`
	Stock       *int    `json:"stock"`
	Descripcion *string `json:"descripcion"`
}

// CustomerInput is an unvalidated register-customer request body.
type CustomerInput struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// OrderInput is an unvalidated place-order request body.
type OrderInput struct {
	ClienteID  *int64 `json:"cliente_id"`
	ProductoID *int64 `json:"producto_id"`
	Cantidad   *int   `json:"cantidad"`
}

// NewProduct is a validated product ready for insertion.
type NewProduct struct {
	Nombre      string
	Precio      int64
	Categoria   string
	Stock       int
	Descripcion *string
}

// NewCustomer is a validated customer ready for insertion.
type NewCustomer struct {
	Nombre    string
	Email     string
	Telefono  string
	Direccion string
}

// NewOrder is a validated order request. The total amount is computed inside
// the order transaction from the product's current price.
type NewOrder struct {
	ClienteID  int64
	ProductoID int64
	Cantidad   int
}

// ReportRow is one line of the sales report: a product joined against one of
// its orders, or against nothing when the product has never been sold. Order
// and customer halves are nil in the no-sale case.
type ReportRow struct {
	ProductoID     int64      `json:"producto_id"`
	ProductoNombre string     `json:"producto_nombre"`
	Precio         int64      `json:"precio"`
	Categoria      string     `json:"categoria"`
	Stock          int        `json:"stock"`
	Descripcion    *string    `json:"descripcion"`
	ClienteID      *int64     `json:"cliente_id"`
	ClienteNombre  *string    `json:"cliente_nombre"`
	ClienteEmail   *string    `json:"cliente_email"`
	PedidoID       *int64     `json:"pedido_id"`
	Cantidad       *int       `json:"cantidad"`
	MontoTotal     *int64     `json:"monto_total"`
	FechaPedido    *time.Time `json:"fecha_pedido"`
	EstadoVenta    string     `json:"estado_venta"`
}

// Sale states tagged onto report rows.
const (
	EstadoVendido   = "Vendido"
	EstadoSinVentas = "Sin ventas"
)

// ReportStats are the aggregate figures of a sales report.
type ReportStats struct {
	TotalProductos     int   `json:"total_productos"`
	ProductosConVentas int   `json:"productos_con_ventas"`
	ProductosSinVentas int   `json:"productos_sin_ventas"`
	TotalPedidos       int   `json:"total_pedidos"`
	MontoTotalVentas   int64 `json:"monto_total_ventas"`
	PromedioPorPedido  int64 `json:"promedio_por_pedido"`
}

// TopProduct is one entry of the best-sellers ranking. Products with no sales
// appear zero-filled.
type TopProduct struct {
	ProductoID       int64  `json:"producto_id"`
	Nombre           string `json:"nombre"`
	UnidadesVendidas int    `json:"unidades_vendidas"`
	MontoTotal       int64  `json:"monto_total"`
}

// SalesReport is the full payload of the reporting endpoint.
type SalesReport struct {
	ReporteCompleto []ReportRow  `json:"reporte_completo"`
	Estadisticas    ReportStats  `json:"estadisticas"`
	TopProductos    []TopProduct `json:"top_productos"`
}
