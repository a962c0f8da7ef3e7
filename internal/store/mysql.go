package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/matiasrv/tienda-api/internal/config"
	"github.com/matiasrv/tienda-api/internal/model"
)

// ER_DUP_ENTRY, raised by the UNIQUE index on clientes.email.
const mysqlErrDupEntry = 1062

// MySQL is the Store implementation backed by a MySQL database.
type MySQL struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenMySQL opens a connection pool from the given parameters and verifies it
// with a ping.
func OpenMySQL(cfg config.DBConfig, timeout time.Duration) (*MySQL, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.TLSConfig = cfg.TLSMode

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, &model.StorageError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &model.StorageError{Op: "ping", Err: err}
	}
	return &MySQL{db: db, timeout: timeout}, nil
}

// NewMySQL wraps an existing database handle. Used by tests.
func NewMySQL(db *sql.DB, timeout time.Duration) *MySQL {
	return &MySQL{db: db, timeout: timeout}
}

// DB exposes the underlying pool for health and metrics reporting.
func (m *MySQL) DB() *sql.DB { return m.db }

func (m *MySQL) Close() error { return m.db.Close() }

func (m *MySQL) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

func (m *MySQL) CreateProduct(ctx context.Context, p model.NewProduct) (int64, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	res, err := m.db.ExecContext(ctx,
		`INSERT INTO productos (nombre, precio, categoria, stock, descripcion) VALUES (?, ?, ?, ?, ?)`,
		p.Nombre, p.Precio, p.Categoria, p.Stock, p.Descripcion)
	if err != nil {
		return 0, &model.StorageError{Op: "create product", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "create product", Err: err}
	}
	return id, nil
}

func (m *MySQL) ListProducts(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	rows, err := m.db.QueryContext(ctx,
		`SELECT id, nombre, precio, categoria, stock, descripcion, fecha_creacion
		 FROM productos ORDER BY fecha_creacion DESC`)
	if err != nil {
		return nil, &model.StorageError{Op: "list products", Err: err}
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Precio, &p.Categoria, &p.Stock, &p.Descripcion, &p.FechaCreacion); err != nil {
			return nil, &model.StorageError{Op: "list products", Err: err}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "list products", Err: err}
	}
	return products, nil
}

func (m *MySQL) CreateCustomer(ctx context.Context, c model.NewCustomer) (int64, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	res, err := m.db.ExecContext(ctx,
		`INSERT INTO clientes (nombre, email, telefono, direccion) VALUES (?, ?, ?, ?)`,
		c.Nombre, c.Email, c.Telefono, c.Direccion)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
			return 0, model.ErrDuplicateEmail
		}
		return 0, &model.StorageError{Op: "create customer", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "create customer", Err: err}
	}
	return id, nil
}

func (m *MySQL) CustomerEmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	var id int64
	err := m.db.QueryRowContext(ctx, `SELECT id FROM clientes WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &model.StorageError{Op: "check email", Err: err}
	}
	return true, nil
}

func (m *MySQL) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	rows, err := m.db.QueryContext(ctx,
		`SELECT id, nombre, email, telefono, direccion, fecha_creacion
		 FROM clientes ORDER BY fecha_creacion DESC`)
	if err != nil {
		return nil, &model.StorageError{Op: "list customers", Err: err}
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Email, &c.Telefono, &c.Direccion, &c.FechaCreacion); err != nil {
			return nil, &model.StorageError{Op: "list customers", Err: err}
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "list customers", Err: err}
	}
	return customers, nil
}

// CreateOrder runs the order transaction: verify the customer, lock the
// product row, check stock, insert the order, and decrement stock. The
// conditional UPDATE re-checks stock so the invariant holds even without the
// row lock.
func (m *MySQL) CreateOrder(ctx context.Context, o model.NewOrder) (int64, int64, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	defer tx.Rollback()

	var clienteID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM clientes WHERE id = ?`, o.ClienteID).Scan(&clienteID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, model.ErrCustomerNotFound
	}
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}

	var precio int64
	var stock int
	err = tx.QueryRowContext(ctx, `SELECT precio, stock FROM productos WHERE id = ? FOR UPDATE`, o.ProductoID).
		Scan(&precio, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, model.ErrProductNotFound
	}
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	if stock < o.Cantidad {
		return 0, 0, model.ErrInsufficientStock
	}

	montoTotal := precio * int64(o.Cantidad)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO pedidos (cliente_id, producto_id, cantidad, monto_total) VALUES (?, ?, ?, ?)`,
		o.ClienteID, o.ProductoID, o.Cantidad, montoTotal)
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE productos SET stock = stock - ? WHERE id = ? AND stock >= ?`,
		o.Cantidad, o.ProductoID, o.Cantidad)
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	if affected == 0 {
		return 0, 0, model.ErrInsufficientStock
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, &model.StorageError{Op: "create order", Err: err}
	}
	return id, montoTotal, nil
}

func (m *MySQL) ListOrders(ctx context.Context) ([]model.Order, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	rows, err := m.db.QueryContext(ctx,
		`SELECT p.id, p.cliente_id, p.producto_id, p.cantidad, p.monto_total, p.fecha_pedido,
		        c.nombre AS cliente_nombre, pr.nombre AS producto_nombre, pr.precio
		 FROM pedidos p
		 INNER JOIN clientes c ON p.cliente_id = c.id
		 INNER JOIN productos pr ON p.producto_id = pr.id
		 ORDER BY p.fecha_pedido DESC`)
	if err != nil {
		return nil, &model.StorageError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.ClienteID, &o.ProductoID, &o.Cantidad, &o.MontoTotal, &o.FechaPedido,
			&o.ClienteNombre, &o.ProductoNombre, &o.Precio); err != nil {
			return nil, &model.StorageError{Op: "list orders", Err: err}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// SalesReport keeps every product in the result set regardless of sales, with
// order and customer columns null when a product has none.
func (m *MySQL) SalesReport(ctx context.Context) ([]model.ReportRow, error) {
	ctx, cancel := m.opCtx(ctx)
	defer cancel()
	rows, err := m.db.QueryContext(ctx,
		`SELECT p.id AS producto_id, p.nombre AS producto_nombre, p.precio, p.categoria, p.stock, p.descripcion,
		        c.id AS cliente_id, c.nombre AS cliente_nombre, c.email AS cliente_email,
		        ped.id AS pedido_id, ped.cantidad, ped.monto_total, ped.fecha_pedido,
		        CASE WHEN ped.id IS NULL THEN 'Sin ventas' ELSE 'Vendido' END AS estado_venta
		 FROM productos p
		 LEFT OUTER JOIN pedidos ped ON p.id = ped.producto_id
		 LEFT OUTER JOIN clientes c ON ped.cliente_id = c.id
		 ORDER BY p.nombre, ped.fecha_pedido DESC`)
	if err != nil {
		return nil, &model.StorageError{Op: "sales report", Err: err}
	}
	defer rows.Close()

	report := []model.ReportRow{}
	for rows.Next() {
		var r model.ReportRow
		var (
			clienteID   sql.NullInt64
			clienteNom  sql.NullString
			clienteMail sql.NullString
			pedidoID    sql.NullInt64
			cantidad    sql.NullInt64
			montoTotal  sql.NullInt64
			fechaPedido sql.NullTime
		)
		if err := rows.Scan(&r.ProductoID, &r.ProductoNombre, &r.Precio, &r.Categoria, &r.Stock, &r.Descripcion,
			&clienteID, &clienteNom, &clienteMail,
			&pedidoID, &cantidad, &montoTotal, &fechaPedido, &r.EstadoVenta); err != nil {
			return nil, &model.StorageError{Op: "sales report", Err: err}
		}
		if clienteID.Valid {
			r.ClienteID = &clienteID.Int64
		}
		if clienteNom.Valid {
			r.ClienteNombre = &clienteNom.String
		}
		if clienteMail.Valid {
			r.ClienteEmail = &clienteMail.String
		}
		if pedidoID.Valid {
			r.PedidoID = &pedidoID.Int64
		}
		if cantidad.Valid {
			n := int(cantidad.Int64)
			r.Cantidad = &n
		}
		if montoTotal.Valid {
			r.MontoTotal = &montoTotal.Int64
		}
		if fechaPedido.Valid {
			r.FechaPedido = &fechaPedido.Time
		}
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: "sales report", Err: err}
	}
	return report, nil
}
