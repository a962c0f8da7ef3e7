package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/matiasrv/tienda-api/internal/config"
	httpopenapi "github.com/matiasrv/tienda-api/internal/http/openapi"
	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/obs"
	"github.com/matiasrv/tienda-api/internal/service"
)

// App wires the services into HTTP handlers.
type App struct {
	Cfg       config.Config
	Catalog   *service.Catalog
	Customers *service.Customers
	Orders    *service.Orders
	Reports   *service.Reports

	// db is nil when the memory store driver is active.
	db      *sql.DB
	started time.Time
}

func NewApp(cfg config.Config, catalog *service.Catalog, customers *service.Customers, orders *service.Orders, reports *service.Reports, db *sql.DB) *App {
	return &App{
		Cfg:       cfg,
		Catalog:   catalog,
		Customers: customers,
		Orders:    orders,
		Reports:   reports,
		db:        db,
		started:   time.Now(),
	}
}

func (a *App) productsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := a.Catalog.List(r.Context())
		if err != nil {
			WriteServiceError(w, r, err, "Error al obtener productos")
			return
		}
		WriteData(w, http.StatusOK, products)
	case http.MethodPost:
		var in model.ProductInput
		if !decodeBody(w, r, &in) {
			return
		}
		id, err := a.Catalog.Create(r.Context(), in)
		if err != nil {
			WriteServiceError(w, r, err, "Error al crear producto")
			return
		}
		obs.Logger.Info("product_created", "id", id, "request_id", RequestIDFromContext(r.Context()))
		WriteCreated(w, "Producto creado exitosamente", map[string]int64{"id": id})
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Método no permitido")
	}
}

func (a *App) customersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		customers, err := a.Customers.List(r.Context())
		if err != nil {
			WriteServiceError(w, r, err, "Error al obtener clientes")
			return
		}
		WriteData(w, http.StatusOK, customers)
	case http.MethodPost:
		var in model.CustomerInput
		if !decodeBody(w, r, &in) {
			return
		}
		id, err := a.Customers.Create(r.Context(), in)
		if err != nil {
			WriteServiceError(w, r, err, "Error al registrar cliente")
			return
		}
		obs.Logger.Info("customer_created", "id", id, "request_id", RequestIDFromContext(r.Context()))
		WriteCreated(w, "Cliente registrado exitosamente", map[string]int64{"id": id})
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Método no permitido")
	}
}

func (a *App) ordersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := a.Orders.List(r.Context())
		if err != nil {
			WriteServiceError(w, r, err, "Error al obtener pedidos")
			return
		}
		WriteData(w, http.StatusOK, orders)
	case http.MethodPost:
		var in model.OrderInput
		if !decodeBody(w, r, &in) {
			return
		}
		res, err := a.Orders.Create(r.Context(), in)
		if err != nil {
			WriteServiceError(w, r, err, "Error al crear pedido")
			return
		}
		obs.Logger.Info("order_created",
			"id", res.ID,
			"monto_total", res.MontoTotal,
			"request_id", RequestIDFromContext(r.Context()),
		)
		WriteCreated(w, "Pedido creado exitosamente", res)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Método no permitido")
	}
}

func (a *App) salesReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Método no permitido")
		return
	}
	report, err := a.Reports.Sales(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, "Error al generar reporte de ventas")
		return
	}
	WriteData(w, http.StatusOK, report)
}

// decodeBody decodes a JSON request body, writing the validation-shaped 400
// on malformed input. Unknown fields are ignored, matching the contract.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteValidationError(w, []model.FieldIssue{{Campo: "body", Mensaje: "JSON inválido"}})
		return false
	}
	return true
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := a.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	m := map[string]any{
		"uptime_sec": time.Since(a.started).Seconds(),
	}
	if a.db != nil {
		st := a.db.Stats()
		m["db_open_conns"] = st.OpenConnections
		m["db_in_use"] = st.InUse
		m["db_idle"] = st.Idle
		m["db_wait_count"] = st.WaitCount
		m["db_wait_duration_ms"] = float64(st.WaitDuration.Microseconds()) / 1000.0
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
