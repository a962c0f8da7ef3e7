package service

import (
	"context"
	"sort"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
)

const topProductsLimit = 10

// Reports builds the sales report. Each request queries the store
// independently, so a report requested after an order commit always reflects
// that order.
type Reports struct {
	store store.Store
}

func NewReports(st store.Store) *Reports {
	return &Reports{store: st}
}

// Sales returns the outer-joined report rows plus aggregate statistics and
// the top-10 products by units sold, computed in one pass over the rows.
func (r *Reports) Sales(ctx context.Context) (model.SalesReport, error) {
	rows, err := r.store.SalesReport(ctx)
	if err != nil {
		return model.SalesReport{}, err
	}
	return buildReport(rows), nil
}

func buildReport(rows []model.ReportRow) model.SalesReport {
	type agg struct {
		nombre  string
		units   int
		revenue int64
	}
	products := map[int64]*agg{}
	productOrder := []int64{}
	stats := model.ReportStats{}

	for _, row := range rows {
		a, seen := products[row.ProductoID]
		if !seen {
			a = &agg{nombre: row.ProductoNombre}
			products[row.ProductoID] = a
			productOrder = append(productOrder, row.ProductoID)
			stats.TotalProductos++
		}
		if row.PedidoID == nil {
			continue
		}
		stats.TotalPedidos++
		stats.MontoTotalVentas += *row.MontoTotal
		a.units += *row.Cantidad
		a.revenue += *row.MontoTotal
	}
	for _, id := range productOrder {
		if products[id].units > 0 {
			stats.ProductosConVentas++
		} else {
			stats.ProductosSinVentas++
		}
	}
	if stats.TotalPedidos > 0 {
		stats.PromedioPorPedido = stats.MontoTotalVentas / int64(stats.TotalPedidos)
	}

	top := make([]model.TopProduct, 0, len(productOrder))
	for _, id := range productOrder {
		a := products[id]
		top = append(top, model.TopProduct{
			ProductoID:       id,
			Nombre:           a.nombre,
			UnidadesVendidas: a.units,
			MontoTotal:       a.revenue,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].UnidadesVendidas != top[j].UnidadesVendidas {
			return top[i].UnidadesVendidas > top[j].UnidadesVendidas
		}
		return top[i].MontoTotal > top[j].MontoTotal
	})
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}

	return model.SalesReport{
		ReporteCompleto: rows,
		Estadisticas:    stats,
		TopProductos:    top,
	}
}
