package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
)

func TestReportsSalesOneSoldOneUnsold(t *testing.T) {
	st := store.NewMemory()
	pid, cid := seedMouseAndAna(t, st, 5)
	if _, err := st.CreateProduct(context.Background(), model.NewProduct{
		Nombre: "Teclado", Precio: 20000, Categoria: "Accesorios", Stock: 3,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := st.CreateOrder(context.Background(), model.NewOrder{ClienteID: cid, ProductoID: pid, Cantidad: 3}); err != nil {
		t.Fatalf("order: %v", err)
	}

	report, err := NewReports(st).Sales(context.Background())
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(report.ReporteCompleto) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.ReporteCompleto))
	}

	estados := map[string]int{}
	for _, row := range report.ReporteCompleto {
		estados[row.EstadoVenta]++
	}
	if estados[model.EstadoVendido] != 1 || estados[model.EstadoSinVentas] != 1 {
		t.Fatalf("unexpected estados: %+v", estados)
	}

	s := report.Estadisticas
	if s.TotalProductos != 2 || s.ProductosConVentas != 1 || s.ProductosSinVentas != 1 {
		t.Fatalf("unexpected product stats: %+v", s)
	}
	if s.TotalPedidos != 1 || s.MontoTotalVentas != 30000 || s.PromedioPorPedido != 30000 {
		t.Fatalf("unexpected order stats: %+v", s)
	}
}

func TestReportsSalesEmptyStore(t *testing.T) {
	report, err := NewReports(store.NewMemory()).Sales(context.Background())
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(report.ReporteCompleto) != 0 {
		t.Fatalf("expected no rows")
	}
	s := report.Estadisticas
	if s.TotalProductos != 0 || s.TotalPedidos != 0 || s.PromedioPorPedido != 0 {
		t.Fatalf("expected zeroed stats, got %+v", s)
	}
	if len(report.TopProductos) != 0 {
		t.Fatalf("expected empty ranking")
	}
}

func TestReportsAverageCoalescedToZero(t *testing.T) {
	st := store.NewMemory()
	if _, err := st.CreateProduct(context.Background(), model.NewProduct{
		Nombre: "Mouse", Precio: 10000, Categoria: "Accesorios", Stock: 1,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := NewReports(st).Sales(context.Background())
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if report.Estadisticas.PromedioPorPedido != 0 {
		t.Fatalf("expected promedio 0, got %d", report.Estadisticas.PromedioPorPedido)
	}
}

func TestReportsTopProductsRanking(t *testing.T) {
	st := store.NewMemory()
	cid, err := st.CreateCustomer(context.Background(), model.NewCustomer{
		Nombre: "Ana", Email: "ana@x.cl", Telefono: "+56912345678", Direccion: "Calle 1",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	// Three products: one sold 5 units, one sold 2, one never sold.
	ids := make([]int64, 3)
	for i, p := range []model.NewProduct{
		{Nombre: "Mouse", Precio: 10000, Categoria: "A", Stock: 10},
		{Nombre: "Teclado", Precio: 20000, Categoria: "A", Stock: 10},
		{Nombre: "Monitor", Precio: 90000, Categoria: "A", Stock: 10},
	} {
		ids[i], err = st.CreateProduct(context.Background(), p)
		if err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	for _, o := range []model.NewOrder{
		{ClienteID: cid, ProductoID: ids[0], Cantidad: 3},
		{ClienteID: cid, ProductoID: ids[0], Cantidad: 2},
		{ClienteID: cid, ProductoID: ids[1], Cantidad: 2},
	} {
		if _, _, err := st.CreateOrder(context.Background(), o); err != nil {
			t.Fatalf("order: %v", err)
		}
	}

	report, err := NewReports(st).Sales(context.Background())
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	top := report.TopProductos
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Nombre != "Mouse" || top[0].UnidadesVendidas != 5 || top[0].MontoTotal != 50000 {
		t.Fatalf("unexpected first: %+v", top[0])
	}
	if top[1].Nombre != "Teclado" || top[1].UnidadesVendidas != 2 || top[1].MontoTotal != 40000 {
		t.Fatalf("unexpected second: %+v", top[1])
	}
	if top[2].Nombre != "Monitor" || top[2].UnidadesVendidas != 0 || top[2].MontoTotal != 0 {
		t.Fatalf("expected zero-filled unsold product last: %+v", top[2])
	}
}

// gatedReportStore snapshots the report on its first call and then blocks
// until released; later calls read the current state directly.
type gatedReportStore struct {
	*store.Memory
	mu      sync.Mutex
	first   bool
	started chan struct{}
	release chan struct{}
}

func newGatedReportStore() *gatedReportStore {
	return &gatedReportStore{
		Memory:  store.NewMemory(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *gatedReportStore) SalesReport(ctx context.Context) ([]model.ReportRow, error) {
	s.mu.Lock()
	firstCall := !s.first
	s.first = true
	s.mu.Unlock()
	if !firstCall {
		return s.Memory.SalesReport(ctx)
	}
	rows, err := s.Memory.SalesReport(ctx)
	close(s.started)
	<-s.release
	return rows, err
}

// A report requested after an order commit must include that order, even
// while an earlier report request is still in flight with a pre-commit read.
func TestReportsSalesSeesOrderCommittedDuringInFlightReport(t *testing.T) {
	st := newGatedReportStore()
	pid, cid := seedMouseAndAna(t, st.Memory, 5)
	reports := NewReports(st)

	staleCh := make(chan model.SalesReport, 1)
	go func() {
		rep, err := reports.Sales(context.Background())
		if err != nil {
			t.Errorf("in-flight sales: %v", err)
		}
		staleCh <- rep
	}()
	<-st.started

	if _, _, err := st.Memory.CreateOrder(context.Background(), model.NewOrder{
		ClienteID: cid, ProductoID: pid, Cantidad: 3,
	}); err != nil {
		t.Fatalf("order: %v", err)
	}

	rep, err := reports.Sales(context.Background())
	if err != nil {
		t.Fatalf("sales after commit: %v", err)
	}
	if rep.Estadisticas.TotalPedidos != 1 {
		t.Fatalf("report issued after commit missed the order: %+v", rep.Estadisticas)
	}
	if len(rep.ReporteCompleto) != 1 || rep.ReporteCompleto[0].EstadoVenta != model.EstadoVendido {
		t.Fatalf("expected Vendido row, got %+v", rep.ReporteCompleto)
	}

	close(st.release)
	stale := <-staleCh
	if stale.Estadisticas.TotalPedidos != 0 {
		t.Fatalf("pre-commit read should predate the order: %+v", stale.Estadisticas)
	}
}

func TestReportsTopProductsLimitedToTen(t *testing.T) {
	st := store.NewMemory()
	for i := 0; i < 12; i++ {
		if _, err := st.CreateProduct(context.Background(), model.NewProduct{
			Nombre: fmt.Sprintf("Producto %02d", i), Precio: 1000, Categoria: "A", Stock: 1,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	report, err := NewReports(st).Sales(context.Background())
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(report.TopProductos) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(report.TopProductos))
	}
	if report.Estadisticas.TotalProductos != 12 {
		t.Fatalf("expected 12 products, got %d", report.Estadisticas.TotalProductos)
	}
}
