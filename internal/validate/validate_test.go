package validate

import (
	"strings"
	"testing"

	"github.com/matiasrv/tienda-api/internal/model"
)

func int64p(v int64) *int64 { return &v }
func intp(v int) *int       { return &v }

func hasIssue(issues []model.FieldIssue, campo string) bool {
	for _, is := range issues {
		if is.Campo == campo {
			return true
		}
	}
	return false
}

func TestProductValid(t *testing.T) {
	desc := "inalámbrico"
	in := model.ProductInput{
		Nombre:      "Mouse",
		Precio:      int64p(10000),
		Categoria:   "Accesorios",
		Stock:       intp(5),
		Descripcion: &desc,
	}
	if issues := Product(in); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestProductStockZeroAllowed(t *testing.T) {
	in := model.ProductInput{Nombre: "Mouse", Precio: int64p(1), Categoria: "A", Stock: intp(0)}
	if issues := Product(in); len(issues) != 0 {
		t.Fatalf("stock 0 should be valid, got %+v", issues)
	}
}

func TestProductFieldRules(t *testing.T) {
	in := model.ProductInput{
		Nombre:    "",
		Precio:    int64p(0),
		Categoria: strings.Repeat("c", 101),
		Stock:     intp(-1),
	}
	issues := Product(in)
	for _, campo := range []string{"nombre", "precio", "categoria", "stock"} {
		if !hasIssue(issues, campo) {
			t.Fatalf("missing issue for %s: %+v", campo, issues)
		}
	}
}

func TestProductMissingNumbers(t *testing.T) {
	issues := Product(model.ProductInput{Nombre: "X", Categoria: "Y"})
	if !hasIssue(issues, "precio") || !hasIssue(issues, "stock") {
		t.Fatalf("missing required issues: %+v", issues)
	}
}

func TestProductPrecioTooHigh(t *testing.T) {
	issues := Product(model.ProductInput{Nombre: "X", Precio: int64p(100000000), Categoria: "Y", Stock: intp(1)})
	if !hasIssue(issues, "precio") {
		t.Fatalf("expected precio issue: %+v", issues)
	}
}

func TestProductDescripcionTooLong(t *testing.T) {
	long := strings.Repeat("d", 1001)
	issues := Product(model.ProductInput{Nombre: "X", Precio: int64p(1), Categoria: "Y", Stock: intp(1), Descripcion: &long})
	if !hasIssue(issues, "descripcion") {
		t.Fatalf("expected descripcion issue: %+v", issues)
	}
}

func TestCustomerValid(t *testing.T) {
	in := model.CustomerInput{
		Nombre:    "Ana",
		Email:     "ana@x.cl",
		Telefono:  "+56912345678",
		Direccion: "Calle 1",
	}
	if issues := Customer(in); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestCustomerEmailFormat(t *testing.T) {
	for _, email := range []string{"", "ana", "ana@", "@x.cl", "ana x@x.cl", "ana@x"} {
		in := model.CustomerInput{Nombre: "Ana", Email: email, Telefono: "+56912345678", Direccion: "Calle 1"}
		if !hasIssue(Customer(in), "email") {
			t.Fatalf("expected email issue for %q", email)
		}
	}
}

func TestCustomerTelefonoRules(t *testing.T) {
	base := model.CustomerInput{Nombre: "Ana", Email: "ana@x.cl", Direccion: "Calle 1"}

	short := base
	short.Telefono = "123456789"
	if !hasIssue(Customer(short), "telefono") {
		t.Fatalf("expected issue for short phone")
	}

	long := base
	long.Telefono = strings.Repeat("1", 21)
	if !hasIssue(Customer(long), "telefono") {
		t.Fatalf("expected issue for long phone")
	}

	badChars := base
	badChars.Telefono = "569123456x"
	if !hasIssue(Customer(badChars), "telefono") {
		t.Fatalf("expected issue for invalid charset")
	}

	ok := base
	ok.Telefono = "+56 9 (123) 45-678"
	if hasIssue(Customer(ok), "telefono") {
		t.Fatalf("expected valid phone, got %+v", Customer(ok))
	}
}

func TestCustomerDireccion(t *testing.T) {
	in := model.CustomerInput{Nombre: "Ana", Email: "ana@x.cl", Telefono: "+56912345678", Direccion: ""}
	if !hasIssue(Customer(in), "direccion") {
		t.Fatalf("expected direccion issue")
	}
	in.Direccion = strings.Repeat("a", 501)
	if !hasIssue(Customer(in), "direccion") {
		t.Fatalf("expected direccion length issue")
	}
}

func TestOrderValid(t *testing.T) {
	in := model.OrderInput{ClienteID: int64p(1), ProductoID: int64p(2), Cantidad: intp(3)}
	if issues := Order(in); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestOrderFieldRules(t *testing.T) {
	issues := Order(model.OrderInput{})
	for _, campo := range []string{"cliente_id", "producto_id", "cantidad"} {
		if !hasIssue(issues, campo) {
			t.Fatalf("missing issue for %s: %+v", campo, issues)
		}
	}

	issues = Order(model.OrderInput{ClienteID: int64p(0), ProductoID: int64p(-1), Cantidad: intp(0)})
	for _, campo := range []string{"cliente_id", "producto_id", "cantidad"} {
		if !hasIssue(issues, campo) {
			t.Fatalf("missing range issue for %s: %+v", campo, issues)
		}
	}

	issues = Order(model.OrderInput{ClienteID: int64p(1), ProductoID: int64p(1), Cantidad: intp(1001)})
	if !hasIssue(issues, "cantidad") {
		t.Fatalf("expected cantidad max issue: %+v", issues)
	}
}
