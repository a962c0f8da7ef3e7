package service

import (
	"context"
	"errors"
	"testing"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/store"
)

func TestCatalogCreateAndList(t *testing.T) {
	catalog := NewCatalog(store.NewMemory())

	desc := "inalámbrico"
	id, err := catalog.Create(context.Background(), model.ProductInput{
		Nombre: "Mouse", Precio: int64p(10000), Categoria: "Accesorios", Stock: intp(5), Descripcion: &desc,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected generated id")
	}

	list, err := catalog.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
	p := list[0]
	if p.Precio != 10000 || p.Stock != 5 {
		t.Fatalf("price/stock changed from input: %+v", p)
	}
	if p.Descripcion == nil || *p.Descripcion != desc {
		t.Fatalf("descripcion lost: %+v", p)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	catalog := NewCatalog(store.NewMemory())

	_, err := catalog.Create(context.Background(), model.ProductInput{Nombre: "Mouse"})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Issues) == 0 {
		t.Fatalf("expected field issues")
	}
}
