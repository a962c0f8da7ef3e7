// Package validate checks request inputs against the field rules of the wire
// contract and reports failures as field-level issues.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matiasrv/tienda-api/internal/model"
)

const (
	precioMax      = 99999999
	cantidadMax    = 1000
	nombreMax      = 255
	emailMax       = 255
	categoriaMax   = 100
	descripcionMax = 1000
	direccionMax   = 500
	telefonoMin    = 10
	telefonoMax    = 20
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telefonoRe = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

// Product validates a create-product input. An empty slice means the input is
// acceptable.
func Product(in model.ProductInput) []model.FieldIssue {
	var issues []model.FieldIssue
	if strings.TrimSpace(in.Nombre) == "" {
		issues = append(issues, issue("nombre", "El nombre del producto es requerido"))
	} else if utf8.RuneCountInString(in.Nombre) > nombreMax {
		issues = append(issues, issue("nombre", "El nombre no puede exceder 255 caracteres"))
	}
	switch {
	case in.Precio == nil:
		issues = append(issues, issue("precio", "El precio es requerido"))
	case *in.Precio < 1:
		issues = append(issues, issue("precio", "El precio debe ser mayor a 0"))
	case *in.Precio > precioMax:
		issues = append(issues, issue("precio", "El precio es demasiado alto"))
	}
	if strings.TrimSpace(in.Categoria) == "" {
		issues = append(issues, issue("categoria", "La categoría es requerida"))
	} else if utf8.RuneCountInString(in.Categoria) > categoriaMax {
		issues = append(issues, issue("categoria", "La categoría no puede exceder 100 caracteres"))
	}
	switch {
	case in.Stock == nil:
		issues = append(issues, issue("stock", "El stock es requerido"))
	case *in.Stock < 0:
		issues = append(issues, issue("stock", "El stock no puede ser negativo"))
	}
	if in.Descripcion != nil && utf8.RuneCountInString(*in.Descripcion) > descripcionMax {
		issues = append(issues, issue("descripcion", "La descripción no puede exceder 1000 caracteres"))
	}
	return issues
}

// Customer validates a register-customer input.
func Customer(in model.CustomerInput) []model.FieldIssue {
	var issues []model.FieldIssue
	if strings.TrimSpace(in.Nombre) == "" {
		issues = append(issues, issue("nombre", "El nombre es requerido"))
	} else if utf8.RuneCountInString(in.Nombre) > nombreMax {
		issues = append(issues, issue("nombre", "El nombre no puede exceder 255 caracteres"))
	}
	if !emailRe.MatchString(in.Email) {
		issues = append(issues, issue("email", "Debe ser un email válido"))
	} else if utf8.RuneCountInString(in.Email) > emailMax {
		issues = append(issues, issue("email", "El email no puede exceder 255 caracteres"))
	}
	switch {
	case utf8.RuneCountInString(in.Telefono) < telefonoMin:
		issues = append(issues, issue("telefono", "El teléfono debe tener al menos 10 dígitos"))
	case utf8.RuneCountInString(in.Telefono) > telefonoMax:
		issues = append(issues, issue("telefono", "El teléfono no puede exceder 20 caracteres"))
	case !telefonoRe.MatchString(in.Telefono):
		issues = append(issues, issue("telefono", "El teléfono solo puede contener números, espacios, +, -, ()"))
	}
	if strings.TrimSpace(in.Direccion) == "" {
		issues = append(issues, issue("direccion", "La dirección es requerida"))
	} else if utf8.RuneCountInString(in.Direccion) > direccionMax {
		issues = append(issues, issue("direccion", "La dirección no puede exceder 500 caracteres"))
	}
	return issues
}

// Order validates a place-order input.
func Order(in model.OrderInput) []model.FieldIssue {
	var issues []model.FieldIssue
	switch {
	case in.ClienteID == nil:
		issues = append(issues, issue("cliente_id", "Debe seleccionar un cliente"))
	case *in.ClienteID < 1:
		issues = append(issues, issue("cliente_id", "Debe seleccionar un cliente válido"))
	}
	switch {
	case in.ProductoID == nil:
		issues = append(issues, issue("producto_id", "Debe seleccionar un producto"))
	case *in.ProductoID < 1:
		issues = append(issues, issue("producto_id", "Debe seleccionar un producto válido"))
	}
	switch {
	case in.Cantidad == nil:
		issues = append(issues, issue("cantidad", "La cantidad es requerida"))
	case *in.Cantidad < 1:
		issues = append(issues, issue("cantidad", "La cantidad debe ser al menos 1"))
	case *in.Cantidad > cantidadMax:
		issues = append(issues, issue("cantidad", "La cantidad no puede exceder 1000 unidades"))
	}
	return issues
}

func issue(campo, mensaje string) model.FieldIssue {
	return model.FieldIssue{Campo: campo, Mensaje: mensaje}
}
