package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrMissingParty       = errors.New("el nombre de la parte es obligatorio")
	ErrMissingEmail       = errors.New("el email de la cuenta es obligatorio")
	ErrInvalidPeriod      = errors.New("la fecha final debe ser igual o posterior a la inicial")
	ErrNoSelection        = errors.New("seleccione al menos un ítem")
	ErrDuplicateLineItem  = errors.New("ítem duplicado en la lista")
	ErrUnknownBatch       = errors.New("el lote no está en la lista de ítems devolvibles")
	ErrExpiredBatch       = errors.New("el lote está vencido")
	ErrQuantityOutOfRange = errors.New("cantidad fuera del rango devolvible")
	ErrMissingReference   = errors.New("el número de recibo del proveedor es obligatorio")
	ErrMissingGSTNumber   = errors.New("el número GST es obligatorio")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrSubmissionInFlight = errors.New("ya hay un envío en curso")
	ErrUnknownBillKind    = errors.New("tipo de factura desconocido")
)

// ErrorKind clasifica los errores que el flujo de devoluciones expone al llamador.
type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION"       // entrada local inválida, recuperable corrigiendo datos
	KindTransient       ErrorKind = "TRANSIENT"        // red, timeout o autenticación; reintentable
	KindServerRejection ErrorKind = "SERVER_REJECTION" // success:false del servidor, mensaje literal
	KindRendering       ErrorKind = "RENDERING"        // la factura existe pero el recibo falló
	KindStockUpdate     ErrorKind = "STOCK_UPDATE"     // la venta existe pero el inventario no se descontó
)

// WorkflowError resultado estructurado (tipo + mensaje) de una operación del flujo.
// Nunca es fatal para el proceso.
type WorkflowError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// Validation construye un error de validación que envuelve un sentinel.
// Si detail no está vacío se añade al mensaje.
func Validation(sentinel error, detail string) *WorkflowError {
	msg := sentinel.Error()
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &WorkflowError{Kind: KindValidation, Message: msg, Err: sentinel}
}

// Transient construye un error transitorio de red.
func Transient(message string, err error) *WorkflowError {
	return &WorkflowError{Kind: KindTransient, Message: message, Err: err}
}

// ServerRejection conserva el mensaje del servidor tal cual.
func ServerRejection(message string) *WorkflowError {
	return &WorkflowError{Kind: KindServerRejection, Message: message}
}

// Rendering indica que la factura quedó creada pero el recibo no se pudo generar.
func Rendering(err error) *WorkflowError {
	return &WorkflowError{Kind: KindRendering, Message: "factura creada, falló la generación del recibo", Err: err}
}

// StockUpdate indica que la venta quedó creada pero el inventario no se actualizó.
func StockUpdate(err error) *WorkflowError {
	return &WorkflowError{Kind: KindStockUpdate, Message: "factura creada, falló la actualización del inventario", Err: err}
}

// KindOf devuelve el tipo de un error del flujo, o "" si no lo es.
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
