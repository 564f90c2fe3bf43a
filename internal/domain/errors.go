package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// SaleErrorKind clasifica los fallos del libro de ventas.
type SaleErrorKind string

const (
	SaleErrNotFound          SaleErrorKind = "NOT_FOUND"
	SaleErrInsufficientStock SaleErrorKind = "INSUFFICIENT_STOCK"
	SaleErrPersistence       SaleErrorKind = "PERSISTENCE"
	SaleErrInvalidInput      SaleErrorKind = "VALIDATION"
	SaleErrInvalidTransition SaleErrorKind = "INVALID_TRANSITION"
)

// SaleError es el fallo etiquetado que devuelven las operaciones del libro de ventas.
// Available solo tiene sentido para SaleErrInsufficientStock.
type SaleError struct {
	Kind      SaleErrorKind
	Message   string
	ProductID string
	ClientID  string
	Available int
	Err       error // causa (driver, commit), puede ser nil
}

func (e *SaleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expone el sentinel del tipo para errors.Is y la causa original para errors.As.
func (e *SaleError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *SaleError) sentinel() error {
	switch e.Kind {
	case SaleErrNotFound:
		return ErrNotFound
	case SaleErrInsufficientStock:
		return ErrInsufficientStock
	case SaleErrInvalidInput:
		return ErrInvalidInput
	case SaleErrInvalidTransition:
		return ErrInvalidTransition
	default:
		return ErrPersistence
	}
}

// NewNotFoundError producto o cliente inexistente.
func NewNotFoundError(what, id string) *SaleError {
	e := &SaleError{Kind: SaleErrNotFound, Message: fmt.Sprintf("%s no encontrado: %s", what, id)}
	switch what {
	case "producto":
		e.ProductID = id
	case "cliente":
		e.ClientID = id
	}
	return e
}

// NewInsufficientStockError stock disponible menor que la cantidad pedida.
func NewInsufficientStockError(productID string, available int) *SaleError {
	return &SaleError{
		Kind:      SaleErrInsufficientStock,
		Message:   fmt.Sprintf("stock insuficiente (disponible: %d)", available),
		ProductID: productID,
		Available: available,
	}
}

// NewPersistenceError fallo de almacenamiento durante op (ej. "registrar la venta"); la causa queda en Err.
func NewPersistenceError(op string, err error) *SaleError {
	return &SaleError{Kind: SaleErrPersistence, Message: "error al " + op, Err: err}
}

// NewInvalidInputError datos de entrada inválidos.
func NewInvalidInputError(msg string) *SaleError {
	return &SaleError{Kind: SaleErrInvalidInput, Message: msg}
}

// NewInvalidTransitionError cambio de estado no permitido.
func NewInvalidTransitionError(from, to string) *SaleError {
	return &SaleError{
		Kind:    SaleErrInvalidTransition,
		Message: fmt.Sprintf("no se puede pasar de %q a %q", from, to),
	}
}

// AsSaleError devuelve el SaleError contenido en err, si existe.
func AsSaleError(err error) (*SaleError, bool) {
	var se *SaleError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
