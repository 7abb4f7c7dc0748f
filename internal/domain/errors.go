package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidQuantity      = errors.New("la cantidad debe ser mayor a cero")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrWouldGoNegative      = errors.New("el movimiento dejaría el stock en negativo")
	ErrDuplicateStockLines  = errors.New("filas de stock duplicadas para tipo/variante")
	ErrInsufficientStock    = errors.New("stock de materia prima insuficiente")
	ErrInsufficientFinished = errors.New("stock de producto terminado insuficiente")
	ErrInvalidOrderState    = errors.New("estado de pedido inválido")
)

// WouldGoNegativeError indica que aplicar el delta dejaría stock_actual < 0.
// Incluye el stock vigente para que el caller arme un mensaje preciso.
type WouldGoNegativeError struct {
	Tipo     string
	Variante string
	Actual   int
	Delta    int
}

func (e *WouldGoNegativeError) Error() string {
	return fmt.Sprintf("stock negativo no permitido para %s - %s (actual %d, delta %d)",
		e.Tipo, e.Variante, e.Actual, e.Delta)
}

func (e *WouldGoNegativeError) Unwrap() error { return ErrWouldGoNegative }

// DuplicateStockLinesError indica un estado de datos corrupto: más de una fila
// de stock para la misma combinación tipo/variante. La operación no muta nada.
type DuplicateStockLinesError struct {
	Tipo     string
	Variante string
	Count    int
}

func (e *DuplicateStockLinesError) Error() string {
	return fmt.Sprintf("hay %d filas de stock para %s - %s; fusione duplicados antes de operar",
		e.Count, e.Tipo, e.Variante)
}

func (e *DuplicateStockLinesError) Unwrap() error { return ErrDuplicateStockLines }

// Shortfall detalla el faltante de una línea de consumo: requerido vs disponible.
type Shortfall struct {
	Tipo       string `json:"tipo"`
	Variante   string `json:"variante"`
	Requerido  int    `json:"requerido"`
	Disponible int    `json:"disponible"`
	SinFila    bool   `json:"sin_fila"` // no existe fila de stock para la combinación
}

func (s Shortfall) String() string {
	if s.SinFila {
		return fmt.Sprintf("no existe en stock: %s - %s (req %d)", s.Tipo, s.Variante, s.Requerido)
	}
	return fmt.Sprintf("insuficiente %s - %s (disp %d < req %d)", s.Tipo, s.Variante, s.Disponible, s.Requerido)
}

// InsufficientStockError reporta TODOS los faltantes detectados en la validación
// de una producción, no solo el primero.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, s.String())
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InsufficientFinishedStockError indica que no alcanza el producto terminado
// para despachar la cantidad pedida.
type InsufficientFinishedStockError struct {
	TipoProducto     string
	VarianteProducto string
	Requerido        int
	Disponible       int
}

func (e *InsufficientFinishedStockError) Error() string {
	return fmt.Sprintf("stock de terminados insuficiente para %s - %s (disp %d < req %d)",
		e.TipoProducto, e.VarianteProducto, e.Disponible, e.Requerido)
}

func (e *InsufficientFinishedStockError) Unwrap() error { return ErrInsufficientFinished }
