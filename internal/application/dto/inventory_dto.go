package dto

import "time"

// RegisterEntryRequest body para POST /api/inventory/entries.
type RegisterEntryRequest struct {
	Tipo          string `json:"tipo"`
	Variante      string `json:"variante"`
	Cantidad      int    `json:"cantidad"`
	Proveedor     string `json:"proveedor,omitempty"`
	Documento     string `json:"documento,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Delta positivo suma, negativo resta; nunca puede dejar el stock en negativo.
type AdjustStockRequest struct {
	Tipo          string `json:"tipo"`
	Variante      string `json:"variante"`
	Delta         int    `json:"delta"`
	Observaciones string `json:"observaciones,omitempty"`
}

// StockLineResponse fila de stock de materia prima.
type StockLineResponse struct {
	Tipo                  string     `json:"tipo"`
	Variante              string     `json:"variante"`
	StockActual           int        `json:"stock_actual"`
	StockMinimo           int        `json:"stock_minimo"`
	UltimaEntrada         *time.Time `json:"ultima_entrada,omitempty"`
	ProveedorMasFrecuente string     `json:"proveedor_mas_frecuente,omitempty"`
	BajoMinimo            bool       `json:"bajo_minimo"`
}

// ApplyDeltaResult resultado de un movimiento de stock exitoso.
type ApplyDeltaResult struct {
	NuevoStock int `json:"nuevo_stock"`
	// LineaCreada indica que la combinación no existía y se creó con
	// stock_minimo 0 (política de alta implícita); el caller debe mostrarlo
	// como advertencia.
	LineaCreada bool `json:"linea_creada,omitempty"`
}

// MovementResponse fila del historial de movimientos.
type MovementResponse struct {
	Fecha          time.Time `json:"fecha"`
	TipoMovimiento string    `json:"tipo_movimiento"`
	Tipo           string    `json:"tipo"`
	Variante       string    `json:"variante"`
	Cantidad       int       `json:"cantidad"`
	Proveedor      string    `json:"proveedor,omitempty"`
	Documento      string    `json:"documento,omitempty"`
	Observaciones  string    `json:"observaciones,omitempty"`
	Usuario        string    `json:"usuario,omitempty"`
}

// ManualLine línea de consumo manual declarada por el operario al producir.
type ManualLine struct {
	Tipo     string `json:"tipo"`
	Variante string `json:"variante"`
	Cantidad int    `json:"cantidad"`
}

// ProduceRequest body para POST /api/production.
type ProduceRequest struct {
	TipoProducto     string       `json:"tipo_producto"`
	VarianteProducto string       `json:"variante_producto"`
	Cantidad         int          `json:"cantidad"`
	Nota             string       `json:"nota,omitempty"`
	LineasManuales   []ManualLine `json:"lineas_manuales,omitempty"`
}

// AdjustFinishedRequest body para POST /api/finished-goods/adjustments.
type AdjustFinishedRequest struct {
	TipoProducto     string `json:"tipo_producto"`
	VarianteProducto string `json:"variante_producto"`
	Delta            int    `json:"delta"`
}

// FinishedGoodResponse fila de stock de producto terminado.
type FinishedGoodResponse struct {
	TipoProducto     string `json:"tipo_producto"`
	VarianteProducto string `json:"variante_producto"`
	StockActual      int    `json:"stock_actual"`
}
