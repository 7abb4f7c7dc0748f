package dto

// LowStockAlertDTO fila de alerta de stock bajo.
type LowStockAlertDTO struct {
	Tipo        string `json:"tipo"`
	Variante    string `json:"variante"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

// TypeTotalDTO stock total por tipo de materia prima.
type TypeTotalDTO struct {
	Tipo  string `json:"tipo"`
	Total int    `json:"total"`
}

// DashboardSummaryDTO KPIs del dashboard principal.
type DashboardSummaryDTO struct {
	StockMPTotal        int                `json:"stock_mp_total"`
	StockTerminados     int                `json:"stock_terminados"`
	PedidosAbiertos     int                `json:"pedidos_abiertos"`
	ProducidoSieteDias  int                `json:"producido_7_dias"`
	StockPorTipo        []TypeTotalDTO     `json:"stock_por_tipo"`
	AlertasStockBajo    []LowStockAlertDTO `json:"alertas_stock_bajo"`
}
