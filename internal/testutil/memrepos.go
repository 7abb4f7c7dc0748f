// Package testutil provee repositorios en memoria y un TxRunner pasamanos para
// los tests de casos de uso. Los repos comparten un MemStore, así las
// aserciones pueden inspeccionar el estado resultante directamente.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// MemStore estado compartido de los repositorios en memoria.
type MemStore struct {
	Catalog    []*entity.CatalogEntry
	Stock      []*entity.StockLine
	Movements  []*entity.Movement
	Finished   []*entity.FinishedGood
	Production []*entity.ProductionRecord
	Orders     []*entity.Order
	Dispatches []*entity.Dispatch

	nextStockID int64
	nextSeq     int64
	nextOrderID int64
	nextFGID    int64
}

// NewMemStore construye un store vacío.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Repos devuelve el juego de repositorios sobre este store.
func (s *MemStore) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Catalog:    &memCatalogRepo{s},
		Stock:      &memStockRepo{s},
		Movements:  &memMovementRepo{s},
		Finished:   &memFinishedRepo{s},
		Production: &memProductionRepo{s},
		Orders:     &memOrderRepo{s},
		Dispatches: &memDispatchRepo{s},
	}
}

// SeedStock agrega una fila de stock y devuelve su ID.
func (s *MemStore) SeedStock(tipo, variante string, actual, minimo int) int64 {
	s.nextStockID++
	s.Stock = append(s.Stock, &entity.StockLine{
		ID: s.nextStockID, Tipo: tipo, Variante: variante,
		StockActual: actual, StockMinimo: minimo,
	})
	return s.nextStockID
}

// SeedCatalog agrega una entrada de catálogo.
func (s *MemStore) SeedCatalog(tipo, variante string, minimo int) {
	s.Catalog = append(s.Catalog, &entity.CatalogEntry{Tipo: tipo, Variante: variante, StockMinimo: minimo})
}

// SeedFinished agrega una fila de producto terminado.
func (s *MemStore) SeedFinished(tipoProducto, varianteProducto string, actual int) {
	s.nextFGID++
	s.Finished = append(s.Finished, &entity.FinishedGood{
		ID: s.nextFGID, TipoProducto: tipoProducto, VarianteProducto: varianteProducto, StockActual: actual,
	})
}

// SeedOrder agrega un pedido y devuelve su ID.
func (s *MemStore) SeedOrder(o entity.Order) int64 {
	s.nextOrderID++
	o.ID = s.nextOrderID
	s.Orders = append(s.Orders, &o)
	return o.ID
}

// FindStock devuelve las filas de stock para (tipo, variante).
func (s *MemStore) FindStock(tipo, variante string) []*entity.StockLine {
	var out []*entity.StockLine
	for _, l := range s.Stock {
		if l.Tipo == tipo && l.Variante == variante {
			out = append(out, l)
		}
	}
	return out
}

// FindFinished devuelve la fila de terminados para (tipo, variante), o nil.
func (s *MemStore) FindFinished(tipoProducto, varianteProducto string) *entity.FinishedGood {
	for _, f := range s.Finished {
		if f.TipoProducto == tipoProducto && f.VarianteProducto == varianteProducto {
			return f
		}
	}
	return nil
}

// TxRunner pasamanos: ejecuta fn sobre los repos del store, sin rollback.
// Suficiente para los casos de uso, que validan antes de mutar.
type TxRunner struct {
	Store *MemStore
	// RunErr fuerza un error del runner sin invocar fn.
	RunErr error
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(_ context.Context, fn func(tx inventory.TxRepos) error) error {
	if r.RunErr != nil {
		return r.RunErr
	}
	return fn(r.Store.Repos())
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type memCatalogRepo struct{ s *MemStore }

func (r *memCatalogRepo) Upsert(_ context.Context, entry *entity.CatalogEntry) error {
	for _, e := range r.s.Catalog {
		if e.Tipo == entry.Tipo && e.Variante == entry.Variante {
			e.StockMinimo = entry.StockMinimo
			return nil
		}
	}
	cp := *entry
	r.s.Catalog = append(r.s.Catalog, &cp)
	return nil
}

func (r *memCatalogRepo) Get(_ context.Context, tipo, variante string) (*entity.CatalogEntry, error) {
	for _, e := range r.s.Catalog {
		if e.Tipo == tipo && e.Variante == variante {
			return e, nil
		}
	}
	return nil, nil
}

func (r *memCatalogRepo) CountByKey(_ context.Context, tipo, variante string) (int, error) {
	n := 0
	for _, e := range r.s.Catalog {
		if e.Tipo == tipo && e.Variante == variante {
			n++
		}
	}
	return n, nil
}

func (r *memCatalogRepo) ListTypes(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range r.s.Catalog {
		if !seen[e.Tipo] {
			seen[e.Tipo] = true
			out = append(out, e.Tipo)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memCatalogRepo) ListVariants(_ context.Context, tipo string) ([]string, error) {
	var out []string
	for _, e := range r.s.Catalog {
		if e.Tipo == tipo {
			out = append(out, e.Variante)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memCatalogRepo) List(_ context.Context) ([]*entity.CatalogEntry, error) {
	return append([]*entity.CatalogEntry(nil), r.s.Catalog...), nil
}

// ── Stock MP ─────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *MemStore }

func (r *memStockRepo) Get(_ context.Context, tipo, variante string) ([]*entity.StockLine, error) {
	return r.s.FindStock(tipo, variante), nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, tipo, variante string) ([]*entity.StockLine, error) {
	return r.Get(ctx, tipo, variante)
}

func (r *memStockRepo) Create(_ context.Context, line *entity.StockLine) error {
	r.s.nextStockID++
	line.ID = r.s.nextStockID
	r.s.Stock = append(r.s.Stock, line)
	return nil
}

func (r *memStockRepo) Update(_ context.Context, line *entity.StockLine) error {
	for i, l := range r.s.Stock {
		if l.ID == line.ID {
			r.s.Stock[i] = line
			return nil
		}
	}
	return nil
}

func (r *memStockRepo) Delete(_ context.Context, id int64) error {
	for i, l := range r.s.Stock {
		if l.ID == id {
			r.s.Stock = append(r.s.Stock[:i], r.s.Stock[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memStockRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, l := range r.s.Stock {
		if f.Tipo != "" && l.Tipo != f.Tipo {
			continue
		}
		if f.Variante != "" && l.Variante != f.Variante {
			continue
		}
		if f.SoloBajoMinimo && !l.BajoMinimo() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *memStockRepo) UpdateMinimo(_ context.Context, tipo, variante string, minimo int) error {
	for _, l := range r.s.Stock {
		if l.Tipo == tipo && l.Variante == variante {
			l.StockMinimo = minimo
		}
	}
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *MemStore }

func (r *memMovementRepo) Append(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.nextSeq++
	m.Seq = r.s.nextSeq
	r.s.Movements = append(r.s.Movements, m)
	return nil
}

func (r *memMovementRepo) Query(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.Movements {
		if f.Desde != nil && m.Fecha.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && m.Fecha.After(*f.Hasta) {
			continue
		}
		if len(f.Kinds) > 0 && !contains(f.Kinds, m.TipoMovimiento) {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		if f.Variante != "" && m.Variante != f.Variante {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.Before(out[j].Fecha)
		}
		return out[i].Seq < out[j].Seq
	})
	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
		if len(out) > f.Limit {
			out = out[:f.Limit]
		}
	}
	return out, nil
}

func (r *memMovementRepo) MostFrequentSupplier(_ context.Context, tipo, variante string) (string, error) {
	counts := map[string]int{}
	firstSeq := map[string]int64{}
	for _, m := range r.s.Movements {
		if m.TipoMovimiento != entity.MovementENTRADA || m.Tipo != tipo || m.Variante != variante || m.Proveedor == "" {
			continue
		}
		counts[m.Proveedor]++
		if _, seen := firstSeq[m.Proveedor]; !seen {
			firstSeq[m.Proveedor] = m.Seq
		}
	}
	best := ""
	for prov := range counts {
		if best == "" ||
			counts[prov] > counts[best] ||
			(counts[prov] == counts[best] && firstSeq[prov] < firstSeq[best]) {
			best = prov
		}
	}
	return best, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// ── Terminados ───────────────────────────────────────────────────────────────

type memFinishedRepo struct{ s *MemStore }

func (r *memFinishedRepo) Get(_ context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error) {
	return r.s.FindFinished(tipoProducto, varianteProducto), nil
}

func (r *memFinishedRepo) GetForUpdate(ctx context.Context, tipoProducto, varianteProducto string) (*entity.FinishedGood, error) {
	return r.Get(ctx, tipoProducto, varianteProducto)
}

func (r *memFinishedRepo) Upsert(_ context.Context, fg *entity.FinishedGood) error {
	if existing := r.s.FindFinished(fg.TipoProducto, fg.VarianteProducto); existing != nil {
		existing.StockActual = fg.StockActual
		return nil
	}
	r.s.nextFGID++
	fg.ID = r.s.nextFGID
	r.s.Finished = append(r.s.Finished, fg)
	return nil
}

func (r *memFinishedRepo) List(_ context.Context) ([]*entity.FinishedGood, error) {
	return append([]*entity.FinishedGood(nil), r.s.Finished...), nil
}

// ── Producción ───────────────────────────────────────────────────────────────

type memProductionRepo struct{ s *MemStore }

func (r *memProductionRepo) Append(_ context.Context, p *entity.ProductionRecord) error {
	r.s.Production = append(r.s.Production, p)
	return nil
}

func (r *memProductionRepo) List(_ context.Context, f repository.ProductionFilter) ([]*entity.ProductionRecord, error) {
	var out []*entity.ProductionRecord
	for _, p := range r.s.Production {
		if f.Desde != nil && p.Fecha.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && p.Fecha.After(*f.Hasta) {
			continue
		}
		if f.TipoProducto != "" && p.TipoProducto != f.TipoProducto {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

type memOrderRepo struct{ s *MemStore }

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.nextOrderID++
	o.ID = r.s.nextOrderID
	r.s.Orders = append(r.s.Orders, o)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	for _, o := range r.s.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) UpdateFields(ctx context.Context, id int64, estado *string, fechaEntrega *time.Time, nota *string) error {
	o, err := r.GetByID(ctx, id)
	if err != nil || o == nil {
		return err
	}
	if estado != nil {
		o.Estado = *estado
	}
	if fechaEntrega != nil {
		o.FechaEntrega = *fechaEntrega
	}
	if nota != nil {
		o.Nota = *nota
	}
	return nil
}

func (r *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if f.Estado != "" && o.Estado != f.Estado {
			continue
		}
		if f.TipoProducto != "" && o.TipoProducto != f.TipoProducto {
			continue
		}
		if f.Cliente != "" && !strings.Contains(strings.ToLower(o.Cliente), strings.ToLower(f.Cliente)) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ── Despachos ────────────────────────────────────────────────────────────────

type memDispatchRepo struct{ s *MemStore }

func (r *memDispatchRepo) NextID(_ context.Context) (int64, error) {
	var max int64
	for _, d := range r.s.Dispatches {
		if d.IDDespacho > max {
			max = d.IDDespacho
		}
	}
	return max + 1, nil
}

func (r *memDispatchRepo) Append(_ context.Context, d *entity.Dispatch) error {
	r.s.Dispatches = append(r.s.Dispatches, d)
	return nil
}

func (r *memDispatchRepo) GetByID(_ context.Context, idDespacho int64) (*entity.Dispatch, error) {
	for _, d := range r.s.Dispatches {
		if d.IDDespacho == idDespacho {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDispatchRepo) ListByOrder(_ context.Context, pedidoID int64) ([]*entity.Dispatch, error) {
	var out []*entity.Dispatch
	for _, d := range r.s.Dispatches {
		if d.PedidoID == pedidoID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDDespacho < out[j].IDDespacho })
	return out, nil
}

func (r *memDispatchRepo) TotalDispatched(_ context.Context, pedidoID int64) (int, error) {
	total := 0
	for _, d := range r.s.Dispatches {
		if d.PedidoID == pedidoID {
			total += d.Cantidad
		}
	}
	return total, nil
}
