// Package pdf implementa la generación del remito de despacho.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Fábrica de Pinceles  │  N° Remito + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + pedido de origen                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Variante                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTA + firma del responsable                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/fys/fabrica-pinceles-api/internal/application/fulfillment"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ fulfillment.DispatchNoteGenerator = (*MarotoDispatchNoteGenerator)(nil)

// MarotoDispatchNoteGenerator implementa fulfillment.DispatchNoteGenerator usando Maroto v2.
type MarotoDispatchNoteGenerator struct {
	factoryName string
}

// NewMarotoDispatchNoteGenerator construye el generador.
func NewMarotoDispatchNoteGenerator(factoryName string) *MarotoDispatchNoteGenerator {
	if factoryName == "" {
		factoryName = "Fábrica de Pinceles"
	}
	return &MarotoDispatchNoteGenerator{factoryName: factoryName}
}

// Generate genera el remito PDF del despacho y devuelve sus bytes.
func (g *MarotoDispatchNoteGenerator) Generate(d *entity.Dispatch, o *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remito de despacho", true).
		WithAuthor(g.factoryName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(d, o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range footerRows(d) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remito: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la fábrica (izq) y N° de remito + fecha (der).
func (g *MarotoDispatchNoteGenerator) headerRow(d *entity.Dispatch) core.Row {
	fecha := d.Fecha.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.factoryName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Remito de despacho de producto terminado", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REMITO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", d.IDDespacho), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: destinatario y pedido de origen.
func clienteRow(d *entity.Dispatch, o *entity.Order) core.Row {
	entrega := "—"
	if o != nil {
		entrega = o.FechaEntrega.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Cliente, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Pedido N° %d   |   Entrega acordada: %s", d.PedidoID, entrega),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de despacho, texto blanco sobre fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Variante", 5, align.Left),
	)
}

// detailRow: la línea despachada.
func detailRow(d *entity.Dispatch) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(
			strconv.Itoa(d.Cantidad),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(
			d.TipoProducto,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(5).Add(text.New(
			d.VarianteProducto,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
	)
}

// footerRows: nota del despacho y espacio de firma.
func footerRows(d *entity.Dispatch) []core.Row {
	rows := []core.Row{}
	if d.Nota != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Nota: "+d.Nota, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	rows = append(rows,
		row.New(20),
		row.New(8).Add(
			col.New(6).Add(
				text.New("_______________________________", props.Text{Size: 9, Align: align.Center}),
				text.New("Responsable: "+nonEmpty(d.Usuario, "—"), props.Text{
					Size: 8, Align: align.Center, Top: 5, Color: colorGray,
				}),
			),
			col.New(6).Add(
				text.New("_______________________________", props.Text{Size: 9, Align: align.Center}),
				text.New("Recibí conforme", props.Text{
					Size: 8, Align: align.Center, Top: 5, Color: colorGray,
				}),
			),
		),
	)
	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
