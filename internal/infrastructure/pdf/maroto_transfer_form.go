// Package pdf implementa la composición del formulario de traslado de
// inventario usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° Traslado │ Fecha + Iniciado por         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR de firma + "Scan to sign digitally"                      │
//	│  FROM / TO: sectores origen y destino                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | SKU | Quantity | Direction | Notes            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Source Signature │ Receiving Signature              │
//	│  Aviso de validez del documento                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/transfer"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ transfer.FormRenderer = (*MarotoFormRenderer)(nil)

// MarotoFormRenderer implementa transfer.FormRenderer usando Maroto v2.
type MarotoFormRenderer struct{}

// NewMarotoFormRenderer construye el renderizador.
func NewMarotoFormRenderer() *MarotoFormRenderer { return &MarotoFormRenderer{} }

// Render genera el PDF del formulario y devuelve sus bytes.
func (r *MarotoFormRenderer) Render(_ context.Context, data *transfer.FormData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Transfer Form", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// QR de firma digital (opcional: el formulario es válido sin él)
	if qrRow, ok := signingQRRow(data); ok {
		m.AddRows(qrRow)
	}
	m.AddRows(sectorsRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas del traslado
	m.AddRows(tableHeaderRow())
	for _, tr := range tableLineRows(data.Lines) {
		m.AddRows(tr)
	}

	// Bloques de firma manuscrita
	m.AddRows(line.NewRow(6))
	m.AddRows(signatureBlocksRow())

	// Aviso
	m.AddRows(line.NewRow(4))
	m.AddRows(noticeRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + N° de traslado (izq), fecha e iniciador (der).
func headerRow(data *transfer.FormData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("INVENTORY TRANSFER FORM", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Transfer ID: #%d", data.TransferID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Date: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New("Initiated by: "+data.InitiatorName, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

// signingQRRow: QR con el enlace de firma y la leyenda de escaneo.
// Devuelve false si no hay imagen QR disponible.
func signingQRRow(data *transfer.FormData) (core.Row, bool) {
	if data.QR == nil || len(data.QR.Data) == 0 {
		return nil, false
	}
	return row.New(42).Add(
		image.NewFromBytesCol(3, data.QR.Data, extension.Png, props.Rect{
			Percent: 90,
			Center:  true,
		}),
		col.New(9).Add(
			text.New("Scan to sign digitally", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New(data.SigningURL, props.Text{
				Size: 7, Top: 16, Left: 3, Color: colorGray,
			}),
		),
	), true
}

// sectorsRow: sectores de origen y destino (vacío = "—").
func sectorsRow(data *transfer.FormData) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.SourceSector, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.TargetSector, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Quantity", 2, align.Right),
		h("Direction", 2, align.Center),
		h("Notes", 2, align.Left),
	)
}

// tableLineRows: una fila por línea del traslado.
func tableLineRows(lines []dto.TransferLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				strings.ToUpper(l.Direction),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Reason,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// signatureBlocksRow: dos recuadros de firma manuscrita lado a lado.
func signatureBlocksRow() core.Row {
	block := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________", props.Text{
				Size: 9, Align: align.Center, Top: 14, Color: colorGray,
			}),
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Top: 20, Color: colorPrimary,
			}),
		)
	}
	return row.New(26).Add(
		block("Source Signature"),
		block("Receiving Signature"),
	)
}

// noticeRow: aviso sobre la validez del documento.
func noticeRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"This document certifies the transfer of the listed items between sectors. "+
				"It may be signed by hand on this form or digitally via the QR code above. "+
				"Keep a copy for inventory records.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
