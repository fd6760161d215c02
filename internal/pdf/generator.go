package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/report"
)

const (
	fontName     = "Helvetica"
	marginMM     = 15.0
	rowHeightMM  = 7.0
	emptyMessage = "No hay trabajos para el filtro seleccionado."
)

var (
	detailHeaders = []string{"Descripción", "Cliente", "Ubicación", "Inicio", "Fin", "Cobrado", "Costo", "Ganancia"}
	detailWidths  = []float64{70, 45, 40, 22, 22, 23, 23, 22}
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report on landscape A4 pages using the core
// Helvetica font with cp1252 text encoding.
func (g *Generator) Generate(doc model.JobReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(false, marginMM)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Reporte de Trabajos Agrícolas"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 10)
	for _, line := range strings.Split(doc.FilterDescription, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado: %s", doc.GeneratedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Resumen", "", 1, "L", false, 0, "")
	summaryWidths := []float64{60, 40}
	drawTableRow(pdf, tr, []string{"Ingresos Totales", report.FormatCurrency(doc.Totals.TotalRevenue)}, summaryWidths, false)
	drawTableRow(pdf, tr, []string{"Costos Operativos", report.FormatCurrency(doc.Totals.TotalCost)}, summaryWidths, false)
	drawTableRow(pdf, tr, []string{"Ganancia Neta", report.FormatCurrency(doc.Totals.NetProfit)}, summaryWidths, true)
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Detalle de Trabajos", "", 1, "L", false, 0, "")
	if len(doc.Rows) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(0, 6, emptyMessage, "", 1, "L", false, 0, "")
	} else {
		drawTableRow(pdf, tr, detailHeaders, detailWidths, true)
	}

	_, pageHeight := pdf.GetPageSize()
	for _, r := range doc.Rows {
		if pdf.GetY()+rowHeightMM > pageHeight-marginMM {
			pdf.AddPage()
			drawTableRow(pdf, tr, detailHeaders, detailWidths, true)
		}
		drawTableRow(pdf, tr, []string{
			r.Description,
			r.ClientName,
			r.LocationName,
			report.FormatDate(r.StartDate),
			report.FormatDate(r.EndDate),
			report.FormatCurrency(r.TotalCharged),
			report.FormatCurrency(r.TotalCost),
			report.FormatCurrency(r.Profit),
		}, detailWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 0 && !header && strings.HasPrefix(strings.TrimPrefix(col, "-"), "$") {
			align = "R"
		}
		pdf.CellFormat(widths[i], rowHeightMM, fit(pdf, tr(col), widths[i]-2), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// fit shortens text with an ellipsis until it fits width.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
