package excel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/report"
)

const (
	summarySheet = "Resumen"
	detailSheet  = "Detalle"
	maxSheetName = 31
	moneyFormat  = 4 // #,##0.00
)

var detailHeaders = []string{
	"Descripción",
	"Cliente",
	"Ubicación",
	"Inicio",
	"Fin",
	"Total cobrado",
	"Costo total",
	"Ganancia",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report as a workbook: a summary sheet, a detail
// sheet with every row and, when several clients are present, one detail
// sheet per client.
func (g *Generator) Generate(doc model.JobReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	styles, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, styles, doc)

	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}
	g.writeDetail(file, styles, detailSheet, doc.Rows)

	groups, order := groupByClient(doc.Rows)
	if len(order) > 1 {
		used := map[string]struct{}{summarySheet: {}, detailSheet: {}}
		for _, client := range order {
			name := buildSheetName(client, used)
			used[name] = struct{}{}
			if _, err := file.NewSheet(name); err != nil {
				return nil, err
			}
			g.writeDetail(file, styles, name, groups[client])
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styles struct {
	header int
	money  int
}

func newStyles(file *excelize.File) (styles, error) {
	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, err
	}
	money, err := file.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, money: money}, nil
}

func (g *Generator) writeSummary(file *excelize.File, st styles, doc model.JobReport) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Reporte de Trabajos Agrícolas")
	_ = file.SetCellStyle(summarySheet, "A1", "A1", st.header)

	row := 3
	for _, line := range strings.Split(doc.FilterDescription, "\n") {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		set(fmt.Sprintf("A%d", row), strings.TrimSpace(label))
		set(fmt.Sprintf("B%d", row), strings.TrimSpace(value))
		row++
	}
	set(fmt.Sprintf("A%d", row), "Generado")
	set(fmt.Sprintf("B%d", row), doc.GeneratedAt.Format("02/01/2006 15:04"))
	row++
	set(fmt.Sprintf("A%d", row), "Trabajos")
	set(fmt.Sprintf("B%d", row), len(doc.Rows))

	row += 2
	totals := []struct {
		label string
		value float64
	}{
		{"Ingresos Totales", doc.Totals.TotalRevenue.InexactFloat64()},
		{"Costos Operativos", doc.Totals.TotalCost.InexactFloat64()},
		{"Ganancia Neta", doc.Totals.NetProfit.InexactFloat64()},
	}
	for _, total := range totals {
		label := fmt.Sprintf("A%d", row)
		value := fmt.Sprintf("B%d", row)
		set(label, total.label)
		set(value, total.value)
		_ = file.SetCellStyle(summarySheet, label, label, st.header)
		_ = file.SetCellStyle(summarySheet, value, value, st.money)
		row++
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 24)
	_ = file.SetColWidth(summarySheet, "B", "B", 40)
}

func (g *Generator) writeDetail(file *excelize.File, st styles, sheet string, rows []model.ReportRow) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	for i, header := range detailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, "A1", "H1", st.header)

	for i, r := range rows {
		row := i + 2
		set(fmt.Sprintf("A%d", row), r.Description)
		set(fmt.Sprintf("B%d", row), r.ClientName)
		set(fmt.Sprintf("C%d", row), r.LocationName)
		set(fmt.Sprintf("D%d", row), report.FormatDate(r.StartDate))
		set(fmt.Sprintf("E%d", row), report.FormatDate(r.EndDate))
		set(fmt.Sprintf("F%d", row), r.TotalCharged.InexactFloat64())
		set(fmt.Sprintf("G%d", row), r.TotalCost.InexactFloat64())
		set(fmt.Sprintf("H%d", row), r.Profit.InexactFloat64())
	}
	if len(rows) > 0 {
		_ = file.SetCellStyle(sheet, "F2", fmt.Sprintf("H%d", len(rows)+1), st.money)
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "C", 28)
	_ = file.SetColWidth(sheet, "D", "E", 12)
	_ = file.SetColWidth(sheet, "F", "H", 16)
}

func groupByClient(rows []model.ReportRow) (map[string][]model.ReportRow, []string) {
	groups := make(map[string][]model.ReportRow)
	var order []string
	for _, r := range rows {
		if _, ok := groups[r.ClientName]; !ok {
			order = append(order, r.ClientName)
		}
		groups[r.ClientName] = append(groups[r.ClientName], r)
	}
	return groups, order
}

func buildSheetName(client string, used map[string]struct{}) string {
	base := truncate(sanitizeSheetName(client), maxSheetName)

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
		"'", "",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Cliente"
	}
	return value
}

func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}
