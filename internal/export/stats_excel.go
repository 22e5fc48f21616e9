package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/asdclub/club-console/internal/itdate"
	"github.com/asdclub/club-console/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// StatsWorkbook is the local Excel rendition of a trainings stats report,
// complementing the server-side CSV link.
type StatsWorkbook struct {
	File *excelize.File
}

func NewStatsWorkbook(report *models.StatsReport) (*StatsWorkbook, error) {
	sheets := []SheetSpec{
		{
			Title:  "Riepilogo",
			Header: []string{"Allenamenti", "Ore totali", "Presenti", "Assenti"},
			Rows: [][]string{{
				strconv.Itoa(report.KPI.Trainings),
				fmt.Sprintf("%.1f", report.KPI.TotalHours),
				strconv.Itoa(report.KPI.Present),
				strconv.Itoa(report.KPI.Absent),
			}},
		},
		{
			Title:  "Mensile",
			Header: []string{"Mese", "Allenamenti", "Ore", "Presenti", "Assenti"},
			Rows:   monthlyRows(report.Monthly),
		},
		{
			Title:  "Per tipo",
			Header: []string{"Tipo", "Allenamenti", "Ore", "Presenti", "Assenti"},
			Rows:   typeRows(report.ByType),
		},
	}
	return newWorkbook(sheets)
}

func monthlyRows(monthly []models.MonthlyStat) [][]string {
	rows := make([][]string, 0, len(monthly))
	for _, m := range monthly {
		rows = append(rows, []string{
			itdate.MonthName(m.Month),
			strconv.Itoa(m.Trainings),
			fmt.Sprintf("%.1f", m.Hours),
			strconv.Itoa(m.Present),
			strconv.Itoa(m.Absent),
		})
	}
	return rows
}

func typeRows(byType []models.TypeStat) [][]string {
	rows := make([][]string, 0, len(byType))
	for _, t := range byType {
		rows = append(rows, []string{
			t.Type,
			strconv.Itoa(t.Trainings),
			fmt.Sprintf("%.1f", t.Hours),
			strconv.Itoa(t.Present),
			strconv.Itoa(t.Absent),
		})
	}
	return rows
}

func newWorkbook(sheets []SheetSpec) (*StatsWorkbook, error) {
	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		applyWidths(f, name, s)
	}
	return &StatsWorkbook{File: f}, nil
}

// applyWidths sizes columns by header and sample-row length.
func applyWidths(f *excelize.File, sheet string, s SheetSpec) {
	for c := 1; c <= len(s.Header); c++ {
		widest := len(s.Header[c-1])
		for r := 0; r < min(50, len(s.Rows)); r++ {
			if c-1 < len(s.Rows[r]) {
				if l := len(s.Rows[r][c-1]); l > widest {
					widest = l
				}
			}
		}
		w := float64(widest) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), w)
	}
}

// SaveTo writes the workbook into dir with a dated filename and returns the
// full path.
func (w *StatsWorkbook) SaveTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	name := fmt.Sprintf("statistiche_%s.xlsx", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	return path, w.File.SaveAs(path)
}

// colName maps 1 -> A, 27 -> AA.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
