package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/ports"
)

// Filename é o nome do anexo gerado no download do relatório
const Filename = "relatorio_ordens_servico.xlsx"

const sheetName = "Relatório O.S."

var headers = []string{"N° CHAMADO", "N° OS", "PAT", "CLIENTE", "UNIDADE", "DATA", "SITUAÇÃO"}

var columnWidths = []float64{15, 10, 12, 30, 20, 12, 15}

// ExcelExporter implementa ports.ReportExporter gerando uma planilha
// XLSX com as sete colunas fixas do relatório de backlog
type ExcelExporter struct{}

// NewExcelExporter cria um novo ExcelExporter
func NewExcelExporter() ports.ReportExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(orders []*entities.ServiceOrder) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"92D050"}},
		Font:      &excelize.Font{Bold: true, Color: "000000", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	// Cabeçalho
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", headerStyle); err != nil {
		return nil, err
	}

	// Dados: uma linha por ordem, valores ausentes como string vazia
	for i, order := range orders {
		row := []string{
			deref(order.TicketNumber),
			deref(order.OSNumber),
			deref(order.PAT),
			deref(order.ClientName),
			deref(order.Unit),
			deref(order.OpeningDate),
			statusOrDefault(order.Status),
		}

		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if len(orders) > 0 {
		last := fmt.Sprintf("G%d", len(orders)+1)
		if err := f.SetCellStyle(sheetName, "A2", last, cellStyle); err != nil {
			return nil, err
		}
	}

	// Larguras fixas de coluna
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func statusOrDefault(status string) string {
	if status == "" {
		return entities.StatusAberto
	}
	return status
}
