package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the receipts are written to
const SheetName = "レシート"

// WriteWorkbook converts an exported receipts CSV into an xlsx workbook.
// Amount columns are written as numbers when they parse as such.
func WriteWorkbook(w io.Writer, csvData io.Reader) error {
	reader := bufio.NewReader(csvData)
	if prefix, err := reader.Peek(len(BOM)); err == nil && string(prefix) == BOM {
		_, _ = reader.Discard(len(BOM))
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse csv: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, record := range records {
		cells := make([]interface{}, len(record))
		for j, value := range record {
			cells[j] = cellValue(i, j, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		if err := f.SetPanes(SheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ID, total and tax columns
var numericColumns = map[int]bool{0: true, 3: true, 4: true}

func cellValue(row, col int, value string) interface{} {
	if row == 0 || !numericColumns[col] || strings.TrimSpace(value) == "" {
		return value
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return number
}
