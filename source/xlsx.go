package source

import (
	"fmt"
	"io"
	"log"

	"github.com/etnz/peers"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads a sheet of an Excel workbook. The first row is the
// header. An empty sheet name selects the first sheet.
func DecodeXLSX(r io.Reader, sheet string) (*peers.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheet")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return peers.NewTable(), nil
	}
	b, err := newRowBuilder(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	var records []peers.Record
	for i, cells := range rows[1:] {
		rec, ok := b.build(cells)
		if !ok {
			log.Printf("skipping row %d of sheet %q: no company name", i+2, sheet)
			continue
		}
		records = append(records, rec)
	}
	return peers.NewTable(records...), nil
}
