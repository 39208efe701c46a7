package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/etnz/peers"
)

// DecodeCSV reads a comma separated table with a header row. Rows without a
// company name are skipped.
func DecodeCSV(r io.Reader) (*peers.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return peers.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	b, err := newRowBuilder(header)
	if err != nil {
		return nil, err
	}

	var rows []peers.Record
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, ok := b.build(cells)
		if !ok {
			log.Printf("skipping line %d: no company name", line)
			continue
		}
		rows = append(rows, rec)
	}
	return peers.NewTable(rows...), nil
}
