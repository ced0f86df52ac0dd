package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/clinicprime/notelens/internal/domain"
)

// Reader loads the notes of one spreadsheet export (CSV or XLSX).
// The first row is the header; every following row is one note whose
// text is the configured source columns taken in order.
type Reader struct {
	path     string
	columns  []string
	idColumn string
}

// NewReader creates a reader for the file at path. When idColumn is empty or
// absent from the header, notes are identified by their data row number.
func NewReader(path string, columns []string, idColumn string) *Reader {
	return &Reader{
		path:     path,
		columns:  columns,
		idColumn: idColumn,
	}
}

// ReadNotes implements domain.NoteSource
func (r *Reader) ReadNotes(ctx context.Context) ([]domain.NoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}

	return buildRecords(ctx, rows, r.columns, r.idColumn)
}

func (r *Reader) readRows() ([][]string, error) {
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".csv":
		return readCSV(r.path)
	case ".xlsx", ".xlsm":
		return readXLSX(r.path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, filepath.Base(r.path))
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return rows, nil
}

// buildRecords maps raw rows to note records. Columns missing from the header
// are skipped; if none of them exist the whole source is rejected.
func buildRecords(ctx context.Context, rows [][]string, columns []string, idColumn string) ([]domain.NoteRecord, error) {
	if len(rows) == 0 {
		return []domain.NoteRecord{}, nil
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		key := headerKey(header)
		if _, seen := headerMap[key]; !seen {
			headerMap[key] = i
		}
	}

	type column struct {
		name  string
		index int
	}
	var selected []column
	for _, name := range columns {
		if idx, ok := headerMap[headerKey(name)]; ok {
			selected = append(selected, column{name: name, index: idx})
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSourceColumns, strings.Join(columns, ", "))
	}

	idIndex := -1
	if idColumn != "" {
		if idx, ok := headerMap[headerKey(idColumn)]; ok {
			idIndex = idx
		}
	}

	records := make([]domain.NoteRecord, 0, len(rows)-1)
	for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		id := cell(row, idIndex)
		if id == "" {
			id = strconv.Itoa(rowIdx)
		}

		fields := make([]domain.SourceField, 0, len(selected))
		for _, col := range selected {
			fields = append(fields, domain.SourceField{Name: col.name, Text: cell(row, col.index)})
		}

		records = append(records, domain.NoteRecord{ID: id, Fields: fields})
	}

	return records, nil
}

func headerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var _ domain.NoteSource = (*Reader)(nil)
