// Package excel reads tabular uploads (XLSX and CSV) into domain datasets.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gradstat/domain/dataset"
	"gradstat/internal"
	apperrors "gradstat/internal/errors"
)

// DataReader turns raw spreadsheet bytes into a typed Dataset. The first row
// is always the header; a column is numeric only when every non-missing cell
// parses as a number, otherwise it stays textual.
type DataReader struct {
	logger *internal.Logger
}

func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{logger: logger.Named("reader")}
}

// ReadFile reads a dataset from disk, dispatching on the file extension.
// Anything that is not .xlsx is treated as CSV.
func (r *DataReader) ReadFile(path string) (*dataset.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.UnreadableFile(filepath.Base(path), err)
	}
	return r.ReadBytes(filepath.Base(path), content)
}

// ReadBytes parses an upload held in memory. The filename only selects the
// format and labels errors.
func (r *DataReader) ReadBytes(name string, content []byte) (*dataset.Dataset, error) {
	start := time.Now()

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		rows, err = r.readXLSX(content)
	} else {
		rows, err = r.readCSV(content)
	}
	if err != nil {
		return nil, apperrors.UnreadableFile(name, err)
	}
	if len(rows) < 2 {
		return nil, apperrors.UnreadableFile(name, fmt.Errorf("need a header row and at least one data row, got %d rows", len(rows)))
	}

	ds, err := buildDataset(name, rows)
	if err != nil {
		return nil, apperrors.UnreadableFile(name, err)
	}

	r.logger.Debug("parsed %s: %d columns, %d rows in %.2fms",
		name, len(ds.ColumnNames()), ds.Rows(), float64(time.Since(start).Nanoseconds())/1e6)
	return ds, nil
}

func (r *DataReader) readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSV(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// missingTokens are cell values treated as absent, matching the usual
// spreadsheet conventions.
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

func isMissing(cell string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(cell))]
}

func buildDataset(name string, rows [][]string) (*dataset.Dataset, error) {
	header := rows[0]
	names := make([]string, 0, len(header))
	seen := map[string]bool{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
		names = append(names, name)
	}

	nRows := len(rows) - 1
	cells := make([][]string, len(names))
	for c := range cells {
		cells[c] = make([]string, nRows)
	}
	for i := 1; i < len(rows); i++ {
		for c := range names {
			if c < len(rows[i]) {
				cells[c][i-1] = strings.TrimSpace(rows[i][c])
			}
		}
	}

	columns := make([]*dataset.Column, 0, len(names))
	for c, colName := range names {
		columns = append(columns, buildColumn(colName, cells[c]))
	}
	return dataset.New(name, columns), nil
}

// buildColumn types one column: numeric when every present cell parses as a
// finite float, textual otherwise.
func buildColumn(name string, cells []string) *dataset.Column {
	numeric := true
	present := 0
	floats := make([]float64, len(cells))
	for i, cell := range cells {
		if isMissing(cell) {
			floats[i] = math.NaN()
			continue
		}
		present++
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			numeric = false
			break
		}
		floats[i] = v
	}

	if numeric && present > 0 {
		return dataset.NumericColumn(name, floats)
	}

	strs := make([]string, len(cells))
	missing := make([]bool, len(cells))
	for i, cell := range cells {
		if isMissing(cell) {
			missing[i] = true
			continue
		}
		strs[i] = cell
	}
	return dataset.TextColumn(name, strs, missing)
}
