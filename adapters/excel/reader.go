package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"statcompare/domain/dataset"
	"statcompare/internal"
	"statcompare/internal/errors"
	"statcompare/ports"

	"github.com/xuri/excelize/v2"
)

const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"
)

// DataReader turns an uploaded CSV or XLSX stream into a typed Table
type DataReader struct {
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader picks the format from the file name; anything that is not
// .xlsx is read as CSV.
func NewDataReader(filename string, logger *internal.Logger) *DataReader {
	fileType := fileTypeCSV
	if strings.ToLower(filepath.Ext(filename)) == ".xlsx" {
		fileType = fileTypeXLSX
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DataReader{fileType: fileType, logger: logger}
}

// FileType returns "csv" or "xlsx"
func (r *DataReader) FileType() string {
	return r.fileType
}

// Read parses the whole stream. Malformed input yields a PARSE_ERROR.
func (r *DataReader) Read(src io.Reader) (*dataset.Table, error) {
	readStart := time.Now()

	var rows [][]string
	var err error
	switch r.fileType {
	case fileTypeXLSX:
		rows, err = r.readExcelRows(src)
	default:
		rows, err = r.readCSVRows(src)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s stream read in %.2fms (%d records)",
		strings.ToUpper(r.fileType), float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVRows reads comma-delimited text, rejecting non-UTF-8 input
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.ParseError("failed to read upload", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		return nil, errors.ParseError("failed to read CSV file", fmt.Errorf("stream is not valid UTF-8 text"))
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to read CSV file", err)
	}
	return rows, nil
}

// readExcelRows reads the first worksheet of an XLSX workbook
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.ParseError("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("failed to read Excel file", fmt.Errorf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError(fmt.Sprintf("failed to read %s", sheets[0]), err)
	}
	return rows, nil
}

// processRows converts raw string records into a Table: the first record is
// the header, short records are padded with missing cells, long ones are a
// parse error.
func (r *DataReader) processRows(rows [][]string) (*dataset.Table, error) {
	if len(rows) == 0 {
		return nil, errors.ParseError("failed to read "+strings.ToUpper(r.fileType)+" file", fmt.Errorf("no columns to parse from file"))
	}

	headers := normalizeHeaders(rows[0])
	body := rows[1:]

	cells := make([][]string, len(headers))
	for j := range cells {
		cells[j] = make([]string, len(body))
	}
	for i, row := range body {
		if len(row) > len(headers) {
			return nil, errors.ParseError("failed to tokenize data",
				fmt.Errorf("expected %d fields in line %d, saw %d", len(headers), i+2, len(row)))
		}
		for j, cell := range row {
			cells[j][i] = strings.TrimSpace(cell)
		}
	}

	columns := make([]dataset.Column, len(headers))
	for j, header := range headers {
		columns[j] = inferColumn(header, cells[j])
	}

	table, err := dataset.NewTable(columns)
	if err != nil {
		return nil, errors.ParseError("failed to build table", err)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), table.NumRows())
	return table, nil
}

// normalizeHeaders trims names, labels blank ones "Unnamed: i" and suffixes
// repeats with ".1", ".2", ...
func normalizeHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		headers[i] = name
	}
	return headers
}

// UploadReader adapts DataReader to ports.TableReaderPort
type UploadReader struct {
	logger *internal.Logger
}

var _ ports.TableReaderPort = (*UploadReader)(nil)

// NewUploadReader builds a reader that logs through logger (nil for none)
func NewUploadReader(logger *internal.Logger) *UploadReader {
	return &UploadReader{logger: logger}
}

// ReadUpload dispatches on the file extension: .xlsx is read as a workbook,
// anything else as CSV.
func (u *UploadReader) ReadUpload(filename string, src io.Reader) (*dataset.Table, error) {
	return NewDataReader(filename, u.logger).Read(src)
}

// ReadCSV parses a CSV stream
func ReadCSV(src io.Reader) (*dataset.Table, error) {
	return NewDataReader("upload.csv", nil).Read(src)
}

// ReadXLSX parses the first worksheet of a workbook
func ReadXLSX(src io.Reader) (*dataset.Table, error) {
	return NewDataReader("upload.xlsx", nil).Read(src)
}
