// Package common holds the CSV plumbing shared by the ingest and analyse paths.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/history-csv/internal/dateutils"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
)

const utf8BOM = "\ufeff"

// TableIO reads and writes history tables as delimited text.
type TableIO struct {
	logger     logging.Logger
	delimiter  rune
	timeLayout string
}

// NewTableIO creates a TableIO. A zero delimiter means ',' and an empty
// timeLayout means dateutils.DateLayoutFullNano.
func NewTableIO(logger logging.Logger, delimiter rune, timeLayout string) *TableIO {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if timeLayout == "" {
		timeLayout = dateutils.DateLayoutFullNano
	}
	return &TableIO{logger: logger, delimiter: delimiter, timeLayout: timeLayout}
}

// Delimiter returns the field separator in use.
func (t *TableIO) Delimiter() rune {
	return t.delimiter
}

// ReadTable loads a whole CSV document with a header row.
func (t *TableIO) ReadTable(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = t.delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("CSV input is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	table, err := models.NewTable(header, records[1:])
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	return table, nil
}

// ReadTableFile loads the CSV file at path.
func (t *TableIO) ReadTableFile(path string) (*models.Table, error) {
	t.logger.Info("Reading CSV file", logging.F(logging.FieldFile, path))

	file, err := os.Open(path) // #nosec G304 -- path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			t.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	table, err := t.ReadTable(file)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "delimited history export with a header row",
			Msg:            "cannot load table",
			Err:            err,
		}
	}

	t.logger.Info("Successfully read CSV data",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, table.Len()))
	return table, nil
}

// WriteTableTo writes the header and every row of table to w.
func (t *TableIO) WriteTableTo(w io.Writer, table *models.Table) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = t.delimiter
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	if err := safe.Write(table.Columns()); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, record := range table.Records(t.timeLayout) {
		if err := safe.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}
	safe.Flush()
	if err := safe.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}

// WriteTable writes table to path, creating the parent directory if needed.
func (t *TableIO) WriteTable(table *models.Table, path string) (err error) {
	if table == nil {
		return fmt.Errorf("cannot write nil table to CSV")
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, models.PermissionOutputFile) // #nosec G304 -- output path is built by the pipeline
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing CSV file: %w", closeErr)
		}
	}()

	if err := t.WriteTableTo(file, table); err != nil {
		return err
	}

	t.logger.Debug("Wrote CSV file",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, table.Len()))
	return nil
}

// ReadCSVHeader returns the trimmed column names of the first record of the
// CSV file at path.
func ReadCSVHeader(path string, delimiter rune) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("CSV input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	header := make([]string, len(record))
	for i, h := range record {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}
	return header, nil
}

// ReadCSVFile unmarshals a CSV file into a slice of structs tagged with `csv`
// column names. Every column named in required must be present in the header,
// otherwise a MissingColumnError is returned for the first one absent.
func ReadCSVFile[TCSVRow any](path string, delimiter rune, required ...string) ([]TCSVRow, error) {
	if len(required) > 0 {
		header, err := ReadCSVHeader(path, delimiter)
		if err != nil {
			return nil, err
		}
		present := make(map[string]bool, len(header))
		for _, h := range header {
			present[h] = true
		}
		for _, column := range required {
			if !present[column] {
				return nil, &parsererror.MissingColumnError{Column: column}
			}
		}
	}

	file, err := os.Open(path) // #nosec G304 -- path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	if delimiter != 0 {
		reader.Comma = delimiter
	}

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}
