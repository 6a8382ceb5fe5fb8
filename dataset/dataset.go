package dataset

import (
	"duygu.io/sentiment/logger"
	"duygu.io/sentiment/types"
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/xuri/excelize/v2"
	"io"
	"path"
	"strings"
)

var (
	ErrMissingColumn     = errors.New("dataset: column is missing")
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
	ErrEmpty             = errors.New("dataset: no header row")
)

type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Dataset holds the usable rows of a labelled file. Skipped counts rows whose label could not be parsed.
type Dataset struct {
	Rows    []types.Row
	Skipped int
}

// Load reads an .xlsx or .csv file with a header row and the configured sentence and label columns.
func Load(opener Opener, cfg types.DatasetConfig) (Dataset, error) {
	fdlLogger := logger.NewLogger("Dataset loader").With().Str("path", cfg.Path).Logger()
	errLogger := fdlLogger.With().Caller().Logger()

	rc, err := opener.Open(cfg.Path)
	if err != nil {
		errLogger.Err(err).Msg("Could not open dataset")
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer rc.Close()

	var records [][]string
	switch ext := strings.ToLower(path.Ext(cfg.Path)); ext {
	case ".xlsx", ".xlsm":
		records, err = readSheet(rc, cfg.Sheet)
	case ".csv":
		records, err = readCSV(rc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		errLogger.Err(err).Msg("Could not read dataset")
		return Dataset{}, err
	}

	ds, err := fromRecords(records, cfg.SentenceColumn, cfg.LabelColumn)
	if err != nil {
		errLogger.Err(err).Msg("Could not use dataset")
		return Dataset{}, err
	}
	if ds.Skipped > 0 {
		fdlLogger.Warn().Int("skipped", ds.Skipped).Msg("Rows with unknown labels were skipped")
	}
	fdlLogger.Info().Int("rows", len(ds.Rows)).Msg("Dataset loaded")
	return ds, nil
}

// readSheet returns the rows of the named sheet, or of the first sheet when name is empty.
func readSheet(r io.Reader, name string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		name = sheets[0]
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) > 0 {
		records[0] = trimBOM(records[0])
	}
	return records, nil
}

func trimBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}

func fromRecords(records [][]string, sentenceColumn string, labelColumn string) (Dataset, error) {
	if len(records) == 0 {
		return Dataset{}, ErrEmpty
	}

	sentenceIdx, labelIdx := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case sentenceColumn:
			sentenceIdx = i
		case labelColumn:
			labelIdx = i
		}
	}
	if sentenceIdx < 0 {
		return Dataset{}, fmt.Errorf("%w: %q", ErrMissingColumn, sentenceColumn)
	}
	if labelIdx < 0 {
		return Dataset{}, fmt.Errorf("%w: %q", ErrMissingColumn, labelColumn)
	}

	ds := Dataset{Rows: make([]types.Row, 0, len(records)-1)}
	for _, record := range records[1:] {
		label, err := types.ParseLabel(strings.TrimSpace(cell(record, labelIdx)))
		if err != nil {
			ds.Skipped++
			continue
		}
		ds.Rows = append(ds.Rows, types.Row{
			Sentence: cell(record, sentenceIdx),
			Label:    label,
		})
	}
	return ds, nil
}

// cell tolerates short rows; excelize drops trailing empty cells.
func cell(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}
