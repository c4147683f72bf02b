package pivotchart

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// CSVRepository reads <dir>/<table>.csv files.
type CSVRepository struct {
	dir string
	repositoryConfig
}

func NewCSVRepository(dir string, opts ...RepositoryOption) *CSVRepository {
	return &CSVRepository{
		dir:              dir,
		repositoryConfig: newRepositoryConfig(opts),
	}
}

func (r *CSVRepository) Load(_ context.Context, table string) (*Dataset, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("failed to load: invalid table name %q", table)
	}

	path := filepath.Join(r.dir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.logger.Info("dataset loaded",
		zap.String("table", table),
		zap.String("path", path),
		zap.Int("rows", ds.Len()),
	)

	return ds, nil
}

// Read parses CSV with a header row. Integer and decimal cells become
// int64 and float64, empty cells nil, everything else text.
func (r *CSVRepository) Read(in io.Reader) (*Dataset, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return NewDataset(nil, nil), nil
	}
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	}

	rows := make([]Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = r.normalize(col, parseCell(record[i]))
		}
		rows = append(rows, row)
	}

	return &Dataset{columns: columns, index: indexColumns(columns), rows: rows}, nil
}

func parseCell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return s
}
