package pivotchart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// JSONRepository reads <dir>/<table>.json files holding an array of
// objects.
type JSONRepository struct {
	dir string
	repositoryConfig
}

func NewJSONRepository(dir string, opts ...RepositoryOption) *JSONRepository {
	return &JSONRepository{
		dir:              dir,
		repositoryConfig: newRepositoryConfig(opts),
	}
}

func (r *JSONRepository) Load(_ context.Context, table string) (*Dataset, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("failed to load: invalid table name %q", table)
	}

	path := filepath.Join(r.dir, table+".json")
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

// Read decodes an array of objects. Columns are the union of object keys
// in first-seen order.
func (r *JSONRepository) Read(in io.Reader) (*Dataset, error) {
	var objects []json.RawMessage
	if err := json.NewDecoder(in).Decode(&objects); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	seen := make(map[string]struct{})
	columns := make([]string, 0)
	values := make([]map[string]interface{}, len(objects))
	for i, raw := range objects {
		keys, err := objectKeys(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode json object %d: %w", i, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			columns = append(columns, k)
		}

		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&values[i]); err != nil {
			return nil, fmt.Errorf("failed to decode json object %d: %w", i, err)
		}
	}

	rows := make([]Row, len(values))
	for i, obj := range values {
		row := make(Row, len(columns))
		for _, col := range columns {
			v := obj[col]
			if n, ok := v.(json.Number); ok {
				v = parseCell(n.String())
			}
			row[col] = r.normalize(col, v)
		}
		rows[i] = row
	}

	return &Dataset{columns: columns, index: indexColumns(columns), rows: rows}, nil
}

// objectKeys returns the top-level keys of a JSON object in source order.
func objectKeys(raw []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	keys := make([]string, 0)
	depth := 0
	expectKey := true
	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					return keys, nil
				}
				depth--
				if depth == 0 {
					expectKey = true
				}
			}
		case string:
			if depth == 0 && expectKey {
				keys = append(keys, v)
				expectKey = false
			} else if depth == 0 {
				expectKey = true
			}
		default:
			if depth == 0 {
				expectKey = true
			}
		}
	}
}
