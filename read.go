package pivotchart

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const dateFormat = "2006-01-02"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadRepository common read interface.
type ReadRepository interface {
	// Load returns every row of table.
	Load(ctx context.Context, table string) (*Dataset, error)
}

type repositoryConfig struct {
	logger      *zap.Logger
	textColumns map[string]struct{}
}

// RepositoryOption configures SQL, CSV and JSON repositories.
type RepositoryOption func(*repositoryConfig)

// LoggerRepositoryOption sets the repository logger.
func LoggerRepositoryOption(logger *zap.Logger) RepositoryOption {
	return func(c *repositoryConfig) {
		c.logger = logger
	}
}

// TextColumnsRepositoryOption keeps the named columns as text even when
// the source stores numbers, e.g. grades without a kindergarten row.
func TextColumnsRepositoryOption(columns ...string) RepositoryOption {
	return func(c *repositoryConfig) {
		for _, col := range columns {
			c.textColumns[col] = struct{}{}
		}
	}
}

func newRepositoryConfig(opts []RepositoryOption) repositoryConfig {
	c := repositoryConfig{
		logger:      zap.NewNop(),
		textColumns: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// normalize converts a scanned or parsed value into a dataset scalar.
func (c *repositoryConfig) normalize(column string, v interface{}) interface{} {
	switch vv := v.(type) {
	case []byte:
		v = string(vv)
	case time.Time:
		v = vv.Format(dateFormat)
	case int:
		v = int64(vv)
	case int8:
		v = int64(vv)
	case int16:
		v = int64(vv)
	case int32:
		v = int64(vv)
	case uint8:
		v = int64(vv)
	case uint16:
		v = int64(vv)
	case uint32:
		v = int64(vv)
	case uint64:
		v = int64(vv)
	case float32:
		v = float64(vv)
	case bool:
		v = strconv.FormatBool(vv)
	}

	if _, ok := c.textColumns[column]; ok && v != nil {
		return valueKey(v)
	}

	return v
}

// SQLRepository sql implementation of ReadRepository.
type SQLRepository struct {
	conn *sql.DB
	repositoryConfig
}

// NewSQLRepository returns new instance of SQLRepository.
func NewSQLRepository(connection *sql.DB, opts ...RepositoryOption) *SQLRepository {
	return &SQLRepository{
		conn:             connection,
		repositoryConfig: newRepositoryConfig(opts),
	}
}

func (r *SQLRepository) Ping() error {
	_, err := r.conn.Exec(`SELECT 1`)
	return err
}

func (r *SQLRepository) Load(ctx context.Context, table string) (*Dataset, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("failed to load: invalid table name %q", table)
	}

	start := time.Now()
	query := fmt.Sprintf(`SELECT * FROM %s`, table)

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to exec query: %w, query: %s", err, query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		dest := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range dest {
			ptrs[i] = &dest[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = r.normalize(col, dest[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	r.logger.Info("dataset loaded",
		zap.String("table", table),
		zap.Int("rows", len(result)),
		zap.Strings("columns", columns),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Dataset{columns: columns, index: indexColumns(columns), rows: result}, nil
}
