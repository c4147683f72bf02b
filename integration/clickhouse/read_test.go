//go:build integration
// +build integration

package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"testing"

	_ "github.com/ClickHouse/clickhouse-go"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"

	"github.com/vench/pivotchart"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	setupNameDB     = "test_db"
	setupUserDB     = "default"
	setupPasswordDB = ""

	setupHostDB string
	setupPortDB nat.Port
)

func setupClickHouse(ctx context.Context) (testcontainers.Container, error) {
	req := testcontainers.ContainerRequest{
		Image: "clickhouse/clickhouse-server",
		Env: map[string]string{
			"CLICKHOUSE_DB":       setupNameDB,
			"CLICKHOUSE_USER":     setupUserDB,
			"CLICKHOUSE_PASSWORD": setupPasswordDB,
		},
		ExposedPorts: []string{
			"8123/tcp",
			"9000/tcp",
		},
		WaitingFor: wait.ForAll(
			wait.ForHTTP("/ping").WithPort("8123/tcp").WithStatusCodeMatcher(
				func(status int) bool {
					return status == http.StatusOK
				},
			),
		),
	}

	chContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generic container: %w", err)
	}

	setupHostDB, err = chContainer.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	setupPortDB, err = chContainer.MappedPort(ctx, "9000/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to get port: %w", err)
	}

	return chContainer, nil
}

func TestMain(m *testing.M) {
	ctx := context.Background()
	cont, err := setupClickHouse(ctx)
	if err != nil {
		log.Fatalf("failed to setup clickhouse: %v", err)

		return
	}

	if err = initClickHouseDB(ctx); err != nil {
		log.Fatalf("failed to init DB clickhouse: %v", err)

		return
	}

	exitVal := m.Run()

	cont.Terminate(ctx)

	os.Exit(exitVal)
}

func dataSourceNameDB() string {
	return fmt.Sprintf(
		"tcp://%s:%d?debug=true&database=%s&username=%s&password=%s",
		setupHostDB, setupPortDB.Int(), setupNameDB, setupUserDB, setupPasswordDB)
}

func TestClickhouse_SQLRepository(t *testing.T) {
	t.Parallel()

	s := dataSourceNameDB()
	conn, err := sql.Open("clickhouse", s)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, conn.Close())
	}()

	repo := pivotchart.NewSQLRepository(conn, pivotchart.TextColumnsRepositoryOption("Grade"))
	require.NoError(t, repo.Ping())

	ds, err := repo.Load(context.Background(), pivotchart.TableEnrollment)
	require.NoError(t, err)
	require.Equal(t, 6, ds.Len())
	require.Equal(t, []string{"School", "Grade", "Gender", "Race", "Ethnicity", "Students"}, ds.Columns())

	grades, err := ds.Values("Grade")
	require.NoError(t, err)
	require.ElementsMatch(t, []interface{}{"K", "1", "10"}, grades)

	// check pipeline
	result, err := pivotchart.NewEngine().Run(ds, pivotchart.EnrollmentPage(), &pivotchart.ItemsRequest{
		Filters: []*pivotchart.ItemsRequestFilter{
			{Key: "Gender", Values: []interface{}{"Female"}},
		},
		Groups: []pivotchart.DimensionKey{"Grade"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"K", "1", "10"}, result.Chart.Categories)
	require.Equal(t, []pivotchart.Record{
		{"Grade": "K", "Group": "K", "Students": float64(12)},
		{"Grade": "1", "Group": "1", "Students": float64(7)},
		{"Grade": "10", "Group": "10", "Students": float64(20)},
	}, result.Table.Records)
}

func TestClickhouse_UnknownTable(t *testing.T) {
	t.Parallel()

	conn, err := sql.Open("clickhouse", dataSourceNameDB())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, conn.Close())
	}()

	_, err = pivotchart.NewSQLRepository(conn).Load(context.Background(), "missing_table")
	require.Error(t, err)
}

func initClickHouseDB(ctx context.Context) error {
	s := dataSourceNameDB()
	db, err := sql.Open("clickhouse", s)
	if err != nil {
		return fmt.Errorf("failed to open DB: %w", err)
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx, `DROP TABLE IF EXISTS curr_enrollment`); err != nil {
		return fmt.Errorf("failed to drop table `curr_enrollment`: %w", err)
	}

	if _, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS curr_enrollment (
        School String,
        Grade String,
        Gender String,
        Race String,
        Ethnicity String,
        Students UInt32
    )
    ENGINE = Memory`); err != nil {
		return fmt.Errorf("failed to create table `curr_enrollment`: %w", err)
	}

	rows := []struct {
		school, grade, gender string
		students              int
	}{
		{school: "Lincoln", grade: "10", gender: "Female", students: 20},
		{school: "Lincoln", grade: "1", gender: "Female", students: 3},
		{school: "Lincoln", grade: "K", gender: "Female", students: 5},
		{school: "Adams", grade: "K", gender: "Female", students: 7},
		{school: "Adams", grade: "1", gender: "Female", students: 4},
		{school: "Adams", grade: "1", gender: "Male", students: 9},
	}

	scope, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := scope.Prepare("INSERT INTO curr_enrollment(School, Grade, Gender, Race, Ethnicity, Students) values(?,?,?,?,?,?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert into `curr_enrollment`: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := rows[i]
		if _, err = stmt.Exec(r.school, r.grade, r.gender, "White", "Not Hispanic", uint32(r.students)); err != nil {
			return fmt.Errorf("failed to execute query insert `curr_enrollment`: %w", err)
		}
	}

	if err = scope.Commit(); err != nil {
		return fmt.Errorf("failed to commit scope `curr_enrollment`: %w", err)
	}

	return nil
}
