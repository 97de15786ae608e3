package csvimporter

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jexpense/importer/internal/config"
	"github.com/jexpense/importer/pkg/expenseimporter"
	"github.com/jexpense/importer/pkg/postgresutils"
	"github.com/jexpense/importer/pkg/sqliteutils"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
)

const LogLevelEnv = "JEXPENSE_LOG_LEVEL"

type ImportCSVRunner struct {
	db      *bun.DB
	csvFile string
	table   string
	force   bool
	log     *logrus.Logger
}

func NewImportCSVRunner(csvFile, table string, force bool) (*ImportCSVRunner, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv(LogLevelEnv))
	if err != nil {
		level = logrus.InfoLevel
	}

	log.SetLevel(level)

	sqlConfig := config.CurrentImporterConfig().SQL

	db, err := openDatabase(sqlConfig)
	if err != nil {
		return nil, fmt.Errorf("Error connecting to database: %s", err)
	}

	log.Infof("Connected to %s database", databaseName(sqlConfig))

	if table == "" {
		table = sqlConfig.TransactionsTable
	}

	return &ImportCSVRunner{
		db: db, log: log, csvFile: csvFile, table: table, force: force,
	}, nil
}

func (i *ImportCSVRunner) Run() error {
	csvFile, err := os.Open(i.csvFile)
	if err != nil {
		return fmt.Errorf("failed to open %s csv file %w", i.csvFile, err)
	}
	defer csvFile.Close()

	rows, err := readRows(bufio.NewReader(csvFile))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", i.csvFile, err)
	}

	ctx := context.Background()

	store := expenseimporter.NewSQLStore(i.db, i.table)

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	importer := expenseimporter.NewTransactionImporter(store, rows, i.force, i.log)

	summary, err := importer.Import(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d of %d transactions to sql from csv file %s\n", summary.Succeeded, summary.Total, i.csvFile)

	return nil
}

func (i *ImportCSVRunner) Close() error {
	return i.db.Close()
}

func openDatabase(sqlConfig config.SQLConfig) (*bun.DB, error) {
	if sqlConfig.Driver == "sqlite" {
		return sqliteutils.CreateSqliteClient(sqlConfig.SqlitePath)
	}

	return postgresutils.CreatePostgresClient(sqlConfig.Database)
}

func databaseName(sqlConfig config.SQLConfig) string {
	if sqlConfig.Driver == "sqlite" {
		return "sqlite"
	}

	return "postgres " + sqlConfig.Database
}

// readRows parses the semicolon-separated export into header-keyed rows.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows []map[string]string

	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse csv row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(line) {
				row[name] = line[i]
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}
