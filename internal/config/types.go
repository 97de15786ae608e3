package config

type Config struct {
	Importer ImporterConfig
}

type Secrets struct {
	SQL SqlSecrets

	// Alternative to the Sql struct, used verbatim as the postgres DSN.
	// Designed to be used with the heroku env variable.
	DatabaseURL string `env:"DATABASE_URL"`
}

type ImporterConfig struct {
	// Cron expression for scheduled re-imports; empty means single run.
	UpdateFrequency string `json:"updateFrequency"`
	CSVFile         string `json:"csvFile"`
	// Process every row regardless of the upload watermark.
	Force bool `json:"force"`
	SQL   SQLConfig
}

type SQLConfig struct {
	// Driver selects the storage backend: "postgres" (default) or "sqlite".
	Driver            string
	Database          string
	SqlitePath        string
	TransactionsTable string
}

type SqlSecrets struct {
	SqlHost     string `env:"SQL_HOST"`
	SqlUsername string `env:"SQL_USERNAME"`
	SqlPassword string `env:"SQL_PASSWORD"`
}
