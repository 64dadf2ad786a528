package migrations

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var fs embed.FS

// New builds a migrator over the embedded SQL files for the given MySQL DSN.
func New(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(fs, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, "mysql://"+dsn)
}
