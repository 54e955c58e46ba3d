package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"warehouse.GO/model/entity"
	"warehouse.GO/model/entity/warehouse"
)

//go:embed mysql/*.sql
var mysqlFiles embed.FS

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&warehouse.Category{},
		&warehouse.Item{},
		&warehouse.ItemImage{},
		&warehouse.Location{},
		&warehouse.Batch{},
		&warehouse.BatchLocation{},
		&entity.Operator{},
		&entity.AccessToken{},
		&warehouse.Movement{},
	}
}

// AutoMigrate creates the schema from the entity definitions. Used for sqlite
// databases and tests; MySQL goes through the versioned SQL files.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Up applies every pending MySQL migration. dsn is a go-sql-driver DSN.
func Up(dsn string) error {
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back steps migrations.
func Down(dsn string, steps int) error {
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied schema version.
func Version(dsn string) (uint, bool, error) {
	m, err := newMigrate(dsn)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Migrate brings db up to date with whichever mechanism fits its dialect.
func Migrate(db *gorm.DB, mysqlDSN string) error {
	if db.Dialector.Name() == "mysql" {
		return Up(mysqlDSN)
	}
	return AutoMigrate(db)
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(mysqlFiles, "mysql")
	if err != nil {
		return nil, fmt.Errorf("open migration files: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+withMultiStatements(dsn))
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func withMultiStatements(dsn string) string {
	if strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}
