package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sharedDB     *gorm.DB
	sharedDBErr  error
	sharedDBOnce sync.Once
)

// MySQLDSN builds the MySQL DSN from MYSQL_DSN or the MYSQL_* parts.
func MySQLDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		user := os.Getenv("MYSQL_USER")
		pass := os.Getenv("MYSQL_PASS")
		host := GetEnv("MYSQL_HOST", "127.0.0.1")
		port := GetEnv("MYSQL_PORT", "3306")
		db := GetEnv("MYSQL_DB", "warehouse")
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
	}
	return dsn
}

// NewDB opens the database selected by DB_DRIVER (mysql, the default, or sqlite).
func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	var dialector gorm.Dialector
	switch driver := GetEnv("DB_DRIVER", "mysql"); driver {
	case "mysql":
		dialector = mysql.Open(MySQLDSN())
	case "sqlite":
		dialector = sqlite.Open(GetEnv("SQLITE_PATH", "warehouse.db"))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	if db.Dialector.Name() == "sqlite" {
		db.Exec("PRAGMA foreign_keys=ON")
		db.Exec("PRAGMA busy_timeout=5000")
	}
	return db, nil
}

// GetDB returns a process-wide connection, opened on first use. Used by cron jobs
// and CLI commands that have no request scope.
func GetDB() (*gorm.DB, error) {
	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = NewDB()
	})
	return sharedDB, sharedDBErr
}
