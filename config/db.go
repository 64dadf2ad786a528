package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the configured database. MySQL is the production driver;
// DB_DRIVER=sqlite opens a local file DB (also what the tests use).
func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "sportloan.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	}

	return gorm.Open(mysql.Open(MySQLDSN()), &gorm.Config{Logger: gormLogger})
}

// MySQLDSN builds the MySQL DSN from MYSQL_DSN or the MYSQL_* parts.
func MySQLDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	db := os.Getenv("MYSQL_DB")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
}
