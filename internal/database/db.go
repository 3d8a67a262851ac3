// Package database owns the MySQL connection pool and the schema bootstrap
// shared by every repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/pandhuwib/go-blog-api/internal/config"
)

// Open builds the pooled MySQL handle from configuration and pings it once
// before anything is wired on top. parseTime maps DATETIME columns onto
// time.Time; all timestamps stay in UTC.
func Open(cfg config.Config) (*sql.DB, error) {
	cred := cfg.DBUser
	if cfg.DBPass != "" {
		cred += ":" + cfg.DBPass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifeMin) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
