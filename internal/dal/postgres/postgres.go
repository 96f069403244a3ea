package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

// Client represents a Postgres client.
type Client struct {
	pool *pgxpool.Pool
	db   *sqlx.DB
}

// DB returns a database/sql view of the pool for the repositories.
func (p *Client) DB() *sqlx.DB {
	return p.db
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() error {
	err := p.db.Close()
	p.pool.Close()

	return err
}

// MustNewClient creates a new Postgres client and applies pending migrations.
func MustNewClient() *Client {
	port := os.Getenv("STOREFRONT_PG_PORT")
	if port == "" {
		port = "5432"
	}
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("STOREFRONT_PG_HOST"),
		port,
		os.Getenv("STOREFRONT_PG_USER"),
		os.Getenv("STOREFRONT_PG_PASSWORD"),
		os.Getenv("STOREFRONT_PG_DB"),
		viper.GetString("postgres.sslmode"),
	)

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		panic(err)
	}
	if maxConns := viper.GetInt32("postgres.max_conns"); maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		panic(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		panic(err)
	}

	// Run migrations using goose with stdlib adapter
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Up(db, viper.GetString("postgres.migrations_path")); err != nil {
		panic(err)
	}

	return &Client{
		pool: pool,
		db:   sqlx.NewDb(db, "pgx"),
	}
}
