package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

// Config содержит параметры подключения к PostgreSQL и границы пула соединений.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MinConns int
	MaxConns int
}

// ConfigFromEnv читает параметры подключения из переменных окружения
// с теми же значениями по умолчанию, что и при локальной разработке.
func ConfigFromEnv() Config {
	cfg := Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		MinConns: 1,
		MaxConns: 10,
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}
	if cfg.Name == "" {
		cfg.Name = "bilodelo"
	}
	if v, err := strconv.Atoi(os.Getenv("DB_MIN_CONNS")); err == nil && v > 0 {
		cfg.MinConns = v
	}
	if v, err := strconv.Atoi(os.Getenv("DB_MAX_CONNS")); err == nil && v > 0 {
		cfg.MaxConns = v
	}
	return cfg
}

// DSN собирает строку подключения для драйвера pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Connect открывает пул соединений с базой данных и проверяет его ping-ом.
// Размер пула ограничен cfg.MinConns/cfg.MaxConns; при исчерпании пула
// запрос ждет свободного соединения не дольше контекста вызывающего.
func Connect(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть подключение к базе данных: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("база данных недоступна: %w", err)
	}
	return db, nil
}
