package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"helpdesk-system/migrations"
	"helpdesk-system/pkg/config"
)

func main() {
	command := flag.String("command", "up", "Команда goose: up, down, status, version")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось выбрать диалект: %v", err)
	}

	if err := goose.Run(*command, db, "."); err != nil {
		log.Fatalf("миграция завершилась с ошибкой: %v", err)
	}
	log.Printf("миграции: команда %q выполнена", *command)
}
