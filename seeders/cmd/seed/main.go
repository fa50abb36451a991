package main

import (
	"flag"
	"log"

	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/database/postgresql"
	"helpdesk-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать администратора по умолчанию")
	runDemo := flag.Bool("demo", false, "Наполнить базу демонстрационными данными")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -demo)")

	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool)
		log.Println("======================================================")
	}
	if *runAll || *runDemo {
		// Демо-данные зависят от департаментов, порядок важен
		seeders.SeedDemo(dbPool)
		log.Println("======================================================")
	}

	log.Println("🏁 Сидеры отработали.")
}
