package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAdmin создаёт администратора по умолчанию, если его ещё нет.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания администратора...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов!")
}

// SeedDemo наполняет базу демонстрационными данными: департаменты,
// пользователи, оборудование и пара заявок.
func SeedDemo(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демонстрационными данными...")

	if err := seedDemoDepartments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения департаментов: %v", err)
	}
	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения пользователей: %v", err)
	}
	if err := seedDemoEquipment(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	if err := seedDemoTickets(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения заявок: %v", err)
	}
	log.Println("✅ Демонстрационные данные готовы!")
}
