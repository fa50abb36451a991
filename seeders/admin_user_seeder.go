package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание пользователя 'Администратор'...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@helpdesk.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля администратора: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (fio, email, password, role) VALUES ($1, $2, $3, 'admin')",
		"Администратор системы", email, string(hash))
	if err != nil {
		return fmt.Errorf("не удалось вставить администратора: %w", err)
	}

	log.Printf("    - Администратор создан: %s", email)
	return nil
}
