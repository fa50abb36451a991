package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedDemoDepartments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение департаментов...")

	departments := []struct {
		name                              string
		tickets, equipment, users, report bool
	}{
		{"IT-отдел", true, true, true, true},
		{"Бухгалтерия", true, false, false, false},
		{"Отдел продаж", true, false, false, false},
	}

	for _, d := range departments {
		_, err := db.Exec(ctx, `
			INSERT INTO departments (name, perm_tickets, perm_equipment, perm_users, perm_reports)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING`,
			d.name, d.tickets, d.equipment, d.users, d.report)
		if err != nil {
			return fmt.Errorf("не удалось вставить департамент %q: %w", d.name, err)
		}
	}
	return nil
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение пользователей...")

	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании демо-пароля: %w", err)
	}

	users := []struct {
		fio, email, role, department string
	}{
		{"Иванов Иван Иванович", "ivanov@helpdesk.local", "it_personnel", "IT-отдел"},
		{"Петрова Анна Сергеевна", "petrova@helpdesk.local", "employee", "Бухгалтерия"},
		{"Сидоров Павел Николаевич", "sidorov@helpdesk.local", "employee", "Отдел продаж"},
	}

	for _, u := range users {
		_, err := db.Exec(ctx, `
			INSERT INTO users (fio, email, password, role, department_id)
			VALUES ($1, $2, $3, $4, (SELECT id FROM departments WHERE name = $5))
			ON CONFLICT (email) DO NOTHING`,
			u.fio, u.email, string(hash), u.role, u.department)
		if err != nil {
			return fmt.Errorf("не удалось вставить пользователя %q: %w", u.email, err)
		}
	}
	return nil
}

func seedDemoEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение оборудования...")

	items := []struct {
		name, serial, department string
	}{
		{"Ноутбук Lenovo ThinkPad T14", "LT-2024-0001", "IT-отдел"},
		{"Принтер HP LaserJet Pro", "PR-2024-0002", "Бухгалтерия"},
		{"Монитор Dell U2422H", "MN-2024-0003", "Отдел продаж"},
	}

	for _, e := range items {
		_, err := db.Exec(ctx, `
			INSERT INTO equipment (name, serial_number, department_id)
			VALUES ($1, $2, (SELECT id FROM departments WHERE name = $3))
			ON CONFLICT (serial_number) DO NOTHING`,
			e.name, e.serial, e.department)
		if err != nil {
			return fmt.Errorf("не удалось вставить оборудование %q: %w", e.serial, err)
		}
	}
	return nil
}

func seedDemoTickets(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение заявок...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM tickets").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    - Заявки уже есть. Пропускаем.")
		return nil
	}

	tickets := []struct {
		title, description, priority, creator string
	}{
		{"Не печатает принтер", "Принтер в бухгалтерии выдаёт ошибку замятия бумаги.", "high", "petrova@helpdesk.local"},
		{"Нужен доступ к CRM", "Прошу выдать доступ к CRM для нового сотрудника.", "normal", "sidorov@helpdesk.local"},
	}

	for _, t := range tickets {
		_, err := db.Exec(ctx, `
			INSERT INTO tickets (title, description, priority, created_by, department_id)
			SELECT $1, $2, $3, u.id, u.department_id FROM users u WHERE u.email = $4`,
			t.title, t.description, t.priority, t.creator)
		if err != nil {
			return fmt.Errorf("не удалось вставить заявку %q: %w", t.title, err)
		}
	}
	return nil
}
