package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Connect returns a MariaDB connection using env vars.
func Connect() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3306"
	}
	if name == "" {
		name = "asistencia"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8", user, pass, host, port, name)
	return sql.Open("mysql", dsn)
}

// EnsureSchema creates required tables if not exist.
//
// La asistencia se modela como dos tablas separadas (mañana/tarde), una fila
// por empleado por fecha. UNIQUE(user_id, date) respalda el upsert de los
// handlers: nunca puede haber dos filas para el mismo turno del mismo día.
func EnsureSchema(db *sql.DB) error {
	if skip := strings.TrimSpace(os.Getenv("DB_SKIP_SCHEMA")); strings.EqualFold(skip, "true") || skip == "1" {
		log.Printf("EnsureSchema: skipped (DB_SKIP_SCHEMA=%q)", skip)
		return nil
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			dni VARCHAR(16) NULL UNIQUE,
			branch VARCHAR(50) NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS admins (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`); err != nil {
		return err
	}

	for _, table := range []string{"attendance_morning", "attendance_afternoon"} {
		if _, err := db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				user_id CHAR(36) NOT NULL,
				date DATE NOT NULL,
				check_in DATETIME NULL,
				check_out DATETIME NULL,
				UNIQUE KEY uq_user_date (user_id, date),
				FOREIGN KEY (user_id) REFERENCES users(id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
		`, table)); err != nil {
			return err
		}

		if _, err := db.Exec(fmt.Sprintf(`
			CREATE INDEX idx_%s_date ON %s(date);
		`, table, table)); err != nil {
			errMsg := strings.ToLower(err.Error())
			if strings.Contains(errMsg, "duplicate") {
				// index already exists, nothing to do
			} else if strings.Contains(errMsg, "permission denied") {
				log.Printf("EnsureSchema: unable to create %s index (permission denied): %v", table, err)
			} else {
				return err
			}
		}
	}

	return nil
}
