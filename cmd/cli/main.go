package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	appdb "github.com/yourorg/asistenciapp/internal/db"
	"github.com/yourorg/asistenciapp/internal/report"
	"github.com/yourorg/asistenciapp/internal/validation"
)

func main() {
	_ = godotenv.Load()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== Asistencia CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Seed admin")
		fmt.Println("3) Crear empleado de prueba")
		fmt.Println("4) Exportar planilla de un mes")
		fmt.Println("5) Salir")
		fmt.Print("Opción: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			doSeedAdmin(reader)
		case "3":
			doSeedEmployee(reader)
		case "4":
			doExportMonth(reader)
		case "5":
			fmt.Println("Chau")
			return
		default:
			fmt.Println("Opción inválida")
		}
		fmt.Println()
	}
}

func doHealthCheck() {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	url := strings.TrimRight(base, "/") + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

func openDB() *sql.DB {
	db, err := appdb.Connect()
	if err != nil {
		log.Printf("db connect error: %v", err)
		return nil
	}
	if err := appdb.EnsureSchema(db); err != nil {
		log.Printf("ensure schema error: %v", err)
		db.Close()
		return nil
	}
	return db
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := reader.ReadString('\n')
	return strings.TrimSpace(s)
}

// doSeedAdmin crea (o reemplaza la contraseña de) un admin. Los admins se
// siembran fuera de la aplicación; este es el camino oficial.
func doSeedAdmin(reader *bufio.Reader) {
	db := openDB()
	if db == nil {
		return
	}
	defer db.Close()

	name := prompt(reader, "Nombre del admin: ")
	password := prompt(reader, "Contraseña: ")
	if name == "" || password == "" {
		fmt.Println("Nombre y contraseña requeridos")
		return
	}
	if validation.IsNumeric(name) {
		// El login decide la rama por si el identificador es numérico: un
		// admin con nombre numérico nunca podría entrar.
		fmt.Println("El nombre de admin no puede ser completamente numérico")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("Error generando hash:", err)
		return
	}

	_, err = db.Exec(`
		INSERT INTO admins (id, name, password_hash) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)
	`, uuid.NewString(), name, string(hash))
	if err != nil {
		fmt.Println("Error insertando admin:", err)
		return
	}
	fmt.Println("✅ Admin listo:", name)
}

func doSeedEmployee(reader *bufio.Reader) {
	db := openDB()
	if db == nil {
		return
	}
	defer db.Close()

	name := prompt(reader, "Nombre: ")
	dni := prompt(reader, "DNI: ")
	branch := prompt(reader, "Sucursal (opcional): ")
	password := prompt(reader, "Contraseña: ")
	if name == "" || !validation.IsNumeric(dni) || password == "" {
		fmt.Println("Nombre, DNI numérico y contraseña requeridos")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("Error generando hash:", err)
		return
	}

	var branchVal interface{}
	if branch != "" {
		branchVal = branch
	}
	_, err = db.Exec(
		`INSERT INTO users (id, name, dni, branch, password_hash) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), name, dni, branchVal, string(hash),
	)
	if err != nil {
		fmt.Println("Error insertando empleado:", err)
		return
	}
	fmt.Println("✅ Empleado creado:", name)
}

func doExportMonth(reader *bufio.Reader) {
	db := openDB()
	if db == nil {
		return
	}
	defer db.Close()

	raw := prompt(reader, "Mes (YYYY-MM): ")
	start, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		fmt.Println("Mes inválido, se espera YYYY-MM")
		return
	}
	end := start.AddDate(0, 1, -1)

	agg := report.NewAggregator(db)
	defer agg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := agg.Range(ctx, start, end)
	if err != nil {
		fmt.Println("Error agregando asistencia:", err)
		return
	}

	data, name, err := report.Export(resp.Records, raw, "", "", time.Local)
	if err != nil {
		fmt.Println("Error exportando:", err)
		return
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		fmt.Println("Error escribiendo archivo:", err)
		return
	}
	fmt.Println("✅ Planilla escrita:", name)
}
