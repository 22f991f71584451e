package models

import "time"

// User represents an employee record in DB (internal use only).
// DNI no nulo implica empleado; los admins viven en su propia tabla.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DNI          string    `json:"dni"`
	Branch       string    `json:"branch,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin represents an administrator record in DB.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmployeeCreateRequest holds the data for the admin-only employee insert.
type EmployeeCreateRequest struct {
	Name     string `json:"name"`
	DNI      string `json:"dni"`
	Branch   string `json:"branch,omitempty"`
	Password string `json:"password"`
}

// EmployeeDTO is a minimal employee representation for listings.
type EmployeeDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	DNI    string `json:"dni"`
	Branch string `json:"branch,omitempty"`
}
