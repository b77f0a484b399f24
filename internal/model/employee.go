package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Employee is a staff account. Orders reference it for attribution.
type Employee struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SetPassword hashes and stores the employee's password.
func (e *Employee) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

// EmployeeRequest is the payload for creating an employee.
type EmployeeRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ActiveRequest toggles an employee account.
type ActiveRequest struct {
	Active bool `json:"active"`
}
