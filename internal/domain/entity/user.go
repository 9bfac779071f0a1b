package entity

import "time"

// Roles que entrega el backend en el token / en la respuesta de login.
const (
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// User usuario autenticado en la terminal.
type User struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

// PrimaryRole devuelve el primer rol (el que usa la navegación) o vacío.
func (u User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

// Session credenciales vigentes de la terminal.
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time // cero si el token no trae exp
}

// Expired indica si el token ya venció respecto a now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
