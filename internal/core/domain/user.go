package domain

import "time"

type UserType string

const (
	UserTypeStudent UserType = "Student"
	UserTypeSociety UserType = "Society"
	UserTypeAdmin   UserType = "Admin"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Type      UserType
	CreatedAt time.Time
}
