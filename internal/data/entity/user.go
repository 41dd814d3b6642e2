package entity

type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsStaff      bool   `db:"is_staff"`
}
