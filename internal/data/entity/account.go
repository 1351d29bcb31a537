package entity

import "github.com/google/uuid"

// Account adalah mailbox yang bisa mengirim lewat relay SMTP.
// Password di sini adalah kredensial SMTP keluar, bukan password login.
type Account struct {
	ID          uuid.UUID `db:"id"`
	Email       string    `db:"email"`
	DisplayName string    `db:"display_name"`
	Password    string    `db:"password"`
	IsActive    bool      `db:"is_active"`
}
