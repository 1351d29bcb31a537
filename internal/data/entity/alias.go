package entity

import "github.com/google/uuid"

// Alias adalah identitas email yang dirutekan lewat sebuah Account.
// Efektif bisa mengirim hanya jika alias DAN account-nya aktif.
type Alias struct {
	ID          uuid.UUID `db:"id"`
	AliasEmail  string    `db:"alias_email"`
	DisplayName *string   `db:"display_name"`
	IsActive    bool      `db:"is_active"`
	AccountID   uuid.UUID `db:"account_id"`
}

// AliasWithAccount adalah view join alias + account pemiliknya.
type AliasWithAccount struct {
	Alias
	AccountEmail       string `db:"account_email"`
	AccountDisplayName string `db:"account_display_name"`
	AccountPassword    string `db:"account_password"`
	AccountIsActive    bool   `db:"account_is_active"`
}
