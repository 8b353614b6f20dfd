package models

// User is an account identity. The email doubles as the JWT subject,
// so it is unique across the table.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;not null;unique" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash

	Transactions []Transaction `json:"-"`
}
