// internal/models/admin.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Admin is a separate principal from User so the admin guard can never be
// satisfied by a storefront account token.
type Admin struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Name         string `json:"name" gorm:"size:100;not null"`
	Role         string `json:"role" gorm:"size:50;default:'admin'"`
}

func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

func (a *Admin) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
}
