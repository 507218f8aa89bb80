package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Pseudo       string  `gorm:"column:pseudo;uniqueIndex;not null" json:"pseudo"`
	LastName     string  `gorm:"column:last_name" json:"nom"`
	FirstName    string  `gorm:"column:first_name" json:"prenom"`
	Email        string  `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password     string  `gorm:"-" json:"-"` // Temporary field for password handling
	PasswordHash string  `gorm:"column:password_hash;not null" json:"-"`
	Phone        string  `gorm:"column:phone" json:"telephone"`
	Address      string  `gorm:"column:address" json:"adresse"`
	MeanRating   float64 `gorm:"column:mean_rating;default:0" json:"note_moyenne"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
