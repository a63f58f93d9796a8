package models

import "time"

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string    `json:"firstName" gorm:"column:firstName;type:varchar(100);not null"`
	LastName     string    `json:"lastName" gorm:"column:lastName;type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Phone        string    `json:"phone" gorm:"column:phone;type:varchar(20);not null"`
	Password     string    `json:"-" gorm:"column:password;type:varchar(255);not null"` // bcrypt digest, never serialized
	AgreeToTerms bool      `json:"agreeToTerms" gorm:"column:agreeToTerms;not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updatedAt"`
}

// TableName overrides the pluralised table name gorm would derive.
func (User) TableName() string { return "users" }

// UserUpdate carries the fields a partial update may touch.
// Nil and empty values are both left untouched.
type UserUpdate struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}
