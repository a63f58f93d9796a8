package models

import "time"

// DefaultServiceType is stored when a submission names no service.
const DefaultServiceType = "Other"

// ContactForm is a contact-form submission.
type ContactForm struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName   string    `json:"firstName" gorm:"column:firstName;type:varchar(100);not null"`
	LastName    string    `json:"lastName" gorm:"column:lastName;type:varchar(100);not null"`
	Email       string    `json:"email" gorm:"column:email;type:varchar(255);not null"`
	Phone       string    `json:"phone" gorm:"column:phone;type:varchar(20);not null"`
	Message     string    `json:"message" gorm:"column:message;type:text;not null"`
	Subject     *string   `json:"subject" gorm:"column:subject;type:varchar(255)"`
	ServiceType string    `json:"serviceType" gorm:"column:serviceType;type:varchar(50);default:Other"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updatedAt"`
}

func (ContactForm) TableName() string { return "contact_forms" }
