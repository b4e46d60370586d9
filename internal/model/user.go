package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100;unique;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	Phone       string     `gorm:"size:32" json:"phone"`
	StudentType string     `gorm:"size:64" json:"studentType"`
	Role        UserRole   `gorm:"type:varchar(16);default:'student'" json:"role"`
	Disabled    bool       `gorm:"default:false" json:"disabled"`
	LastLogin   *time.Time `json:"lastLogin"`
	LastSeen    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// OTPCode is a one-time password issued for password reset.
// Codes are single-use and expire after a configurable window.
type OTPCode struct {
	BaseModel
	UserID uint   `gorm:"index;not null" json:"userId"`
	Code   string `gorm:"size:8;not null" json:"-"`
	IsUsed bool   `gorm:"default:false" json:"isUsed"`
}

func (OTPCode) TableName() string {
	return "otp_codes"
}
