package models

import "gorm.io/gorm"

const (
	RoleAdmin        = "admin"
	RoleBasic        = "basic"
	RoleOrganisation = "organisation"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:basic"` // basic, admin, organisation
	GivenName    string
	FamilyName   string
	Answers      []Answer `gorm:"foreignKey:BasicUserID"`
}

func (u *User) FullName() string {
	return u.GivenName + " " + u.FamilyName
}
