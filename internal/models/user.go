package models

import "time"

// UserInfo is a storefront customer account. UserPassword carries the plain
// password on writes only; the API never returns it.
type UserInfo struct {
	ID           string    `json:"id" yaml:"id"`
	UserName     string    `json:"userName" yaml:"userName" validate:"required"`
	UserPassword string    `json:"userPassword,omitempty" yaml:"userPassword" validate:"required"`
	UserFullName string    `json:"userFullName" yaml:"userFullName" validate:"required"`
	UserAddress  string    `json:"userAddress" yaml:"userAddress" validate:"required"`
	UserPhone    string    `json:"userPhone" yaml:"userPhone" validate:"required"`
	UserEmail    string    `json:"userEmail,omitempty" yaml:"userEmail,omitempty" validate:"omitempty,email"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"-"`
}

// Normalize trims every field but the password, which is kept as typed.
func (u *UserInfo) Normalize() {
	u.UserName = trim(u.UserName)
	u.UserFullName = trim(u.UserFullName)
	u.UserAddress = trim(u.UserAddress)
	u.UserPhone = trim(u.UserPhone)
	u.UserEmail = trim(u.UserEmail)
}
