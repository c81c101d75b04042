package models

import "gorm.io/gorm"

// Roles of every actor in the system. Tables are users too: a physical
// table logs in with its own account to place orders.
const (
	RoleTable      = "RTABLE"
	RoleServer     = "RSERVEUR"
	RoleCook       = "RCUISINIER"
	RoleAccountant = "RCOMPTABLE"
	RoleAdmin      = "RADMIN"
)

func ValidRole(role string) bool {
	switch role {
	case RoleTable, RoleServer, RoleCook, RoleAccountant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Login    string `json:"login" gorm:"uniqueIndex;size:50"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"size:20"`
	Active   bool   `json:"active" gorm:"default:true"`
}

func (u *User) IsTable() bool      { return u.Role == RoleTable }
func (u *User) IsServer() bool     { return u.Role == RoleServer }
func (u *User) IsCook() bool       { return u.Role == RoleCook }
func (u *User) IsAccountant() bool { return u.Role == RoleAccountant }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

type LoginData struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
