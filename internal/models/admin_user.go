package models

import "time"

// Admin roles. order_manager was historically gated on the status route but
// never issuable at login; it is now part of the issuable set.
const (
	RoleSuperAdmin       = "super_admin"
	RoleAccountant       = "accountant"
	RoleInventoryManager = "inventory_manager"
	RoleOrderManager     = "order_manager"
)

// IssuableRoles is the set of roles permitted to log in.
var IssuableRoles = map[string]bool{
	RoleSuperAdmin:       true,
	RoleAccountant:       true,
	RoleInventoryManager: true,
	RoleOrderManager:     true,
}

// AdminUser is a back-office staff account.
type AdminUser struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
