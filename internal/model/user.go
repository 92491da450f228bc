// Package model contain gorm model for recording data to database
package model

const (
	// RoleAdmin can manage jobs, review applications, and change user roles.
	RoleAdmin = "admin"
	// RoleMember is the default role assigned at registration.
	RoleMember = "member"
)

// User is gorm model for store user account data in DB
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Username string `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:text;not null" json:"-"`
	Role     string `gorm:"type:text;not null;default:member" json:"role"`

	Applications []Application `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
