package models

import "gorm.io/gorm"

// Role is the closed set of user roles. The wire values match what the
// clients send, including the slash in NGO/Volunteer.
type Role string

const (
	RoleFoodProvider Role = "FoodProvider"
	RoleNGO          Role = "NGO/Volunteer"
	RoleIndividual   Role = "Individual"
	RoleAdmin        Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFoodProvider, RoleNGO, RoleIndividual, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record; every permission decision derives from its
// Role and its ownership of listings and requests.
type User struct {
	gorm.Model
	Email           string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password        string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	FullName        string `gorm:"size:255;not null" json:"full_name"`
	Role            Role   `gorm:"size:20;not null;default:NGO/Volunteer" json:"role"`
	Organization    string `gorm:"size:255" json:"organization,omitempty"`
	Phone           string `gorm:"size:20" json:"phone,omitempty"`
	Address         string `gorm:"type:text" json:"address,omitempty"`
	IsEmailVerified bool   `gorm:"not null;default:false" json:"is_email_verified"`
}

func (User) TableName() string { return "users" }

// RouteMail routes the mail notification channel to the user's address.
func (u *User) RouteMail() string { return u.Email }

// RouteDatabase routes the database notification channel to the user's id.
func (u *User) RouteDatabase() uint { return u.ID }
