package model

import (
	"strings"
	"time"
)

// Role is the authorization role carried by a user and its tokens
type Role string

const (
	RoleStudent Role = "Student"
	RoleMentor  Role = "Mentor"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps a case-insensitive role name to a Role
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleStudent, RoleMentor, RoleAdmin} {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// User represents a registered user in the system
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	FirstName        string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string     `gorm:"type:varchar(100)" json:"last_name"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash     string     `gorm:"not null" json:"-"` // Never expose password in JSON
	Role             Role       `gorm:"type:varchar(20);not null;default:'Student'" json:"role"`
	MobileNumber     string     `gorm:"type:varchar(30)" json:"mobile_number"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Address          string     `gorm:"type:text" json:"address"`
	Bio              string     `gorm:"type:text" json:"bio"`
	HighestEducation string     `gorm:"type:varchar(255)" json:"highest_education"`
	ProfileImageURL  string     `gorm:"type:text" json:"profile_image_url"`

	// Relationships
	Courses     []Course               `gorm:"foreignKey:MentorID" json:"-"`
	Enrollments []Enrollment           `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Submissions []AssignmentSubmission `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// Profile is the public view of a user
type Profile struct {
	ID               uint       `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	MobileNumber     string     `json:"mobile_number"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Address          string     `json:"address"`
	Bio              string     `json:"bio"`
	HighestEducation string     `json:"highest_education"`
	Role             string     `json:"role"`
	ProfileImageURL  string     `json:"profile_image_url"`
}

// ToProfile renders the public profile fields, role as text
func (u *User) ToProfile() Profile {
	return Profile{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Username:         u.Username,
		MobileNumber:     u.MobileNumber,
		DateOfBirth:      u.DateOfBirth,
		Address:          u.Address,
		Bio:              u.Bio,
		HighestEducation: u.HighestEducation,
		Role:             string(u.Role),
		ProfileImageURL:  u.ProfileImageURL,
	}
}

// ProfilePatch carries the mutable profile fields. Absent or null fields are left untouched.
type ProfilePatch struct {
	FirstName        Optional[string] `json:"first_name"`
	LastName         Optional[string] `json:"last_name"`
	MobileNumber     Optional[string] `json:"mobile_number"`
	Address          Optional[string] `json:"address"`
	Bio              Optional[string] `json:"bio"`
	HighestEducation Optional[string] `json:"highest_education"`
}

// Apply overwrites the fields of u that carry a value in p
func (p ProfilePatch) Apply(u *User) {
	p.FirstName.ApplyTo(&u.FirstName)
	p.LastName.ApplyTo(&u.LastName)
	p.MobileNumber.ApplyTo(&u.MobileNumber)
	p.Address.ApplyTo(&u.Address)
	p.Bio.ApplyTo(&u.Bio)
	p.HighestEducation.ApplyTo(&u.HighestEducation)
}
