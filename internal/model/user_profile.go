package model

import (
	"time"
)

type UserRole string

const (
	RoleSchoolAdmin UserRole = "school_admin"
	RoleTeacher     UserRole = "teacher"
)

// UserProfile links an auth identity to a school and a role. The primary key
// is the identity's id, so identity and profile are a one-to-one pair; a
// profile row may be upserted again for an identity that already exists,
// which is the recovery path after a partial provisioning failure.
type UserProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SchoolID  uint      `json:"school_id" gorm:"not null;index"`
	Role      UserRole  `json:"role" gorm:"not null;size:32"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
