// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a user account in the Ripple application.
// Usernames are unique case-insensitively; uniqueness is enforced by the
// signup and profile-update paths, not by the store insert itself.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"password,omitempty"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Banner      string    `json:"banner,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Username    *string
	Password    *string
	DisplayName *string
	Avatar      *string
	Banner      *string
	Bio         *string
}

// Apply merges the update into the user record.
func (u UserUpdate) Apply(user *User) {
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Password != nil {
		user.Password = *u.Password
	}
	if u.DisplayName != nil {
		user.DisplayName = *u.DisplayName
	}
	if u.Avatar != nil {
		user.Avatar = *u.Avatar
	}
	if u.Banner != nil {
		user.Banner = *u.Banner
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
}
