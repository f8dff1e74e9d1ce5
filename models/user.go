package models

import "time"

// User is a platform account. The profile lives in the same document and is
// written by the registration insert.
type User struct {
	ID           string      `bson:"id" json:"id"`
	Email        string      `bson:"email" json:"email"`
	PasswordHash string      `bson:"passwordHash" json:"-"`
	Permissions  []string    `bson:"permissions" json:"permissions"`
	Profile      UserProfile `bson:"profile" json:"profile"`
	TokenHash    string      `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile carries the contact details required before booking.
type UserProfile struct {
	Name        string `bson:"name" json:"name"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	AvatarURL   string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	IsWorker    bool   `bson:"isWorker" json:"isWorker"`
}

// HasCompletedProfile reports whether name and phone number are both set.
func (u *User) HasCompletedProfile() bool {
	return u != nil && u.Profile.Name != "" && u.Profile.PhoneNumber != ""
}

// Can reports whether the user holds perm.
func (u *User) Can(perm string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// IsWorker reports whether the user is flagged as a worker.
func (u *User) IsWorker() bool {
	return u != nil && u.Profile.IsWorker
}
