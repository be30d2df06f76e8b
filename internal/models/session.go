package models

import "time"

// Session is the single refresh-token row per user. The stored token is
// KMS-encrypted; a login overwrites it, a logout deletes it.
type Session struct {
	UID          string    `firestore:"uid" json:"uid"`
	RefreshToken string    `firestore:"refreshToken" json:"-"`
	LastActive   time.Time `firestore:"lastActive" json:"lastActive"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"-"`
}
