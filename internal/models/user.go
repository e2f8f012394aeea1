package models

import (
	"time"
)

// Roles are flat: staff can record and read, admins can additionally
// delete transactions, manage categories and schedules, and export.
// Elevation to admin happens out of band, never through the API.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	UID       string    `firestore:"uid" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	Role      string    `firestore:"role" json:"role"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
