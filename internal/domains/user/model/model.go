package model

import (
	"time"

	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "full_name"
	FieldPhone        = "phone"
	FieldRoles        = "roles"
	FieldProfileImage = "profile_image"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

// User is an account of the identity provider. Roles holds the metadata
// roles granted directly on the account.
type User struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	Password     string         `db:"password"`
	FullName     *string        `db:"full_name"`
	Phone        *string        `db:"phone"`
	Roles        pq.StringArray `db:"roles"`
	ProfileImage *string        `db:"profile_image"`
	LastLogin    *time.Time     `db:"last_login"`
	Active       bool           `db:"active"`
	model.Metadata
}
