package model

import (
	"hotel/shared/model"
)

const (
	TableName  = "device_tokens"
	EntityName = "device token"

	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldToken    = "token"
	FieldPlatform = "platform"
)

const (
	AudienceAll   = "all"
	AudienceStaff = "staff"
)

type DeviceToken struct {
	ID       string  `db:"id"`
	UserID   *string `db:"user_id"`
	Token    string  `db:"token"`
	Platform string  `db:"platform"`
	model.Metadata
}
