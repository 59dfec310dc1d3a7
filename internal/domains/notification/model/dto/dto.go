package dto

import (
	"hotel/infras/push"
	"hotel/internal/domains/notification/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type RegisterDeviceRequest struct {
	Token    string `json:"token"    validate:"required,notblank,max=255"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

func (r *RegisterDeviceRequest) ToModel(userID string) model.DeviceToken {
	now := timezone.Now()

	var owner *string
	if userID != "" {
		owner = &userID
	}

	return model.DeviceToken{
		ID:       uuid.NewString(),
		UserID:   owner,
		Token:    r.Token,
		Platform: r.Platform,
		Metadata: gModel.CreatedBy(userID, now),
	}
}

type BroadcastRequest struct {
	Title    string         `json:"title"    validate:"required,notblank,max=100"`
	Body     string         `json:"body"     validate:"required,notblank,max=500"`
	Data     map[string]any `json:"data"`
	Audience string         `json:"audience" validate:"omitempty,oneof=all staff"`
}

// Messages addresses the notification to every token.
func (b *BroadcastRequest) Messages(tokens []string) []push.Message {
	messages := make([]push.Message, len(tokens))
	for i, token := range tokens {
		messages[i] = push.Message{
			To:    token,
			Title: b.Title,
			Body:  b.Body,
			Data:  b.Data,
			Sound: "default",
		}
	}

	return messages
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
	Batches    int `json:"batches"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	Pruned     int `json:"pruned"`
}

func (b *BroadcastResponse) FromResult(recipients int, result push.Result) {
	b.Recipients = recipients
	b.Batches = result.Batches
	b.Sent = result.Sent
	b.Failed = result.Failed
	b.Pruned = len(result.InvalidTokens)
}

type DeviceResponse struct {
	ID       string  `json:"id"`
	UserID   *string `json:"user_id"`
	Token    string  `json:"token"`
	Platform string  `json:"platform"`
	gDto.Metadata
}

func (d *DeviceResponse) FromModel(model model.DeviceToken) {
	d.ID = model.ID
	d.UserID = model.UserID
	d.Token = model.Token
	d.Platform = model.Platform
	d.Metadata.FromModel(model.Metadata)
}

type GetDevicesResponse struct {
	Devices   []DeviceResponse `json:"devices"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (g *GetDevicesResponse) FromModels(models []model.DeviceToken, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Devices = make([]DeviceResponse, len(models))
	for i, mod := range models {
		g.Devices[i].FromModel(mod)
	}
}
