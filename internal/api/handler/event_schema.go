package handler

import "github.com/share2care/admin-console/internal/core/domain"

type eventStatusRequest struct {
	Status domain.EventStatus `json:"status" validate:"required,oneof=active inactive completed cancelled"`
}

type featureRequest struct {
	Featured *bool `json:"is_featured" validate:"required"`
}
