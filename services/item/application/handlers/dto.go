package handlers

import (
	"time"

	"github.com/ghuser/geoitems/services/item/domain/models"
	domainsvcs "github.com/ghuser/geoitems/services/item/domain/services"
)

// CreateItemRequest is the request body for POST /items. Coordinates accept
// numbers or numeric strings.
type CreateItemRequest struct {
	Name      string   `json:"name"                example:"Item1"`
	Postcode  string   `json:"postcode"            example:"12345"`
	Latitude  any      `json:"latitude"            swaggertype:"number" example:"45"`
	Longitude any      `json:"longitude"           swaggertype:"number" example:"-70"`
	Title     *string  `json:"title,omitempty"     example:"Desk lamp"`
	Users     []string `json:"users"               example:"Item1,Alice"`
	StartDate *string  `json:"startDate,omitempty" example:"2025-04-01T00:00:00Z"`
} // @name CreateItemRequest

func (r *CreateItemRequest) fields() domainsvcs.CreateFields {
	return domainsvcs.CreateFields{
		Name:      r.Name,
		Postcode:  r.Postcode,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Title:     r.Title,
		Users:     r.Users,
		StartDate: r.StartDate,
	}
}

// UpdateItemRequest is the request body for PUT /items/{id}. Only these keys
// are applied; any other key in the body is ignored.
type UpdateItemRequest struct {
	Name      *string  `json:"name,omitempty"      example:"Item1"`
	StartDate *string  `json:"startDate,omitempty" example:"2025-04-01T00:00:00Z"`
	Title     *string  `json:"title,omitempty"     example:"Desk lamp"`
	Users     []string `json:"users,omitempty"     example:"Item1,Bob"`
} // @name UpdateItemRequest

func (r *UpdateItemRequest) patch() domainsvcs.ItemPatch {
	return domainsvcs.ItemPatch{
		Name:      r.Name,
		StartDate: r.StartDate,
		Title:     r.Title,
		Users:     r.Users,
	}
}

// ItemResponse is the serialized form of an item.
type ItemResponse struct {
	ID                     string   `json:"id"                     example:"507f1f77bcf86cd799439011"`
	Name                   string   `json:"name"                   example:"Item1"`
	Postcode               string   `json:"postcode"               example:"12345"`
	Latitude               float64  `json:"latitude"               example:"45"`
	Longitude              float64  `json:"longitude"              example:"-70"`
	DirectionFromReference string   `json:"directionFromReference" example:"NE"`
	Title                  *string  `json:"title"                  example:"Desk lamp"`
	Users                  []string `json:"users"                  example:"Item1,Alice"`
	StartDate              *string  `json:"startDate"              example:"2025-04-01T00:00:00Z"`
} // @name ItemResponse

// NewItemResponse serializes item. startDate is rendered as RFC 3339 in UTC.
func NewItemResponse(item *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:                     item.ID.String(),
		Name:                   item.Name.String(),
		Postcode:               item.Postcode,
		Latitude:               item.Latitude,
		Longitude:              item.Longitude,
		DirectionFromReference: item.DirectionFromReference.String(),
		Title:                  item.Title,
		Users:                  item.Users,
	}
	if resp.Users == nil {
		resp.Users = []string{}
	}
	if item.StartDate != nil {
		s := item.StartDate.UTC().Format(time.RFC3339)
		resp.StartDate = &s
	}
	return resp
}

// CreateItemResponse is returned on successful item creation.
type CreateItemResponse struct {
	ID      string `json:"id"      example:"507f1f77bcf86cd799439011"`
	Message string `json:"message" example:"Item created successfully!"`
} // @name CreateItemResponse

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"Item with ID 507f1f77bcf86cd799439011 has been successfully updated."`
} // @name MessageResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse
