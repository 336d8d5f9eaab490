package channel

type CreateChannelRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category" binding:"omitempty,oneof=COMPANY PERSONAL"`
	Points   *float64 `json:"points"`
	Cost     *float64 `json:"cost"`
	IsActive *bool    `json:"isActive"`
}

type UpdateChannelRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category" binding:"omitempty,oneof=COMPANY PERSONAL"`
	Points   *float64 `json:"points"`
	Cost     *float64 `json:"cost"`
	IsActive *bool    `json:"isActive"`
}

type ChannelResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Points   float64 `json:"points"`
	Cost     float64 `json:"cost"`
	IsActive bool    `json:"isActive"`
}
