package salestarget

type UpsertTargetRequest struct {
	UserID string  `json:"userId" binding:"required"`
	Month  string  `json:"month" binding:"required,len=7"`
	Amount float64 `json:"amount" binding:"required,gte=0"`
}

type TargetResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	UserName string  `json:"userName,omitempty"`
	Month    string  `json:"month"`
	Amount   float64 `json:"amount"`
}

// TeamStatsRow is one user's funnel activity for a month, next to their
// target.
type TeamStatsRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	LeadCount      int64   `json:"leadCount"`
	ChanceCount    int64   `json:"chanceCount"`
	CallCount      int64   `json:"callCount"`
	TouchCount     int64   `json:"touchCount"`
	DealCount      int64   `json:"dealCount"`
	ContractAmount float64 `json:"contractAmount"`
	TargetAmount   float64 `json:"targetAmount"`
	CompletionRate float64 `json:"completionRate"`
}
