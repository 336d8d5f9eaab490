package commission

import "time"

type UpdateCommissionRequest struct {
	Commission float64 `json:"commission" binding:"required,gt=0"`
}

type CommissionResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	SaleLogID    string    `json:"saleLogId"`
	Amount       string    `json:"amount"`
	Commission   string    `json:"commission"`
	Status       string    `json:"status"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toCommissionResponse(row ListedCommission) CommissionResponse {
	return CommissionResponse{
		ID:           row.ID.String(),
		UserID:       row.UserID.String(),
		UserName:     row.UserName,
		CustomerID:   row.CustomerID.String(),
		CustomerName: row.CustomerName,
		SaleLogID:    row.SaleLogID.String(),
		Amount:       row.Amount.StringFixed(2),
		// row.Commission is the embedded struct; the decimal lives one
		// level down under the same name.
		Commission: row.Commission.Commission.StringFixed(2),
		Status:       row.Status,
		Type:         row.Type,
		CreatedAt:    row.CreatedAt,
	}
}
