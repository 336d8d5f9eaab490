package customer

type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
	CourseName  string `json:"courseName"`
	ChannelID   string `json:"sourceId"`
	OwnerID     string `json:"ownerId"`
}

type UpdateCustomerRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"companyName"`
	CourseName  *string `json:"courseName"`
	ChannelID   *string `json:"sourceId"`
	OwnerID     *string `json:"ownerId"`
}

type AddSaleLogRequest struct {
	Stage          string   `json:"stage" binding:"required,oneof=CHANCE CALL TOUCH DEAL"`
	Note           string   `json:"note"`
	IsEffective    *bool    `json:"isEffective"`
	ContractAmount *float64 `json:"contractAmount"`
}

type SaleLogResponse struct {
	ID          string   `json:"id"`
	CustomerID  string   `json:"customer_id"`
	ActorID     string   `json:"actor_id"`
	Stage       string   `json:"stage"`
	Note        string   `json:"note,omitempty"`
	IsEffective bool     `json:"isEffective"`
	DealAmount  *float64 `json:"dealAmount,omitempty"`
	ContractNo  string   `json:"contractNo,omitempty"`
	OccurredAt  string   `json:"occurredAt"`
}

type CustomerResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone,omitempty"`
	CompanyName   string            `json:"companyName,omitempty"`
	CourseName    string            `json:"courseName,omitempty"`
	ChannelID     string            `json:"channelId,omitempty"`
	ChannelName   string            `json:"channelName,omitempty"`
	OwnerID       string            `json:"ownerId"`
	Status        string            `json:"status"`
	LastContactAt string            `json:"lastContactAt,omitempty"`
	SaleLogs      []SaleLogResponse `json:"saleLogs,omitempty"`
}
