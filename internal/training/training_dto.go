package training

type AssignRequest struct {
	AssigneeID string `json:"assigneeId" binding:"required"`
}

type SubmitLogRequest struct {
	Stage   string   `json:"stage" binding:"required"`
	Score   *float64 `json:"score"`
	Result  string   `json:"result"`
	Content string   `json:"content"`
}

type TrainingLogResponse struct {
	ID          string   `json:"id"`
	TrainingID  string   `json:"trainingId"`
	Stage       string   `json:"stage"`
	Score       *float64 `json:"score,omitempty"`
	Result      string   `json:"result,omitempty"`
	Content     string   `json:"content,omitempty"`
	Status      string   `json:"status"`
	ApprovedBy  string   `json:"approvedBy,omitempty"`
	SubmittedAt string   `json:"submittedAt"`
}

type TrainingResponse struct {
	ID           string                `json:"id"`
	CustomerID   string                `json:"customerId"`
	CustomerName string                `json:"customerName,omitempty"`
	CourseName   string                `json:"courseName,omitempty"`
	AssigneeID   string                `json:"assigneeId,omitempty"`
	AssigneeName string                `json:"assigneeName,omitempty"`
	Status       string                `json:"status"`
	Logs         []TrainingLogResponse `json:"logs,omitempty"`
}
