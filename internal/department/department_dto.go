package department

type CreateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id"`
}

type UpdateDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code"`
	ParentID string `json:"parent_id"`
}

type DepartmentResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Code     string               `json:"code,omitempty"`
	ParentID string               `json:"parent_id,omitempty"`
	Children []DepartmentResponse `json:"children,omitempty"`
}
