package user

type CreateUserRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password"`
	Role         string `json:"role" binding:"required,oneof=ADMIN MANAGER SUPERVISOR EMPLOYEE HR FINANCE"`
	Status       string `json:"status"`
	DepartmentID string `json:"department_id"`
	SupervisorID string `json:"supervisor_id"`
}

type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Role         *string `json:"role"`
	Status       *string `json:"status"`
	DepartmentID *string `json:"department_id"`
	SupervisorID *string `json:"supervisor_id"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	DepartmentID string `json:"department_id,omitempty"`
	SupervisorID string `json:"supervisor_id,omitempty"`
}

// UserOption is the trimmed shape used by assignment dropdowns.
type UserOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
