package project

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Client      string `json:"client"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Client      *string `json:"client"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE COMPLETED ARCHIVED"`
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Client      string `json:"client"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
