package vehicle

type CreateVehicleRequest struct {
	Name         string `json:"name" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

type UpdateVehicleRequest struct {
	Name         *string `json:"name"`
	LicensePlate *string `json:"license_plate"`
	Active       *bool   `json:"active"`
}

type VehicleResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"license_plate"`
	Active       bool   `json:"active"`
}

type CreateUsageRequest struct {
	VehicleID string  `json:"vehicle_id" binding:"required,uuid"`
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
	UsageDate string  `json:"usage_date" binding:"required"`
	Hours     float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Comment   string  `json:"comment"`
}

type UsageResponse struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	VehicleName string  `json:"vehicle_name,omitempty"`
	EmployeeID  string  `json:"employee_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	UsageDate   string  `json:"usage_date"`
	Hours       float64 `json:"hours"`
	Comment     string  `json:"comment,omitempty"`
}
