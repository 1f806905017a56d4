package resource

type CreateResourceRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Category          string  `json:"category" binding:"required,oneof=room equipment vehicle service"`
	Capacity          int     `json:"capacity" binding:"gte=0"`
	PricePerHour      float64 `json:"price_per_hour" binding:"gte=0"`
	OpensAt           string  `json:"opens_at"`
	ClosesAt          string  `json:"closes_at"`
	RequiredApprovals int     `json:"required_approvals" binding:"gte=0"`
}

type UpdateResourceRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Capacity          *int     `json:"capacity"`
	PricePerHour      *float64 `json:"price_per_hour"`
	Status            *string  `json:"status"`
	OpensAt           *string  `json:"opens_at"`
	ClosesAt          *string  `json:"closes_at"`
	RequiredApprovals *int     `json:"required_approvals"`
}

type MaintenanceRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}
