package booking

type CreateBookingRequest struct {
	ResourceID int64  `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`

	IsRecurring bool   `json:"is_recurring"`
	Frequency   string `json:"frequency,omitempty"`
	Until       string `json:"until,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
