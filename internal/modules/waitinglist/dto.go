package waitinglist

type JoinRequest struct {
	ResourceID int64  `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Priority   int    `json:"priority"`
}
