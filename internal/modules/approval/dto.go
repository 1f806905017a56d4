package approval

type DecideRequest struct {
	Level   int    `json:"level" binding:"required,min=1"`
	Approve *bool  `json:"approve" binding:"required"`
	Comment string `json:"comment"`
}
