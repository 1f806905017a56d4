package billing

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	PriceMonthly float64 `json:"price_monthly" binding:"gte=0"`
	PriceYearly  float64 `json:"price_yearly" binding:"gte=0"`
	MaxResources int     `json:"max_resources" binding:"gte=0"`
	MaxUsers     int     `json:"max_users" binding:"gte=0"`
}

type SubscribeRequest struct {
	PlanID int64  `json:"plan_id" binding:"required"`
	Period string `json:"period" binding:"required,oneof=monthly yearly"`
}
