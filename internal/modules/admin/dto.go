package admin

type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required,lowercase"`
}

type UpdateTenantRequest struct {
	Name     *string        `json:"name"`
	Features map[string]any `json:"features"`
	Settings map[string]any `json:"settings"`
}

type SetQuotaRequest struct {
	// MonthlyQuota null lifts the cap.
	MonthlyQuota *int `json:"monthly_quota"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member manager admin"`
}
