package domain

import "time"

type AuditLog struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id"`
	Detail    any       `json:"detail,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
}
