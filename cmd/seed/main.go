package main

import (
	"log"
	"time"

	"bookhub/internal/database"
	"bookhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a local sqlite database with a demo tenant, accounts for every role
// and enough catalog data to exercise the booking flow by hand.
func main() {
	db, err := database.Connect("bookhub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{
		"audit_logs", "notifications", "invoices", "subscriptions", "plans",
		"business_rules", "cancellation_policies", "waiting_list_entries",
		"approval_levels", "bookings", "maintenance_schedules", "resources",
		"permissions", "group_members", "groups", "users", "tenants",
	} {
		db.Exec("DELETE FROM " + table)
	}

	log.Println("Creating tenant...")
	tenant := domain.Tenant{
		Name:   "Acme Coworking",
		Slug:   "acme",
		Status: domain.TenantActive,
	}
	db.Create(&tenant)

	log.Println("Creating users...")
	quota := 5
	users := []domain.User{
		{TenantID: tenant.ID, Email: "admin@acme.test", Name: "Admin", Role: domain.RoleAdmin},
		{TenantID: tenant.ID, Email: "manager@acme.test", Name: "Manager", Role: domain.RoleManager},
		{TenantID: tenant.ID, Email: "member@acme.test", Name: "Member", Role: domain.RoleMember, MonthlyQuota: &quota},
	}
	for i := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		users[i].PasswordHash = string(hash)
		db.Create(&users[i])
	}

	log.Println("Creating resources...")
	resources := []domain.Resource{
		{
			TenantID: tenant.ID, Name: "Meeting Room A", Category: domain.CategoryRoom,
			Capacity: 8, PricePerHour: 25, Status: domain.ResourceAvailable,
			OpensAt: "08:00", ClosesAt: "20:00",
		},
		{
			TenantID: tenant.ID, Name: "Board Room", Category: domain.CategoryRoom,
			Capacity: 16, PricePerHour: 60, Status: domain.ResourceAvailable,
			OpensAt: "09:00", ClosesAt: "18:00", RequiredApprovals: 2,
		},
		{
			TenantID: tenant.ID, Name: "Projector", Category: domain.CategoryEquipment,
			Capacity: 1, PricePerHour: 5, Status: domain.ResourceAvailable,
		},
		{
			TenantID: tenant.ID, Name: "Company Van", Category: domain.CategoryVehicle,
			Capacity: 3, PricePerHour: 15, Status: domain.ResourceAvailable,
			OpensAt: "06:00", ClosesAt: "22:00", RequiredApprovals: 1,
		},
	}
	for i := range resources {
		db.Create(&resources[i])
	}

	log.Println("Scheduling maintenance...")
	db.Create(&domain.MaintenanceSchedule{
		ResourceID: resources[0].ID,
		StartDate:  time.Now().AddDate(0, 0, 14),
		EndDate:    time.Now().AddDate(0, 0, 15),
		Reason:     "HVAC service",
	})

	log.Println("Creating cancellation policies...")
	db.Create(&domain.CancellationPolicy{
		TenantID:         tenant.ID,
		HoursBefore:      24,
		PenaltyType:      domain.PenaltyPercentage,
		RefundPercentage: 80,
	})
	db.Create(&domain.CancellationPolicy{
		TenantID:    tenant.ID,
		ResourceID:    &resources[1].ID,
		HoursBefore:   48,
		PenaltyType:   domain.PenaltyFixed,
		PenaltyAmount: 20,
	})

	log.Println("Creating business rules...")
	db.Create(&domain.BusinessRule{
		TenantID: tenant.ID,
		Name:     "No marathon bookings",
		Field:    "duration_hours",
		Operator: domain.OpGreaterThan,
		Value:    "8",
		Action:   domain.ActionReject,
		Priority: 100,
		IsActive: true,
	})
	db.Create(&domain.BusinessRule{
		TenantID:    tenant.ID,
		Name:        "Vehicles need sign-off",
		Field:       "category",
		Operator:    domain.OpEquals,
		Value:       "vehicle",
		Action:      domain.ActionRequireApproval,
		ActionValue: 1,
		Priority:    50,
		IsActive:    true,
	})

	log.Println("Creating plans...")
	db.Create(&domain.Plan{
		Name: "Starter", Code: "starter",
		PriceMonthly: 29, PriceYearly: 290,
		MaxResources: 10, MaxUsers: 25,
	})
	db.Create(&domain.Plan{
		Name: "Business", Code: "business",
		PriceMonthly: 99, PriceYearly: 990,
		MaxResources: 100, MaxUsers: 500,
	})

	log.Println("Seed complete.")
	log.Println("Accounts: admin@acme.test / manager@acme.test / member@acme.test (password123)")
}
