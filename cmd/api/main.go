package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookhub/internal/config"
	"bookhub/internal/database"
	"bookhub/internal/middleware"
	"bookhub/internal/modules/admin"
	"bookhub/internal/modules/approval"
	"bookhub/internal/modules/auth"
	"bookhub/internal/modules/availability"
	"bookhub/internal/modules/billing"
	"bookhub/internal/modules/booking"
	"bookhub/internal/modules/notification"
	"bookhub/internal/modules/policy"
	"bookhub/internal/modules/resource"
	"bookhub/internal/modules/rules"
	"bookhub/internal/modules/waitinglist"
	"bookhub/internal/pkg/jwt"
	"bookhub/internal/pkg/logger"
	"bookhub/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	jwtSvc := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	waitingRepo := repository.NewWaitingListRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	billingRepo := repository.NewBillingRepository(db)

	availabilitySvc := availability.NewService(bookingRepo, resourceRepo)
	ruleEngine := rules.NewEngine(ruleRepo, log)
	policySvc := policy.NewService(policyRepo).WithAudit(auditRepo, log)
	notifSvc := notification.NewService(notifRepo, log)
	waitingSvc := waitinglist.NewService(waitingRepo, resourceRepo, availabilitySvc, notifSvc, log)
	bookingSvc := booking.NewService(bookingRepo, resourceRepo, userRepo, availabilitySvc, ruleEngine, policySvc, waitingSvc, notifSvc, auditRepo, log)
	approvalSvc := approval.NewService(approvalRepo, bookingRepo, waitingSvc, notifSvc, auditRepo, log)
	resourceSvc := resource.NewService(resourceRepo)
	authSvc := auth.NewService(userRepo, tenantRepo, jwtSvc)
	billingSvc := billing.NewService(billingRepo, auditRepo, log)
	adminSvc := admin.NewService(tenantRepo, userRepo, auditRepo, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS())

	public := r.Group("/api/v1")
	auth.NewHandler(authSvc).RegisterRoutes(public)

	authed := r.Group("/api/v1", middleware.Auth(jwtSvc))
	manager := authed.Group("", middleware.ManagerOnly())
	adminGrp := authed.Group("/admin", middleware.AdminOnly())

	availability.NewHandler(availabilitySvc, resourceRepo).RegisterRoutes(authed)

	bookingHandler := booking.NewHandler(bookingSvc)
	bookingHandler.RegisterRoutes(authed)
	bookingHandler.RegisterManagerRoutes(manager)

	waitingHandler := waitinglist.NewHandler(waitingSvc)
	waitingHandler.RegisterRoutes(authed)
	waitingHandler.RegisterManagerRoutes(manager)

	approvalHandler := approval.NewHandler(approvalSvc)
	approvalHandler.RegisterRoutes(authed)
	approvalHandler.RegisterManagerRoutes(manager)

	resourceHandler := resource.NewHandler(resourceSvc)
	resourceHandler.RegisterRoutes(authed)
	resourceHandler.RegisterManagerRoutes(manager)

	policy.NewHandler(policySvc).RegisterRoutes(manager)
	rules.NewHandler(ruleRepo).RegisterManagerRoutes(manager)

	notification.NewHandler(notifSvc).RegisterRoutes(authed)

	billingHandler := billing.NewHandler(billingSvc)
	billingHandler.RegisterRoutes(authed)
	billingHandler.RegisterAdminRoutes(adminGrp)

	admin.NewHandler(adminSvc).RegisterRoutes(adminGrp)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
