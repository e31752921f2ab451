package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siteworks-hq/siteworks-backend-go/internal/config"
	appHTTP "github.com/siteworks-hq/siteworks-backend-go/internal/handler/http"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/cron"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/events"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/jwt"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
	"github.com/siteworks-hq/siteworks-backend-go/internal/repository/postgresql"
	"github.com/siteworks-hq/siteworks-backend-go/internal/repository/rediscache"
	attendanceService "github.com/siteworks-hq/siteworks-backend-go/internal/service/attendance"
	serviceAuth "github.com/siteworks-hq/siteworks-backend-go/internal/service/auth"
	cashbookService "github.com/siteworks-hq/siteworks-backend-go/internal/service/cashbook"
	inventoryService "github.com/siteworks-hq/siteworks-backend-go/internal/service/inventory"
	payrollService "github.com/siteworks-hq/siteworks-backend-go/internal/service/payroll"
	siteService "github.com/siteworks-hq/siteworks-backend-go/internal/service/site"
	workerService "github.com/siteworks-hq/siteworks-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheTTL, err := time.ParseDuration(cfg.Redis.TTL)
	if err != nil {
		fmt.Println("Invalid REDIS_TTL:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	inventoryRepo := postgresql.NewInventoryRepository(db)
	cashbookRepo := postgresql.NewCashbookRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	// Attendance and the roster sit behind the Redis read cache so short
	// database outages do not blank the dashboard.
	workerRepo := rediscache.NewWorkerRepository(postgresql.NewWorkerRepository(db), redisClient, cacheTTL)
	attendanceRepo := rediscache.NewAttendanceRepository(postgresql.NewAttendanceRepository(db), redisClient, cacheTTL)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)
	siteSvc := siteService.NewSiteService(siteRepo)
	workerSvc := workerService.NewWorkerService(workerRepo, siteRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo, hub, publisher)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, workerRepo, attendanceRepo, hub, publisher)
	inventorySvc := inventoryService.NewInventoryService(inventoryRepo, hub)
	cashbookSvc := cashbookService.NewCashbookService(cashbookRepo, hub)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Site:       appHTTP.NewSiteHandler(siteSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Inventory:  appHTTP.NewInventoryHandler(inventorySvc),
		Cashbook:   appHTTP.NewCashbookHandler(cashbookSvc),
		Events:     appHTTP.NewEventsHandler(hub),
	}, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
