package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"residence/config"
	"residence/controllers"
	"residence/jobs"
	"residence/middleware"
	"residence/repository"
	"residence/routes"
	"residence/services"
	"residence/services/logger"
	"residence/services/notification"
	"residence/services/occupancy"
	"residence/validator"
)

func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var appLogger logger.Logger
	if cfg.Env == "prod" {
		appLogger = logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	} else {
		appLogger = logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate tables: %v", err)
		}
	}

	// the room list is served straight from postgres when redis is down
	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		appLogger.Warn("redis unavailable, room cache disabled: %v", err)
		rdb = nil
	}

	if err := validator.RegisterValidations(); err != nil {
		log.Fatalf("Failed to register validations: %v", err)
	}

	router, m, c := config.InitApp(cfg, appLogger)
	router.Use(middleware.RequestID(), middleware.RequestLogger(appLogger))

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	roomCache := services.NewRoomCache(rdb, cfg.RoomCacheTTL, appLogger)
	statusBroadcaster := notification.NewStatusBroadcaster(m, appLogger)

	reconciler := occupancy.NewReconciler(occupancy.Options{
		Bookings:  bookingRepo,
		Rooms:     roomRepo,
		Logger:    appLogger,
		Workers:   cfg.ReconcileWorkers,
		Observers: []occupancy.StatusObserver{roomCache, statusBroadcaster},
	})

	dispatcher := notification.MultiDispatcher{
		notification.NewMelodyDispatcher(m),
		notification.NewLogDispatcher(appLogger),
	}

	roomService := services.NewRoomService(services.RoomServiceOptions{
		Rooms:      roomRepo,
		Reconciler: reconciler,
		Cache:      roomCache,
		Logger:     appLogger,
		Observers:  []occupancy.StatusObserver{roomCache, statusBroadcaster},
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:         db,
		Bookings:   bookingRepo,
		Rooms:      roomRepo,
		Reconciler: reconciler,
		Clock:      occupancy.SystemClock,
		Logger:     appLogger,
	})
	dashboardService := services.NewDashboardService(services.DashboardServiceOptions{
		Rooms:          roomRepo,
		Bookings:       bookingRepo,
		Reconciler:     reconciler,
		CheckoutWindow: cfg.CriticalCheckoutWindow,
		Logger:         appLogger,
	})
	stayNoticeService := services.NewStayNoticeService(services.StayNoticeServiceOptions{
		Bookings:      bookingRepo,
		Notifications: notificationRepo,
		Dispatcher:    dispatcher,
		Threshold:     cfg.StayNoticeThreshold,
		Logger:        appLogger,
	})

	if err := jobs.InitCronJobs(c, jobs.Schedule{
		ReconcileSpec:  cfg.ReconcileCron,
		StayNoticeSpec: cfg.StayNoticeCron,
		Timeout:        10 * time.Minute,
	}, reconciler, stayNoticeService, appLogger); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m, appLogger)

	routes.SetupRoutes(router, routes.Controllers{
		Rooms:     controllers.NewRoomController(roomService, appLogger),
		Bookings:  controllers.NewBookingController(bookingService, appLogger),
		Dashboard: controllers.NewDashboardController(dashboardService, appLogger),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("Server starting on port " + cfg.Port + "...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	cronCtx := c.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown: %v", err)
	}
	if err := m.Close(); err != nil {
		appLogger.Warn("websocket hub close: %v", err)
	}
	select {
	case <-cronCtx.Done():
	case <-shutdownCtx.Done():
		appLogger.Warn("cron jobs still running at shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
