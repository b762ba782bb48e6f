package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpapi "github.com/immxrtalbeast/roomtalk/internal/api/http"
	"github.com/immxrtalbeast/roomtalk/internal/auth"
	"github.com/immxrtalbeast/roomtalk/internal/config"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/immxrtalbeast/roomtalk/internal/repository/model"
	"github.com/immxrtalbeast/roomtalk/internal/service"
	"github.com/immxrtalbeast/roomtalk/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository(db)
	topicRepo := repository.NewGormTopicRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	hasher := auth.NewPasswordHasher(cfg.Session.BcryptCost)
	sessions := auth.NewSessionManager(auth.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	})

	authService := service.NewAuthService(userRepo, hasher, sessions, log)
	roomService := service.NewRoomService(roomRepo, topicRepo, messageRepo, log)
	userService := service.NewUserService(userRepo, roomRepo, topicRepo, messageRepo, log)

	sessionMiddleware := httpapi.NewSessionMiddleware(authService, cfg.Session.CookieName)
	authController := httpapi.NewAuthController(authService, cfg.Session.CookieName, sessions.TTL())
	roomController := httpapi.NewRoomController(roomService)
	userController := httpapi.NewUserController(userService)

	router := httpapi.SetupRouter(sessionMiddleware, authController, roomController, userController, cfg.HTTP.AllowedOrigins)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.SetupJoinTable(&model.Room{}, "Participants", &model.RoomParticipant{}); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Topic{}, &model.Room{}, &model.RoomParticipant{}, &model.Message{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
