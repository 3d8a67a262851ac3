package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pandhuwib/go-blog-api/internal/config"
	"github.com/pandhuwib/go-blog-api/internal/database"
	"github.com/pandhuwib/go-blog-api/internal/handler"
	"github.com/pandhuwib/go-blog-api/internal/middleware"
	"github.com/pandhuwib/go-blog-api/internal/repository"
	"github.com/pandhuwib/go-blog-api/internal/router"
	"github.com/pandhuwib/go-blog-api/internal/service"
	"github.com/pandhuwib/go-blog-api/internal/validator"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.EnsureSchema(ctx, db)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewUserRoleRepo(db)
	statusRepo := repository.NewUserStatusRepo(db)
	postRepo := repository.NewPostRepo(db)

	cache := middleware.NewResponseCache(config.NewRedisClient(), time.Duration(cfg.CacheTTLSec)*time.Second)
	events := service.NewEventPublisher(cfg.RabbitURL)

	userValidator := validator.NewUserValidator(userRepo, roleRepo, statusRepo)
	roleValidator := validator.NewUserRoleValidator(roleRepo)
	statusValidator := validator.NewUserStatusValidator(statusRepo)
	postValidator := validator.NewPostValidator(postRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Env:       cfg.Env,
		UploadDir: cfg.UploadDir,
		Auth:      handler.NewAuthHandler(cfg, userRepo, userValidator, cache),
		Users:     handler.NewUserHandler(cfg, userRepo, userValidator, cache, events),
		Roles:     handler.NewUserRoleHandler(roleRepo, roleValidator, cache),
		Statuses:  handler.NewUserStatusHandler(statusRepo, statusValidator, cache),
		Posts:     handler.NewPostHandler(postRepo, postValidator, cache, events),
		Guard:     middleware.AuthGuard(cfg.JWTSecret, userRepo),
		Cache:     cache,
	})

	log.Printf("server running in %s on port %s", cfg.Env, cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
