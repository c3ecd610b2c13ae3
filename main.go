package main

import (
	"time"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/routes"
	"github.com/inkpress/inkpress/session"
	"github.com/inkpress/inkpress/store"
	"github.com/inkpress/inkpress/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	users := store.NewGormUserStore(db)
	posts := store.NewGormPostStore(db)

	var sessionStore session.Store
	if rc := utils.GetRedis(); rc != nil {
		sessionStore = session.NewRedisStore(rc)
	} else {
		utils.Sugar.Info("redis not configured, using in-process session store")
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour, sessionStore)

	r := routes.SetupRouter(cfg, users, posts, sessions)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
