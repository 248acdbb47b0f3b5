package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/config"
	"github.com/yeremiapane/restaurant-orders/database"
	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/router"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// app wires configuration, storage and services for the commands.
type app struct {
	cfg    *config.Config
	db     *gorm.DB
	menu   *menu.Registry
	users  *services.UserService
	orders *services.OrderService
}

func newApp() (*app, error) {
	cfg := config.Load()
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	case "":
	default:
		utils.InfoLogger.Warnf("unknown GIN_MODE %q ignored", cfg.GinMode)
	}

	registry, err := loadMenu(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		db:     db,
		menu:   registry,
		users:  services.NewUserService(db),
		orders: services.NewOrderService(db, registry),
	}, nil
}

func loadMenu(cfg *config.Config) (*menu.Registry, error) {
	if cfg.MenuFile == "" {
		return menu.Default(), nil
	}
	registry, err := menu.LoadFile(cfg.MenuFile)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Infof("Loaded %d menu items from %s", registry.Len(), cfg.MenuFile)
	return registry, nil
}

// bootstrap creates the schema and, when configured, the first administrator.
func (a *app) bootstrap(ctx context.Context) error {
	if err := database.Migrate(a.db); err != nil {
		return err
	}
	if _, err := a.users.EnsureAdmin(ctx, a.cfg.Admin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}

func (a *app) handler() *gin.Engine {
	return router.SetupRouter(router.Deps{
		DB:     a.db,
		Config: a.cfg,
		Menu:   a.menu,
		Users:  a.users,
		Orders: a.orders,
	})
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
