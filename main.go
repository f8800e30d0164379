package main

import (
	"github.com/newsblog/newsblog/config"
	"github.com/newsblog/newsblog/models"
	"github.com/newsblog/newsblog/routes"
	"github.com/newsblog/newsblog/services"
	"github.com/newsblog/newsblog/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Article{}, &models.Comment{}, &models.Feedback{}, &models.PageView{})

	if cfg.SeedDemo {
		if err := services.Seed(db); err != nil {
			utils.Sugar.Warnf("demo seed failed: %v", err)
		}
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
