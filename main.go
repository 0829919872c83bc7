package main

import (
	"context"
	"time"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
	"github.com/karmakarsharmila40/idea-publishing-platform/routes"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		config.CloseDatabase(ctx)
	}()

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
