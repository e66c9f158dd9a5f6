package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/gwamegi-riders/internal/bootstrap"
	"github.com/GregMSThompson/gwamegi-riders/internal/config"
	"github.com/GregMSThompson/gwamegi-riders/internal/handlers"
	"github.com/GregMSThompson/gwamegi-riders/internal/interaction"
	"github.com/GregMSThompson/gwamegi-riders/internal/response"
	"github.com/GregMSThompson/gwamegi-riders/internal/router"
	"github.com/GregMSThompson/gwamegi-riders/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	factory := services.NewInteractionFactory(bs.Credentials, bs.Generator, interaction.DefaultPrompt(cfg.Model()), interaction.DefaultMessages())
	askserv := services.NewAskService(factory, cfg.SessionTTL)
	contserv := services.NewContentService(bs.Content)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.AskSvc = askserv
	deps.ContentSvc = contserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
