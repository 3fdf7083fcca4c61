// Copyright (c) 2023-2025 RapidaAI
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_httpapi

import (
	"github.com/rapidaai/meetingbot/pkg/commons"
	"github.com/rapidaai/meetingbot/pkg/configs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine for the bot-control surface: CORS
// middleware, then every route in BotRoutes.
func NewEngine(cfg *configs.AppConfig, logger commons.Logger, handler *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	BotRoutes(engine, logger, handler)
	return engine
}

// BotRoutes registers the five bot-control endpoints.
func BotRoutes(engine *gin.Engine, logger commons.Logger, handler *Handler) {
	logger.Info("bot control routes added to engine")
	apiv1 := engine.Group("")
	{
		apiv1.POST("/start-bot", handler.StartBot)
		apiv1.POST("/bot-command", handler.BotCommand)
		apiv1.GET("/bot-status", handler.BotStatus)
		apiv1.POST("/transcribe-webm", handler.TranscribeWebm)
		apiv1.POST("/force-reset", handler.ForceReset)
	}
}
