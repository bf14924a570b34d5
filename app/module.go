// Package app wires services, handlers and routes together, playing the
// role the per-package module setup played before the layout was flattened.
package app

import (
	"matchpoint-api/auth"
	"matchpoint-api/config"
	"matchpoint-api/cron"
	"matchpoint-api/handlers"
	"matchpoint-api/notify"
	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler         *handlers.PlayerHandler
	MatchHandler          *handlers.MatchHandler
	ValidationHandler     *handlers.ValidationHandler
	SweepHandler          *handlers.SweepHandler
	MatchService          *services.MatchService
	ValidationService     *services.ValidationService
	AutoValidationService *services.AutoValidationService
	Scheduler             *cron.Scheduler
	settings              config.Settings
}

func NewModule(db *gorm.DB, notifier notify.Notifier, settings config.Settings) *Module {
	matchService := services.NewMatchService(db, settings)
	badgeService := services.NewBadgeService(db)
	playerService := services.NewPlayerService(db)
	ledgerService := services.NewRatingLedgerService(db)
	validationService := services.NewValidationService(db, matchService, badgeService, notifier, settings)
	autoValidationService := services.NewAutoValidationService(db, matchService, badgeService, notifier)
	scheduler := cron.NewScheduler(autoValidationService)

	return &Module{
		PlayerHandler:         handlers.NewPlayerHandler(playerService, ledgerService, badgeService),
		MatchHandler:          handlers.NewMatchHandler(matchService),
		ValidationHandler:     handlers.NewValidationHandler(validationService),
		SweepHandler:          handlers.NewSweepHandler(autoValidationService),
		MatchService:          matchService,
		ValidationService:     validationService,
		AutoValidationService: autoValidationService,
		Scheduler:             scheduler,
		settings:              settings,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	jwt := auth.JWTMiddleware(m.settings.JWTSecret)

	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/top", m.PlayerHandler.GetTopPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/rating-history", m.PlayerHandler.GetRatingHistory)
		players.GET("/:id/matches", m.PlayerHandler.GetPlayerMatches)
		players.GET("/:id/badges", m.PlayerHandler.GetPlayerBadges)
		players.POST("", jwt, auth.RequireAdmin(), m.PlayerHandler.CreatePlayer)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.GET("/:id/rating-breakdown", m.MatchHandler.GetRatingBreakdown)
		matches.POST("", jwt, m.MatchHandler.ReportMatch)
		matches.POST("/:id/confirm", jwt, m.ValidationHandler.ConfirmMatch)
		matches.POST("/:id/reject", jwt, m.ValidationHandler.RejectMatch)
		matches.POST("/:id/contest", jwt, m.ValidationHandler.ContestMatch)
		matches.GET("/:id/contest-status", jwt, m.ValidationHandler.GetContestStatus)
		matches.POST("/:id/contest/resolve", jwt, auth.RequireAdmin(), m.ValidationHandler.ResolveContest)
	}

	internal := r.Group("/internal", auth.SweepTokenMiddleware(m.settings.SweepToken))
	{
		internal.POST("/auto-validate", m.SweepHandler.RunSweep)
		internal.GET("/auto-validate/status", m.SweepHandler.SweepStatus)
	}
}

// StartScheduler starts the hourly auto-validation sweep.
func (m *Module) StartScheduler() error {
	return m.Scheduler.Start()
}

// StopScheduler stops the sweep, aborting a run in flight.
func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}
