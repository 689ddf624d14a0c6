package router

import (
	"time"

	"dramastream/config"
	"dramastream/internal/handler"
	"dramastream/internal/middleware"
	"dramastream/internal/repository"
	"dramastream/internal/service"
	"dramastream/pkg/receipt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, receipts *receipt.Service) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	unlockRepo := repository.NewUnlockRepository(db)
	adViewRepo := repository.NewAdViewRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)
	episodeRepo := repository.NewEpisodeRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	billingSvc := service.NewBillingService(subRepo, userRepo, receipts)
	coinSvc := service.NewCoinService(ledgerRepo, userRepo, receipts)
	unlockSvc := service.NewUnlockService(userRepo, ledgerRepo, unlockRepo, adViewRepo, billingSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	seriesHandler := handler.NewSeriesHandler(seriesRepo, episodeRepo, genreRepo)
	favoriteHandler := handler.NewFavoriteHandler(favRepo)
	historyHandler := handler.NewHistoryHandler(historyRepo)
	coinHandler := handler.NewCoinHandler(coinSvc)
	unlockHandler := handler.NewUnlockHandler(unlockSvc)
	billingHandler := handler.NewBillingHandler(billingSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/guest", authHandler.Guest)
		}

		// Catalog is readable without auth so the storefront works pre-signup.
		api.GET("/series", seriesHandler.List)
		api.GET("/series/trending", seriesHandler.Trending)
		api.GET("/series/new", seriesHandler.New)
		api.GET("/series/featured", seriesHandler.Featured)
		api.GET("/series/:id", seriesHandler.Get)
		api.GET("/series/:id/episodes", seriesHandler.Episodes)
		api.GET("/episodes/:id", seriesHandler.GetEpisode)
		api.POST("/series/:id/view", seriesHandler.View)
		api.GET("/search", seriesHandler.Search)
		api.GET("/genres", seriesHandler.Genres)
		api.GET("/billing/plans", billingHandler.Plans)
		api.GET("/coins/packages", coinHandler.Packages)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.Profile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.GET("/preferences", meHandler.DataPreferences)
			me.PUT("/preferences", meHandler.SaveDataPreferences)
			me.GET("/favorites", favoriteHandler.List)
			me.POST("/favorites/:seriesId", favoriteHandler.Toggle)
			me.GET("/favorites/:seriesId", favoriteHandler.Check)
			me.GET("/history", historyHandler.List)
			me.POST("/history", historyHandler.SaveProgress)
		}

		coins := api.Group("/coins")
		coins.Use(authMw)
		{
			coins.GET("/balance", coinHandler.Balance)
			coins.GET("/history", coinHandler.History)
			coins.POST("/earn", coinHandler.Earn)
			coins.POST("/verify-purchase", coinHandler.VerifyPurchase)
		}

		episodes := api.Group("/episodes")
		episodes.Use(authMw)
		{
			episodes.POST("/unlock", unlockHandler.Unlock)
			// Legacy client alias; same orchestrator path.
			episodes.POST("/unlock-with-coins", unlockHandler.Unlock)
			episodes.GET("/unlocked", unlockHandler.List)
			episodes.GET("/unlocked/:episodeId", unlockHandler.Check)
		}
		api.POST("/ads/watch", authMw, unlockHandler.WatchAd)

		billing := api.Group("/billing")
		billing.Use(authMw)
		{
			billing.GET("/status", billingHandler.Status)
			billing.POST("/verify", billingHandler.Verify)
			billing.POST("/cancel", billingHandler.Cancel)
		}
	}

	return r
}
