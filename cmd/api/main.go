package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/barberia-premium/booking-api/internal/config"
	dbpkg "github.com/barberia-premium/booking-api/internal/db"
	"github.com/barberia-premium/booking-api/internal/routes"
)

func main() {

	log := zerolog.New(os.Stdout).With().Timestamp().Str("app", "booking-api").Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
