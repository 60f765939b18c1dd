package main

import (
	"os"

	"myzone/internal/auth"
	"myzone/internal/cache"
	"myzone/internal/config"
	C "myzone/internal/constants"
	"myzone/internal/convert"
	"myzone/internal/database"
	"myzone/internal/handlers"
	"myzone/internal/i18n"
	"myzone/internal/logger"
	"myzone/internal/timezones"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(os.Stdout, cfg.LogLevel)
	if envErr != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Host date settings
	source, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load host timezone")
	}
	converter, err := convert.New(cfg.DateFormat, source)
	if err != nil {
		log.Fatal().Err(err).Str("pattern", cfg.DateFormat).Msg("Unusable DATE_FORMAT")
	}
	log.Info().Str("pattern", converter.Pattern()).Str("timezone", converter.Source().String()).Msg("Host date settings loaded")

	if cfg.ZoneinfoDir != "" {
		timezones.Source = cfg.ZoneinfoDir
	}
	catalog := timezones.All()

	translator, err := i18n.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load translations")
	}

	if err := C.LoadTemplates(); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	authService := auth.NewService(cache.New(db), cfg)
	h := handlers.New(authService, cfg, converter, catalog, translator)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Static("/static", "./static")
	handlers.SetupRoutes(r, h, authService)

	log.Info().Str("address", cfg.Address).Msg("Starting server")
	if err := r.Run(cfg.Address); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
