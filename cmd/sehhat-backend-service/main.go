package main

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/umoor-sehhat/sehhat-backend/internal/config"
	"github.com/umoor-sehhat/sehhat-backend/pkg/db"
	v1 "github.com/umoor-sehhat/sehhat-backend/pkg/http/v1"
	"github.com/umoor-sehhat/sehhat-backend/pkg/runner"
)

const (
	runnerCooldownInSeconds = 3600
)

func healthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "sehhat backend running"})
}

func main() {
	conf := config.InitConfig()
	sehhatDBService := db.NewSehhatDBService(conf.SehhatDBConfig)

	logger.SetLevel(conf.LogLevel)

	if !conf.GinDebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Start runner
	backgroundRunner := runner.NewRunner(sehhatDBService, runnerCooldownInSeconds)
	backgroundRunner.Run()

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "Api-Key"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.GET("/health", healthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := v1.NewHTTPHandler(
		sehhatDBService,
		conf.APIKeys,
		conf.AdminITSNumbers,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddPrincipalAPI(v1Root)
	v1APIHandlers.AddMozeAPI(v1Root)
	v1APIHandlers.AddContentAPI(v1Root)
	v1APIHandlers.AddSurveyAPI(v1Root)
	v1APIHandlers.AddPetitionAPI(v1Root)
	v1APIHandlers.AddMedicalAPI(v1Root)

	logger.Info.Printf("Umoor Sehhat backend started, listening on port %s", conf.Port)
	logger.Error.Fatal(router.Run(":" + conf.Port))
}
