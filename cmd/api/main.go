package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/barbeariamendes/agenda-api/internal/config"
	dbpkg "github.com/barbeariamendes/agenda-api/internal/db"
	"github.com/barbeariamendes/agenda-api/internal/middleware"
	"github.com/barbeariamendes/agenda-api/internal/routes"
)

func main() {

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db := dbpkg.NewDB(cfg, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "API Barbearia Mendes funcionando!",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Infof("API rodando na porta %s", cfg.ServerPort)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
