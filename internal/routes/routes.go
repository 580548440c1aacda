package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/config"
	"github.com/barbeariamendes/agenda-api/internal/handlers"
	"github.com/barbeariamendes/agenda-api/internal/middleware"
)

// RegisterRoutes monta a API sob /api-yuri. Três rotas são abertas de
// propósito, para integração externa: login, criação de agendamento e o
// webhook N8N. Todo o resto exige token.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {

	authHandler := handlers.NewAuthHandler(db, cfg, log)
	clientHandler := handlers.NewClientHandler(db, log)
	appointmentHandler := handlers.NewAppointmentHandler(db, log)
	reportHandler := handlers.NewReportHandler(db, log)

	api := r.Group("/api-yuri")

	// ------------------------------
	// Rotas abertas
	// ------------------------------
	api.POST("/auth/login", authHandler.Login)
	api.POST("/agendamentos", appointmentHandler.Create)
	api.POST("/relatorios/n8n", reportHandler.N8NWebhook)

	// ------------------------------
	// Rotas autenticadas
	// ------------------------------
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/clientes", clientHandler.List)
		secured.GET("/clientes/:id", clientHandler.Get)
		secured.POST("/clientes", clientHandler.Create)
		secured.PUT("/clientes/:id", clientHandler.Update)
		secured.DELETE("/clientes/:id", clientHandler.Delete)

		secured.GET("/agendamentos", appointmentHandler.List)
		secured.GET("/agendamentos/hoje", appointmentHandler.ListToday)
		secured.GET("/agendamentos/:id", appointmentHandler.Get)
		secured.PUT("/agendamentos/:id", appointmentHandler.Update)
		secured.DELETE("/agendamentos/:id", appointmentHandler.Delete)

		secured.GET("/relatorios/resumo", reportHandler.Summary)
		secured.GET("/relatorios/dashboard", reportHandler.Dashboard)
		secured.GET("/relatorios/mensal", reportHandler.Monthly)
		secured.GET("/relatorios/exportar", reportHandler.ExportCSV)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint não encontrado"})
	})
}
