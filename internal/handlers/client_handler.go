package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/httperr"
	"github.com/barbeariamendes/agenda-api/internal/models"
)

type ClientHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewClientHandler(db *gorm.DB, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{db: db, log: log}
}

type ClientRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

func (h *ClientHandler) List(c *gin.Context) {
	clients := make([]models.Client, 0)
	if err := h.db.Order("nome").Find(&clients).Error; err != nil {
		h.log.WithError(err).Error("failed to list clients")
		httperr.Internal(c)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	var client models.Client
	if err := h.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "Cliente não encontrado")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Nome == "" {
		httperr.BadRequest(c, "Nome é obrigatório")
		return
	}

	client := models.Client{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		Email:    req.Email,
	}
	if err := h.db.Create(&client).Error; err != nil {
		h.log.WithError(err).Error("failed to create client")
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      client.ID,
		"message": "Cliente criado com sucesso",
	})
}

// Update substitui todos os campos mutáveis de uma vez.
func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Nome == "" {
		httperr.BadRequest(c, "Nome é obrigatório")
		return
	}

	result := h.db.Model(&models.Client{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]any{
			"nome":     req.Nome,
			"telefone": req.Telefone,
			"email":    req.Email,
		})
	if result.Error != nil {
		h.log.WithError(result.Error).Error("failed to update client")
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Cliente não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente atualizado com sucesso"})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Client{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		h.log.WithError(result.Error).Error("failed to delete client")
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Cliente não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente deletado com sucesso"})
}
