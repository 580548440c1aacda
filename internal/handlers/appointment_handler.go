package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/httperr"
	"github.com/barbeariamendes/agenda-api/internal/models"
	"github.com/barbeariamendes/agenda-api/internal/prices"
	"github.com/barbeariamendes/agenda-api/internal/timezone"
)

type AppointmentHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAppointmentHandler(db *gorm.DB, log *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{db: db, log: log}
}

type AppointmentRequest struct {
	ClienteID   *uint  `json:"cliente_id"`
	ClienteNome string `json:"cliente_nome"`
	Servico     string `json:"servico"`
	Data        string `json:"data"`
	Hora        string `json:"hora"`
	Status      string `json:"status"`
	Preco       *int64 `json:"preco"`
	Observacoes string `json:"observacoes"`
	Barber      string `json:"barber"`
}

func (r *AppointmentRequest) missingRequired() bool {
	return r.ClienteNome == "" || r.Servico == "" || r.Data == "" || r.Hora == ""
}

// List aceita filtros opcionais: data exata vence; senão data_inicio e
// data_fim formam um intervalo inclusivo, cada um sozinho fica aberto de
// um lado; status entra como igualdade independente.
func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Appointment{})

	data := c.Query("data")
	dataInicio := c.Query("data_inicio")
	dataFim := c.Query("data_fim")
	status := c.Query("status")

	switch {
	case data != "":
		q = q.Where("data = ?", data)
	case dataInicio != "" && dataFim != "":
		q = q.Where("data BETWEEN ? AND ?", dataInicio, dataFim)
	case dataInicio != "":
		q = q.Where("data >= ?", dataInicio)
	case dataFim != "":
		q = q.Where("data <= ?", dataFim)
	}

	if status != "" {
		q = q.Where("status = ?", status)
	}

	appointments := make([]models.Appointment, 0)
	if err := q.Order("data, hora").Find(&appointments).Error; err != nil {
		h.log.WithError(err).Error("failed to list appointments")
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) ListToday(c *gin.Context) {
	hoje := timezone.Now().Format("2006-01-02")

	appointments := make([]models.Appointment, 0)
	if err := h.db.
		Where("data = ?", hoje).
		Order("hora").
		Find(&appointments).Error; err != nil {
		h.log.WithError(err).Error("failed to list today's appointments")
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	var ap models.Appointment
	if err := h.db.First(&ap, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "Agendamento não encontrado")
		return
	}
	c.JSON(http.StatusOK, ap)
}

// Create é aberto (sem token) para integração externa. Preço ausente vem
// da tabela de serviços; valores abaixo de 1000 são tratados como reais
// inteiros e convertidos para centavos.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.missingRequired() {
		httperr.BadRequest(c, "Cliente, serviço, data e hora são obrigatórios")
		return
	}

	if req.Status == "" {
		req.Status = models.StatusConfirmado
	}
	if req.Barber == "" {
		req.Barber = "Yuri"
	}
	preco := prices.Normalize(req.Preco, req.Servico)

	ap := models.Appointment{
		ClienteID:   req.ClienteID,
		ClienteNome: req.ClienteNome,
		Servico:     req.Servico,
		Data:        req.Data,
		Hora:        req.Hora,
		Status:      req.Status,
		Preco:       &preco,
		Observacoes: req.Observacoes,
		Barber:      req.Barber,
	}
	if err := h.db.Create(&ap).Error; err != nil {
		h.log.WithError(err).Error("failed to create appointment")
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      ap.ID,
		"message": "Agendamento criado com sucesso",
	})
}

// Update substitui todos os campos mutáveis, inclusive status, preço,
// observações e barbeiro, e toca updated_at.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.missingRequired() {
		httperr.BadRequest(c, "Cliente, serviço, data e hora são obrigatórios")
		return
	}

	result := h.db.Model(&models.Appointment{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]any{
			"cliente_nome": req.ClienteNome,
			"servico":      req.Servico,
			"data":         req.Data,
			"hora":         req.Hora,
			"status":       req.Status,
			"preco":        req.Preco,
			"observacoes":  req.Observacoes,
			"barber":       req.Barber,
		})
	if result.Error != nil {
		h.log.WithError(result.Error).Error("failed to update appointment")
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Agendamento não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento atualizado com sucesso"})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Appointment{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		h.log.WithError(result.Error).Error("failed to delete appointment")
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Agendamento não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento deletado com sucesso"})
}
