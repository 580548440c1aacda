package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/httperr"
	"github.com/barbeariamendes/agenda-api/internal/models"
	"github.com/barbeariamendes/agenda-api/internal/reports"
	"github.com/barbeariamendes/agenda-api/internal/timezone"
)

type ReportHandler struct {
	db     *gorm.DB
	engine *reports.Engine
	log    *logrus.Logger
}

func NewReportHandler(db *gorm.DB, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		db:     db,
		engine: reports.NewEngine(db),
		log:    log,
	}
}

func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.engine.Summary(
		c.Query("periodo"),
		c.Query("data_inicio"),
		c.Query("data_fim"),
		timezone.Now(),
	)
	if err != nil {
		h.log.WithError(err).Error("failed to build summary report")
		httperr.Internal(c)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.engine.Dashboard(timezone.Now())
	if err != nil {
		h.log.WithError(err).Error("failed to build dashboard")
		httperr.Internal(c)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *ReportHandler) Monthly(c *gin.Context) {
	report, err := h.engine.Monthly(
		c.Query("dataInicio"),
		c.Query("dataFim"),
		timezone.Now(),
	)
	if err != nil {
		h.log.WithError(err).Error("failed to build monthly report")
		httperr.Internal(c)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="relatorio_barbearia.csv"`)

	if err := h.engine.ExportCSV(c.Writer, c.Query("dataInicio"), c.Query("dataFim")); err != nil {
		h.log.WithError(err).Error("failed to export csv report")
		httperr.Internal(c)
		return
	}
}

// ---------- Webhook N8N ----------

type N8NRequest struct {
	Tipo     string `json:"tipo"`
	Cliente  string `json:"cliente"`
	Telefone string `json:"telefone"`
	Servico  string `json:"servico"`
	Data     string `json:"data"`
	Hora     string `json:"hora"`
}

// N8NWebhook é aberto (sem token) por decisão de integração. Cria o
// agendamento como "Pendente" e resolve o cliente pelo nome dentro de uma
// transação, para que chamadas idênticas concorrentes não dupliquem o
// cadastro.
func (h *ReportHandler) N8NWebhook(c *gin.Context) {
	var req N8NRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Dados incompletos para agendamento")
		return
	}

	h.log.WithFields(logrus.Fields{
		"tipo":    req.Tipo,
		"cliente": req.Cliente,
		"servico": req.Servico,
	}).Info("n8n webhook received")

	if req.Tipo != "novo_agendamento" {
		httperr.BadRequest(c, "Tipo de operação não suportado")
		return
	}
	if req.Cliente == "" || req.Servico == "" || req.Data == "" || req.Hora == "" {
		httperr.BadRequest(c, "Dados incompletos para agendamento")
		return
	}

	var ap models.Appointment
	err := h.db.Transaction(func(tx *gorm.DB) error {
		clienteID, err := resolveClientByName(tx, req.Cliente, req.Telefone)
		if err != nil {
			return err
		}

		ap = models.Appointment{
			ClienteID:   clienteID,
			ClienteNome: req.Cliente,
			Servico:     req.Servico,
			Data:        req.Data,
			Hora:        req.Hora,
			Status:      models.StatusPendente,
		}
		return tx.Create(&ap).Error
	})
	if err != nil {
		h.log.WithError(err).Error("failed to process n8n webhook")
		httperr.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      ap.ID,
		"message": "Agendamento criado com sucesso via N8N",
		"agendamento": gin.H{
			"id":           ap.ID,
			"cliente_nome": ap.ClienteNome,
			"servico":      ap.Servico,
			"data":         ap.Data,
			"hora":         ap.Hora,
			"status":       ap.Status,
		},
	})
}

// resolveClientByName devolve o id de um cliente com esse nome, criando o
// cadastro quando não existe e um telefone foi informado. Sem cadastro e
// sem telefone, o agendamento fica sem cliente_id.
func resolveClientByName(tx *gorm.DB, nome, telefone string) (*uint, error) {
	var client models.Client
	err := tx.Where("nome = ?", nome).First(&client).Error
	if err == nil {
		return &client.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if telefone == "" {
		return nil, nil
	}

	client = models.Client{Nome: nome, Telefone: telefone}
	if err := tx.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client.ID, nil
}
