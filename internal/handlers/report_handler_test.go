package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/models"
)

func newReportRouter(db *gorm.DB) *gin.Engine {
	h := NewReportHandler(db, testLogger())
	r := gin.New()
	r.GET("/relatorios/resumo", h.Summary)
	r.GET("/relatorios/dashboard", h.Dashboard)
	r.GET("/relatorios/mensal", h.Monthly)
	r.GET("/relatorios/exportar", h.ExportCSV)
	r.POST("/relatorios/n8n", h.N8NWebhook)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/relatorios/n8n", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestN8NWebhookCreatesClientAndAppointment(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	w := postWebhook(t, r, `{"tipo":"novo_agendamento","cliente":"Maria","telefone":"11999990000","servico":"Luzes","data":"2025-03-20","hora":"14:00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID          uint `json:"id"`
		Agendamento struct {
			Status string `json:"status"`
		} `json:"agendamento"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Agendamento.Status != models.StatusPendente {
		t.Fatalf("expected Pendente got %s", resp.Agendamento.Status)
	}

	var client models.Client
	if err := db.Where("nome = ?", "Maria").First(&client).Error; err != nil {
		t.Fatalf("expected client created: %v", err)
	}

	var ap models.Appointment
	if err := db.First(&ap, resp.ID).Error; err != nil {
		t.Fatalf("expected appointment created: %v", err)
	}
	if ap.ClienteID == nil || *ap.ClienteID != client.ID {
		t.Fatalf("expected appointment linked to client %d, got %v", client.ID, ap.ClienteID)
	}
}

func TestN8NWebhookReusesExistingClient(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	db.Create(&models.Client{Nome: "Maria", Telefone: "11988887777"})

	w := postWebhook(t, r, `{"tipo":"novo_agendamento","cliente":"Maria","telefone":"11999990000","servico":"Luzes","data":"2025-03-20","hora":"14:00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var count int64
	db.Model(&models.Client{}).Where("nome = ?", "Maria").Count(&count)
	if count != 1 {
		t.Fatalf("expected no duplicate client, got %d", count)
	}
}

func TestN8NWebhookWithoutPhoneSkipsClientCreation(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	w := postWebhook(t, r, `{"tipo":"novo_agendamento","cliente":"José","servico":"Luzes","data":"2025-03-20","hora":"14:00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var clients int64
	db.Model(&models.Client{}).Count(&clients)
	if clients != 0 {
		t.Fatalf("expected no client without phone, got %d", clients)
	}

	var ap models.Appointment
	if err := db.First(&ap).Error; err != nil {
		t.Fatalf("expected appointment created: %v", err)
	}
	if ap.ClienteID != nil {
		t.Fatalf("expected dangling-free nil cliente_id, got %v", *ap.ClienteID)
	}
}

func TestN8NWebhookRejectsBadPayloads(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	if w := postWebhook(t, r, `{"tipo":"cancelamento"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported tipo got %d", w.Code)
	}
	if w := postWebhook(t, r, `{"tipo":"novo_agendamento","cliente":"Maria"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields got %d", w.Code)
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected nothing persisted, got %d", count)
	}
}

func TestSummaryEndpointShape(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/relatorios/resumo?periodo=hoje", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp struct {
		ByService        []any `json:"by_service"`
		ReceitaDetalhada []any `json:"receita_detalhada"`
		Totals           struct {
			Daily   float64 `json:"daily"`
			Weekly  float64 `json:"weekly"`
			Monthly float64 `json:"monthly"`
		} `json:"totals"`
		TopClients []any `json:"top_clients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.ReceitaDetalhada) != 11 {
		t.Fatalf("expected 11 hourly buckets got %d", len(resp.ReceitaDetalhada))
	}
}

func TestExportEndpointHeaders(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/relatorios/exportar", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "relatorio_barbearia.csv") {
		t.Fatalf("expected attachment disposition got %s", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "Data,Hora,Cliente") {
		t.Fatalf("expected csv header, got %q", w.Body.String()[:min(40, w.Body.Len())])
	}
}

func TestDashboardEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := newReportRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/relatorios/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"atendimentosHoje", "receitaDia", "proximosAgendamentos", "servicosRealizados", "agendamentos", "servicos"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing dashboard key %s", key)
		}
	}
}
