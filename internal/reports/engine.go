package reports

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/models"
)

// Engine agrega receita e contagens de agendamentos. Só linhas com status
// "Confirmado" entram em valores de receita; preco nulo conta como 0 e os
// valores de saída já vêm divididos por 100 (reais).
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// ---------- Tipos de resposta ----------

type ServiceSummary struct {
	Service string  `json:"service"`
	Qty     int64   `json:"qty"`
	Revenue float64 `json:"revenue"`
}

type RevenuePoint struct {
	Periodo string  `json:"periodo"`
	Valor   float64 `json:"valor"`
}

type TopClient struct {
	Name      string  `json:"name"`
	Visits    int64   `json:"visits"`
	LastVisit string  `json:"last_visit"`
	Spent     float64 `json:"spent"`
}

type Totals struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

type Summary struct {
	ByService        []ServiceSummary `json:"by_service"`
	ReceitaDetalhada []RevenuePoint   `json:"receita_detalhada"`
	Totals           Totals           `json:"totals"`
	TopClients       []TopClient      `json:"top_clients"`
}

type Dashboard struct {
	AtendimentosHoje     int64                `json:"atendimentosHoje"`
	ReceitaDia           float64              `json:"receitaDia"`
	ProximosAgendamentos int                  `json:"proximosAgendamentos"`
	ServicosRealizados   int64                `json:"servicosRealizados"`
	Agendamentos         []models.Appointment `json:"agendamentos"`
	Servicos             []ServiceSummary     `json:"servicos"`
}

type ServiceCount struct {
	Nome       string `json:"nome"`
	Quantidade int64  `json:"quantidade"`
}

type MonthlyReport struct {
	TotalAgendamentos      int64          `json:"totalAgendamentos"`
	ReceitaTotal           float64        `json:"receitaTotal"`
	ClientesAtivos         int64          `json:"clientesAtivos"`
	ServicosMaisRealizados []ServiceCount `json:"servicosMaisRealizados"`
}

// ---------- Resumo ----------

// Summary monta o relatório principal: serviços, série de receita, totais e
// top clientes. now é o relógio da barbearia; os buckets derivam dele.
func (e *Engine) Summary(periodo, dataInicio, dataFim string, now time.Time) (*Summary, error) {
	if periodo == "" {
		periodo = "mes"
	}
	rng := ResolveRange(periodo, dataInicio, dataFim, now)

	byService, err := e.servicesInRange(rng)
	if err != nil {
		return nil, err
	}

	serie, err := e.revenueSeries(periodo, dataInicio, dataFim, rng, now)
	if err != nil {
		return nil, err
	}

	totals, err := e.totals(now)
	if err != nil {
		return nil, err
	}

	topClients, err := e.topClients(rng)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ByService:        byService,
		ReceitaDetalhada: serie,
		Totals:           totals,
		TopClients:       topClients,
	}, nil
}

// servicesInRange lista todos os serviços já registrados, zerados, e
// sobrepõe as contagens confirmadas do intervalo. Ordena por quantidade
// decrescente, nome como desempate.
func (e *Engine) servicesInRange(rng Range) ([]ServiceSummary, error) {
	var services []string
	if err := e.db.Model(&models.Appointment{}).
		Distinct().
		Order("servico").
		Pluck("servico", &services).Error; err != nil {
		return nil, err
	}

	type soldRow struct {
		Service string
		Qty     int64
		Revenue int64
	}
	var sold []soldRow
	if err := e.db.Model(&models.Appointment{}).
		Select("servico AS service, COUNT(*) AS qty, SUM(COALESCE(preco, 0)) AS revenue").
		Where("data BETWEEN ? AND ? AND status = ?", rng.Inicio, rng.Fim, models.StatusConfirmado).
		Group("servico").
		Scan(&sold).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]soldRow, len(sold))
	for _, s := range sold {
		byName[s.Service] = s
	}

	out := make([]ServiceSummary, 0, len(services))
	for _, svc := range services {
		row := ServiceSummary{Service: svc}
		if s, ok := byName[svc]; ok {
			row.Qty = s.Qty
			row.Revenue = float64(s.Revenue) / 100
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		return out[i].Service < out[j].Service
	})

	return out, nil
}

// revenueSeries escolhe a estratégia de bucket pelo período:
// dia único vira horas 8h..18h, semana vira Seg..Sáb da semana corrente,
// mes vira 4 semanas, ultimos15dias vira 15 dias, o resto vira os três
// buckets fixos Hoje/Semana/Mês.
func (e *Engine) revenueSeries(periodo, dataInicio, dataFim string, rng Range, now time.Time) ([]RevenuePoint, error) {
	explicitSingleDay := dataInicio != "" && dataFim != "" && rng.Inicio == rng.Fim

	switch {
	case periodo == "hoje" || explicitSingleDay:
		return e.hourlySeries(rng.Inicio)
	case periodo == "semana":
		return e.weekdaySeries(now)
	case periodo == "mes":
		return e.trailingWeeksSeries(now)
	case periodo == "ultimos15dias":
		return e.dailySeries(now)
	default:
		return e.fixedSeries(rng, now)
	}
}

func (e *Engine) hourlySeries(day string) ([]RevenuePoint, error) {
	serie := make([]RevenuePoint, 0, 11)
	for hora := 8; hora <= 18; hora++ {
		from := fmt.Sprintf("%02d:00", hora)
		to := fmt.Sprintf("%02d:00", hora+1)

		var cents int64
		if err := e.db.Model(&models.Appointment{}).
			Select("COALESCE(SUM(COALESCE(preco, 0)), 0)").
			Where("data = ? AND hora >= ? AND hora < ? AND status = ?",
				day, from, to, models.StatusConfirmado).
			Scan(&cents).Error; err != nil {
			return nil, err
		}

		serie = append(serie, RevenuePoint{
			Periodo: fmt.Sprintf("%dh", hora),
			Valor:   float64(cents) / 100,
		})
	}
	return serie, nil
}

// weekdaySeries cobre segunda a sábado da semana corrente do relógio,
// independente do intervalo resolvido.
func (e *Engine) weekdaySeries(now time.Time) ([]RevenuePoint, error) {
	labels := []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}
	monday := now.AddDate(0, 0, -int(now.Weekday())+1)

	serie := make([]RevenuePoint, 0, len(labels))
	for i, label := range labels {
		day := monday.AddDate(0, 0, i).Format(dateLayout)

		cents, err := e.confirmedRevenue(day, day)
		if err != nil {
			return nil, err
		}
		serie = append(serie, RevenuePoint{Periodo: label, Valor: float64(cents) / 100})
	}
	return serie, nil
}

func (e *Engine) trailingWeeksSeries(now time.Time) ([]RevenuePoint, error) {
	serie := make([]RevenuePoint, 0, 4)
	for semana := 3; semana >= 0; semana-- {
		fim := now.AddDate(0, 0, -semana*7)
		inicio := fim.AddDate(0, 0, -6)

		cents, err := e.confirmedRevenue(inicio.Format(dateLayout), fim.Format(dateLayout))
		if err != nil {
			return nil, err
		}
		serie = append(serie, RevenuePoint{
			Periodo: fmt.Sprintf("Semana %d", 4-semana),
			Valor:   float64(cents) / 100,
		})
	}
	return serie, nil
}

func (e *Engine) dailySeries(now time.Time) ([]RevenuePoint, error) {
	serie := make([]RevenuePoint, 0, 15)
	for i := 14; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStr := day.Format(dateLayout)

		cents, err := e.confirmedRevenue(dayStr, dayStr)
		if err != nil {
			return nil, err
		}
		serie = append(serie, RevenuePoint{
			Periodo: day.Format("02/01"),
			Valor:   float64(cents) / 100,
		})
	}
	return serie, nil
}

func (e *Engine) fixedSeries(rng Range, now time.Time) ([]RevenuePoint, error) {
	hoje := now.Format(dateLayout)

	diaria, err := e.confirmedRevenue(hoje, hoje)
	if err != nil {
		return nil, err
	}
	semanal, err := e.confirmedRevenue(now.AddDate(0, 0, -7).Format(dateLayout), rng.Fim)
	if err != nil {
		return nil, err
	}
	mensal, err := e.confirmedRevenue(rng.Inicio, rng.Fim)
	if err != nil {
		return nil, err
	}

	return []RevenuePoint{
		{Periodo: "Hoje", Valor: float64(diaria) / 100},
		{Periodo: "Semana", Valor: float64(semanal) / 100},
		{Periodo: "Mês", Valor: float64(mensal) / 100},
	}, nil
}

// totals calcula diário/semanal/mensal direto do relógio, independente da
// série de buckets. (O comportamento antigo somava os buckets que houvesse.)
func (e *Engine) totals(now time.Time) (Totals, error) {
	hoje := now.Format(dateLayout)

	daily, err := e.confirmedRevenue(hoje, hoje)
	if err != nil {
		return Totals{}, err
	}
	weekly, err := e.confirmedRevenue(now.AddDate(0, 0, -7).Format(dateLayout), hoje)
	if err != nil {
		return Totals{}, err
	}
	monthly, err := e.confirmedRevenue(now.AddDate(0, -1, 0).Format(dateLayout), hoje)
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Daily:   float64(daily) / 100,
		Weekly:  float64(weekly) / 100,
		Monthly: float64(monthly) / 100,
	}, nil
}

func (e *Engine) topClients(rng Range) ([]TopClient, error) {
	type clientRow struct {
		Name       string
		Visits     int64
		LastVisit  string
		SpentCents int64
	}
	var rows []clientRow
	if err := e.db.Model(&models.Appointment{}).
		Select("cliente_nome AS name, COUNT(*) AS visits, MAX(data) AS last_visit, SUM(COALESCE(preco, 0)) AS spent_cents").
		Where("data BETWEEN ? AND ? AND status = ?", rng.Inicio, rng.Fim, models.StatusConfirmado).
		Group("cliente_nome").
		Order("visits DESC, spent_cents DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]TopClient, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopClient{
			Name:      r.Name,
			Visits:    r.Visits,
			LastVisit: r.LastVisit,
			Spent:     float64(r.SpentCents) / 100,
		})
	}
	return out, nil
}

// ---------- Dashboard ----------

func (e *Engine) Dashboard(now time.Time) (*Dashboard, error) {
	hoje := now.Format(dateLayout)

	var atendimentos int64
	if err := e.db.Model(&models.Appointment{}).
		Where("data = ?", hoje).
		Count(&atendimentos).Error; err != nil {
		return nil, err
	}

	receita, err := e.confirmedRevenue(hoje, hoje)
	if err != nil {
		return nil, err
	}

	var realizados int64
	if err := e.db.Model(&models.Appointment{}).
		Where("data = ? AND status = ?", hoje, models.StatusConfirmado).
		Count(&realizados).Error; err != nil {
		return nil, err
	}

	proximos := make([]models.Appointment, 0, 5)
	if err := e.db.
		Where("data >= ?", hoje).
		Order("data, hora").
		Limit(5).
		Find(&proximos).Error; err != nil {
		return nil, err
	}

	return &Dashboard{
		AtendimentosHoje:     atendimentos,
		ReceitaDia:           float64(receita) / 100,
		ProximosAgendamentos: len(proximos),
		ServicosRealizados:   realizados,
		Agendamentos:         proximos,
		Servicos:             []ServiceSummary{},
	}, nil
}

// ---------- Mensal ----------

// Monthly totaliza um intervalo explícito, ou o mês corrido quando as
// datas não vêm na query.
func (e *Engine) Monthly(dataInicio, dataFim string, now time.Time) (*MonthlyReport, error) {
	if dataInicio == "" || dataFim == "" {
		dataInicio = now.AddDate(0, -1, 0).Format(dateLayout)
		dataFim = now.Format(dateLayout)
	}

	var total int64
	if err := e.db.Model(&models.Appointment{}).
		Where("data BETWEEN ? AND ?", dataInicio, dataFim).
		Count(&total).Error; err != nil {
		return nil, err
	}

	receita, err := e.confirmedRevenue(dataInicio, dataFim)
	if err != nil {
		return nil, err
	}

	var clientes int64
	if err := e.db.Model(&models.Appointment{}).
		Where("data BETWEEN ? AND ?", dataInicio, dataFim).
		Distinct("cliente_nome").
		Count(&clientes).Error; err != nil {
		return nil, err
	}

	var servicos []ServiceCount
	if err := e.db.Model(&models.Appointment{}).
		Select("servico AS nome, COUNT(*) AS quantidade").
		Where("data BETWEEN ? AND ?", dataInicio, dataFim).
		Group("servico").
		Order("quantidade DESC").
		Limit(5).
		Scan(&servicos).Error; err != nil {
		return nil, err
	}
	if servicos == nil {
		servicos = []ServiceCount{}
	}

	return &MonthlyReport{
		TotalAgendamentos:      total,
		ReceitaTotal:           float64(receita) / 100,
		ClientesAtivos:         clientes,
		ServicosMaisRealizados: servicos,
	}, nil
}

// ---------- Helpers ----------

func (e *Engine) confirmedRevenue(inicio, fim string) (int64, error) {
	var cents int64
	err := e.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(COALESCE(preco, 0)), 0)").
		Where("data BETWEEN ? AND ? AND status = ?", inicio, fim, models.StatusConfirmado).
		Scan(&cents).Error
	return cents, err
}
