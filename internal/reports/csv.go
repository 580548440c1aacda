package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/barbeariamendes/agenda-api/internal/models"
)

// ExportCSV escreve todos os agendamentos do intervalo (ou todos, sem
// intervalo) ordenados por data e hora. Preço sai em centavos, como está
// na tabela. encoding/csv cuida do escape de aspas e vírgulas.
func (e *Engine) ExportCSV(w io.Writer, dataInicio, dataFim string) error {
	q := e.db.Model(&models.Appointment{}).Order("data, hora")
	if dataInicio != "" && dataFim != "" {
		q = q.Where("data BETWEEN ? AND ?", dataInicio, dataFim)
	}

	var rows []models.Appointment
	if err := q.Find(&rows).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Data", "Hora", "Cliente", "Serviço", "Status", "Preço", "Observações"}); err != nil {
		return err
	}

	for _, ap := range rows {
		preco := int64(0)
		if ap.Preco != nil {
			preco = *ap.Preco
		}
		record := []string{
			ap.Data,
			ap.Hora,
			ap.ClienteNome,
			ap.Servico,
			ap.Status,
			strconv.FormatInt(preco, 10),
			ap.Observacoes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
