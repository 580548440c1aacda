package reports

import "time"

const dateLayout = "2006-01-02"

// Range é o intervalo de datas resolvido de um relatório, inclusivo nas
// duas pontas, no formato "2006-01-02".
type Range struct {
	Inicio string
	Fim    string
}

// ResolveRange converte um período nomeado em datas concretas. Datas
// explícitas, quando presentes, vencem o período.
func ResolveRange(periodo, dataInicio, dataFim string, now time.Time) Range {
	if dataInicio != "" && dataFim != "" {
		return Range{Inicio: dataInicio, Fim: dataFim}
	}

	var inicio time.Time
	fim := now

	switch periodo {
	case "hoje":
		inicio = now
	case "ontem":
		ontem := now.AddDate(0, 0, -1)
		inicio = ontem
		fim = ontem
	case "semana":
		inicio = now.AddDate(0, 0, -7)
	case "ultimos15dias":
		inicio = now.AddDate(0, 0, -15)
	case "trimestre":
		inicio = now.AddDate(0, -3, 0)
	case "semestre":
		inicio = now.AddDate(0, -6, 0)
	case "ano":
		inicio = now.AddDate(-1, 0, 0)
	default: // mes
		inicio = now.AddDate(0, -1, 0)
	}

	return Range{
		Inicio: inicio.Format(dateLayout),
		Fim:    fim.Format(dateLayout),
	}
}
