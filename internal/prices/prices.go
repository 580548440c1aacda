package prices

// Tabela de preços dos serviços, em centavos. Serviços "a partir de"
// (Selagem, Relaxamento) usam o valor mínimo.
var servicePrices = map[string]int64{
	"Sobrancelha":                       1500,
	"Selagem":                           6500,
	"Relaxamento":                       4500,
	"Pigmentação":                       3000,
	"Acabamento (Pezinho)":              2500,
	"Luzes":                             10000,
	"Limpeza de pele":                   4000,
	"Hidratação":                        4000,
	"Finalização penteado":              2500,
	"CORTE + SOBRANCELHA":               6000,
	"Corte Masculino":                   4500,
	"Raspar na maquina":                 3500,
	"Corte infantil no carrinho":        5000,
	"corte infantil":                    5000,
	"CORTE + BARBA SIMPLES":             8000,
	"COMBO CORTE + BARBOTERAPIA":        9000,
	"COMBO CORTE + BARBA + SOBRANCELHA": 9000,
	"Coloração":                         3500,
	"Barboterapia":                      5000,
	"Barba Simples":                     4000,
	"Tratamento V.O":                    9000,
}

// Lookup retorna o preço em centavos, 0 para serviço desconhecido.
func Lookup(servico string) int64 {
	return servicePrices[servico]
}

// Normalize resolve o preço final de um agendamento, em centavos.
// Sem preço informado, busca na tabela pelo serviço. Valores abaixo de 1000
// são tratados como reais inteiros e convertidos para centavos.
func Normalize(preco *int64, servico string) int64 {
	v := int64(0)
	if preco != nil {
		v = *preco
	}
	if v == 0 {
		v = Lookup(servico)
	}
	if v < 1000 {
		v = v * 100
	}
	return v
}
