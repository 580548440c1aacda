package models

// Status de agendamento. O campo aceita texto livre; estes são os dois
// valores com significado para os relatórios (só "Confirmado" conta receita).
const (
	StatusPendente   = "Pendente"
	StatusConfirmado = "Confirmado"
)
