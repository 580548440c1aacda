package models

import "time"

// Appointment é um agendamento. ClienteNome é uma cópia feita na criação e
// nunca re-sincronizada com a tabela de clientes: o histórico mostra o nome
// da época do atendimento. Data e Hora ficam como texto ("2006-01-02" e
// "15:04") para que filtros e agregações comparem lexicograficamente.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClienteID   *uint  `json:"cliente_id"`
	ClienteNome string `gorm:"size:100;not null" json:"cliente_nome"`

	Servico string `gorm:"size:100;not null" json:"servico"`
	Data    string `gorm:"size:10;not null;index" json:"data"`
	Hora    string `gorm:"size:5;not null" json:"hora"`

	// Preco em centavos; camadas de exibição dividem por 100.
	Status      string `gorm:"size:20;default:'Pendente'" json:"status"`
	Preco       *int64 `json:"preco"`
	Observacoes string `gorm:"type:text" json:"observacoes"`
	Barber      string `gorm:"size:50;default:'Yuri'" json:"barber"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "agendamentos"
}
