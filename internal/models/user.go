package models

import "time"

// User é o admin da barbearia. Criado uma única vez no boot (seed);
// não existe rota de criação ou alteração via API.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
