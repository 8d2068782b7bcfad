package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint     `gorm:"column:servicio_id;not null;index" json:"servicio_id"`
	Service   *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ScheduledAt time.Time `gorm:"column:fecha_hora;not null;index" json:"fecha_hora"`
	Status      string    `gorm:"column:estado;size:20;not null" json:"estado"`
	Notes       *string   `gorm:"column:notas;size:255" json:"notas"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Appointment) TableName() string { return "citas" }
