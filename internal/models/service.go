package models

import "time"

type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Description *string `gorm:"column:descripcion;size:255" json:"descripcion"`
	Price       float64 `gorm:"column:precio;not null" json:"precio"`
	// Duration in minutes. Informational only, slots are exact timestamps.
	Duration *int `gorm:"column:duracion" json:"duracion"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Service) TableName() string { return "servicios" }
