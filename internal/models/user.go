package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	Name         string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Phone        *string   `gorm:"column:telefono;size:20" json:"telefono"`
	Role         string    `gorm:"column:rol;size:20;not null" json:"rol"`
	Active       bool      `gorm:"column:activo;not null" json:"activo"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;autoCreateTime;<-:create" json:"fecha_registro"`
}

func (User) TableName() string { return "usuarios" }
