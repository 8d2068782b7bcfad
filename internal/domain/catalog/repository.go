package catalog

import (
	"context"

	"github.com/BruksfildServices01/barberia-api/internal/httperr"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

var ErrServiceNotFound = httperr.NewNotFound("service_not_found", "Servicio no encontrado.")

type Repository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Save(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uint) (bool, error)
}
