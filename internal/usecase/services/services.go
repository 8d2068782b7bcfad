// Package services is the service catalog.
package services

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	"github.com/BruksfildServices01/barberia-api/internal/domain/catalog"
	"github.com/BruksfildServices01/barberia-api/internal/models"
)

// Input is used for both create and update. Update is a full replace:
// optional fields left nil are cleared.
type Input struct {
	Name        string
	Description *string
	Price       float64
	Duration    *int
}

func (in Input) apply(s *models.Service) {
	s.Name = strings.TrimSpace(in.Name)
	s.Description = in.Description
	s.Price = in.Price
	s.Duration = in.Duration
}

type Services struct {
	repo     catalog.Repository
	audit    *audit.Dispatcher
	onChange func(context.Context)
}

func New(repo catalog.Repository, audit *audit.Dispatcher, onChange func(context.Context)) *Services {
	return &Services{repo: repo, audit: audit, onChange: onChange}
}

func (s *Services) Create(ctx context.Context, in Input) (*models.Service, error) {
	var svc models.Service
	in.apply(&svc)
	if err := s.repo.Create(ctx, &svc); err != nil {
		return nil, err
	}

	s.written(ctx, "service_created", svc.ID)
	return &svc, nil
}

func (s *Services) List(ctx context.Context) ([]models.Service, error) {
	return s.repo.List(ctx)
}

func (s *Services) Get(ctx context.Context, id uint) (*models.Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Services) Update(ctx context.Context, id uint, in Input) (*models.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(svc)
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}

	s.written(ctx, "service_updated", id)
	return svc, nil
}

func (s *Services) Delete(ctx context.Context, id uint) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return catalog.ErrServiceNotFound
	}

	s.written(ctx, "service_deleted", id)
	return nil
}

func (s *Services) written(ctx context.Context, action string, id uint) {
	s.audit.Dispatch(audit.Event{Action: action, Entity: "service", EntityID: &id})
	if s.onChange != nil {
		s.onChange(ctx)
	}
}
