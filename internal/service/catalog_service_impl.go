package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/repository"
)

type catalogService struct {
	catalog repository.CatalogRepo
}

func NewCatalogService(catalog repository.CatalogRepo) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) Add(ctx context.Context, kind domain.CatalogKind, name string) (*domain.CatalogEntry, domain.Notification, error) {
	if !domain.ValidCatalogKinds[string(kind)] {
		return nil, domain.RejectionNote(fmt.Sprintf("unknown catalog kind %q", kind)), nil
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domain.RejectionNote("the name cannot be empty"), nil
	}
	if kind == domain.CatalogMunicipality && strings.EqualFold(trimmed, domain.WholeTerritory) {
		return nil, domain.RejectionNote(fmt.Sprintf("%q is reserved and always available", domain.WholeTerritory)), nil
	}

	existing, err := s.catalog.FindByName(ctx, kind, trimmed)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Notification{}, err
	}
	if existing != nil {
		return nil, domain.RejectionNote(fmt.Sprintf("%q already exists", existing.Name)), nil
	}

	entry := &domain.CatalogEntry{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.catalog.Create(ctx, entry); err != nil {
		return nil, domain.Notification{}, err
	}
	return entry, domain.SuccessNote(fmt.Sprintf("%q added", trimmed)), nil
}

func (s *catalogService) List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error) {
	return s.catalog.List(ctx, kind)
}

func (s *catalogService) Remove(ctx context.Context, kind domain.CatalogKind, name string) (domain.Notification, error) {
	trimmed := strings.TrimSpace(name)
	entry, err := s.catalog.FindByName(ctx, kind, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote(fmt.Sprintf("%q is not in the catalog", trimmed)), nil
		}
		return domain.Notification{}, err
	}
	if err := s.catalog.Delete(ctx, entry.ID); err != nil {
		return domain.Notification{}, err
	}
	return domain.DestructiveNote(fmt.Sprintf("%q removed", entry.Name)), nil
}
