package barbershop

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Catalog struct {
	repo domain.Repository
}

func NewCatalog(repo domain.Repository) *Catalog {
	return &Catalog{repo: repo}
}

// ListBarbershops is the "recommended" listing.
func (uc *Catalog) ListBarbershops(ctx context.Context) ([]models.Barbershop, error) {
	return uc.repo.List(ctx, domain.OrderNameAsc)
}

func (uc *Catalog) ListPopular(ctx context.Context) ([]models.Barbershop, error) {
	return uc.repo.List(ctx, domain.OrderNameDesc)
}

func (uc *Catalog) Search(
	ctx context.Context,
	in domain.SearchInput,
) ([]models.Barbershop, error) {

	in.Title = strings.TrimSpace(in.Title)
	in.Service = strings.TrimSpace(in.Service)

	if in.Title == "" && in.Service == "" {
		return nil, domain.ErrEmptySearch
	}

	return uc.repo.Search(ctx, in)
}

func (uc *Catalog) GetBarbershop(
	ctx context.Context,
	id string,
) (*models.Barbershop, error) {
	return uc.repo.GetWithServices(ctx, id)
}
