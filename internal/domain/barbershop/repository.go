package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrBarbershopNotFound = httperr.ErrBusiness("barbershop_not_found")
	ErrEmptySearch        = httperr.ErrBusiness("empty_search")
)

type Order int

const (
	OrderNameAsc Order = iota
	OrderNameDesc
)

// SearchInput matches case-insensitively on the barbershop name (Title) or
// on the name of any of its services (Service).
type SearchInput struct {
	Title   string
	Service string
}

type Repository interface {
	List(ctx context.Context, order Order) ([]models.Barbershop, error)
	Search(ctx context.Context, in SearchInput) ([]models.Barbershop, error)

	// GetWithServices returns ErrBarbershopNotFound when id is unknown.
	GetWithServices(ctx context.Context, id string) (*models.Barbershop, error)
}
