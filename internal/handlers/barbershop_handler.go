package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Catalog interface {
	ListBarbershops(ctx context.Context) ([]models.Barbershop, error)
	ListPopular(ctx context.Context) ([]models.Barbershop, error)
	Search(ctx context.Context, in domain.SearchInput) ([]models.Barbershop, error)
	GetBarbershop(ctx context.Context, id string) (*models.Barbershop, error)
}

type BarbershopHandler struct {
	catalog Catalog
	log     *zap.Logger
}

func NewBarbershopHandler(catalog Catalog, log *zap.Logger) *BarbershopHandler {
	return &BarbershopHandler{catalog: catalog, log: log}
}

func (h *BarbershopHandler) List(c *gin.Context) {
	shops, err := h.catalog.ListBarbershops(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Popular(c *gin.Context) {
	shops, err := h.catalog.ListPopular(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Search(c *gin.Context) {
	shops, err := h.catalog.Search(c.Request.Context(), domain.SearchInput{
		Title:   c.Query("title"),
		Service: c.Query("service"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	shop, err := h.catalog.GetBarbershop(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBarbershopNotFound):
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
	case errors.Is(err, domain.ErrEmptySearch):
		httperr.BadRequest(c, "empty_search", "Informe o nome da barbearia ou do serviço.")
	default:
		h.log.Error("catalog request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
	}
}
