package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AuditLister interface {
	List(ctx context.Context, f audit.ListFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLister
	loc  *time.Location
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditLister, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc, log: log}
}

// List pages through the caller's own booking activity. from/to are
// inclusive calendar days.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.ListFilter{
		UserID: middleware.UserID(c),
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	if s := c.Query("from"); s != "" {
		from, err := parseDate(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida. Use YYYY-MM-DD.")
			return
		}
		f.From = &from
	}

	if s := c.Query("to"); s != "" {
		to, err := parseDate(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida. Use YYYY-MM-DD.")
			return
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		h.log.Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
