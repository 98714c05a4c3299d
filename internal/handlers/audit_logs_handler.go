package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLogReader
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditLogReader, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

type AuditLogsQuery struct {
	Action   string `form:"action" json:"action"`
	Entity   string `form:"entity" json:"entity"`
	EntityID string `form:"entity_id" json:"entity_id"`
	From     string `form:"from" json:"from" binding:"omitempty,isodate"`
	To       string `form:"to" json:"to" binding:"omitempty,isodate"`
	Page     int    `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=200"`
}

func (q AuditLogsQuery) filter(pageSlug string) audit.Filter {
	page := max(q.Page, 1)
	limit := q.Limit
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	f := audit.Filter{
		PageSlug: pageSlug,
		Action:   q.Action,
		Entity:   q.Entity,
		EntityID: q.EntityID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	// dates already passed isodate
	if q.From != "" {
		f.From, _ = time.Parse(time.DateOnly, q.From)
	}
	if q.To != "" {
		to, _ := time.Parse(time.DateOnly, q.To)
		f.To = to.AddDate(0, 0, 1)
	}
	return f
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	pageSlug := c.MustGet(middleware.ContextPageSlug).(string)

	var q AuditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	f := q.filter(pageSlug)

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		h.log.Error("list audit logs", zap.String("page", pageSlug), zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Offset/f.Limit + 1,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
