package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	"github.com/BruksfildServices01/page-scheduler/internal/handlers"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/validators"
)

type fakeAuditLogs struct {
	got  audit.Filter
	logs []models.AuditLog
}

func (f *fakeAuditLogs) List(_ context.Context, filter audit.Filter) ([]models.AuditLog, int64, error) {
	f.got = filter
	return f.logs, int64(len(f.logs)), nil
}

func auditRouter(reader handlers.AuditLogReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validators.Register(v)
	}

	h := handlers.NewAuditLogsHandler(reader, zap.NewNop())

	r := gin.New()
	r.GET("/audit-logs", func(c *gin.Context) {
		c.Set(middleware.ContextPageSlug, "studio-ana")
		c.Next()
	}, h.List)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAuditLogs_BuildsFilter(t *testing.T) {
	fake := &fakeAuditLogs{logs: []models.AuditLog{{ID: 1, PageSlug: "studio-ana", Action: audit.ActionAppointmentCreated}}}
	r := auditRouter(fake)

	w := get(r, "/audit-logs?action=appointment_created&entity_id=abc&from=2025-03-01&to=2025-03-10&page=3&limit=20")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "studio-ana", fake.got.PageSlug)
	assert.Equal(t, "appointment_created", fake.got.Action)
	assert.Equal(t, "abc", fake.got.EntityID)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), fake.got.From)
	assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), fake.got.To)
	assert.Equal(t, 20, fake.got.Limit)
	assert.Equal(t, 40, fake.got.Offset)

	var out struct {
		Page  int               `json:"page"`
		Total int               `json:"total"`
		Logs  []models.AuditLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, 1, out.Total)
	assert.Len(t, out.Logs, 1)
}

func TestAuditLogs_Defaults(t *testing.T) {
	fake := &fakeAuditLogs{}
	r := auditRouter(fake)

	w := get(r, "/audit-logs")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 50, fake.got.Limit)
	assert.Equal(t, 0, fake.got.Offset)
	assert.True(t, fake.got.From.IsZero())
}

func TestAuditLogs_RejectsBadQuery(t *testing.T) {
	r := auditRouter(&fakeAuditLogs{})

	w := get(r, "/audit-logs?from=01-03-2025")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"from"`)

	w = get(r, "/audit-logs?limit=1000")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
