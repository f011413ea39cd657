package request

import (
	"net/http"
	"strconv"
	"strings"

	"hr-portal/internal/middleware"
	requesterrors "hr-portal/internal/request/errors"
	"hr-portal/internal/session"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Authorizer answers capability questions about the current session.
type Authorizer interface {
	Can(c *gin.Context, resource, action string) bool
}

type Handler struct {
	service Service
	authz   Authorizer
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, authz Authorizer, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, authz: authz, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("request endpoint failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) kind(c *gin.Context) (Kind, bool) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		h.writeServiceError(c, err)
		return "", false
	}
	return kind, true
}

// canDecide is true for roles that see and decide every employee's requests.
func (h *Handler) canDecide(c *gin.Context) bool {
	return h.authz != nil && h.authz.Can(c, session.ResourceRequests, session.ActionApprove)
}

func (h *Handler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}
	if !h.canDecide(c) {
		// an empty employee id would disable the filter and list everyone
		q.EmployeeID = c.GetString("employee_id")
		if q.EmployeeID == "" {
			h.writeServiceError(c, requesterrors.ErrNoEmployeeScope)
			return
		}
	}

	resp, err := h.service.List(c.Request.Context(), kind, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ListResponse{Requests: resp}, response.ListMeta(len(resp)))
}

func (h *Handler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	var result any
	defer func() { middleware.CompleteIdempotent(c, h.rdb, result) }()

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create request validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}

	employeeID := c.GetString("employee_id")
	if !h.canDecide(c) {
		// employees only file for themselves
		req.EmployeeID = ""
	}
	if req.EmployeeID == "" && req.EmployeeName == "" {
		if claims := session.FromContext(c); claims != nil {
			req.EmployeeName = claims.DisplayName()
		}
	}

	resp, err := h.service.Create(c.Request.Context(), kind, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	result = resp
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !h.canDecide(c) && resp.EmployeeID != c.GetString("employee_id") {
		h.writeServiceError(c, requesterrors.ErrRequestNotFound)
		return
	}

	c.Header("ETag", etag(resp.Version))
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Transition(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http transition request validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}
	if req.Version == nil {
		if v, present, err := versionFromIfMatch(c.GetHeader("If-Match")); err != nil {
			h.writeServiceError(c, err)
			return
		} else if present {
			req.Version = &v
		}
	}

	resp, err := h.service.Transition(c.Request.Context(), kind, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("ETag", etag(resp.Version))
	response.Success(c, http.StatusOK, resp, nil)
}

func etag(version int) string {
	return `W/"` + strconv.Itoa(version) + `"`
}

func versionFromIfMatch(header string) (int, bool, error) {
	if header == "" {
		return 0, false, nil
	}
	raw := strings.TrimPrefix(strings.TrimSpace(header), "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false, requesterrors.ErrInvalidVersion
	}
	return v, true, nil
}
