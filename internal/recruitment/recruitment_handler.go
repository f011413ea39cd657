package recruitment

import (
	"net/http"

	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler[T Record] struct {
	res     Resource[T]
	service Service[T]
	logger  *zap.Logger
}

func NewHandler[T Record](res Resource[T], service Service[T], logger ...*zap.Logger) *Handler[T] {
	name := "recruitment." + res.Name + ".handler"
	l := zap.L().Named(name)
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named(name)
	}
	return &Handler[T]{res: res, service: service, logger: l}
}

func (h *Handler[T]) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("recruitment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler[T]) List(c *gin.Context) {
	q := ListQuery{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Categories: make(map[string]string, len(h.res.Filters)),
	}
	for _, name := range h.res.Filters {
		q.Categories[name] = c.Query(name)
	}

	recs, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{h.res.Name: recs}, response.ListMeta(len(recs)))
}

func (h *Handler[T]) GetByID(c *gin.Context) {
	rec, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, nil)
}

func (h *Handler[T]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.logger.Warn("http create record validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), rec)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, nil)
}

func (h *Handler[T]) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	rec, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, nil)
}
