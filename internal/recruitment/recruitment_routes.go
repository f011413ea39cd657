package recruitment

import (
	"hr-portal/internal/middleware"
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module holds one handler per recruitment collection.
type Module struct {
	Applicants    *Handler[Applicant]
	Interviews    *Handler[Interview]
	Offers        *Handler[Offer]
	Psychometrics *Handler[PsychometricResult]
	Vacancies     *Handler[Vacancy]
}

func NewModule(db *gorm.DB, logger *zap.Logger) *Module {
	return &Module{
		Applicants:    newHandlerFor(db, Applicants, logger),
		Interviews:    newHandlerFor(db, Interviews, logger),
		Offers:        newHandlerFor(db, Offers, logger),
		Psychometrics: newHandlerFor(db, Psychometrics, logger),
		Vacancies:     newHandlerFor(db, Vacancies, logger),
	}
}

func newHandlerFor[T Record](db *gorm.DB, res Resource[T], logger *zap.Logger) *Handler[T] {
	svc := NewService(db, res, NewRepository(db, res), logger)
	return NewHandler(res, svc, logger)
}

// Models lists the tables AutoMigrate must create.
func Models() []any {
	return []any{&Applicant{}, &Interview{}, &Offer{}, &PsychometricResult{}, &Vacancy{}}
}

func RegisterRoutes(r *gin.RouterGroup, m *Module, gate *session.Gate) {
	register(r, m.Applicants, gate)
	register(r, m.Interviews, gate)
	register(r, m.Offers, gate)
	register(r, m.Psychometrics, gate)
	register(r, m.Vacancies, gate)
}

func register[T Record](r *gin.RouterGroup, h *Handler[T], gate *session.Gate) {
	g := r.Group("/" + h.res.Name)
	{
		g.GET("", gate.Require(session.ResourceRecruitment, session.ActionRead, session.ModeAPI), h.List)
		g.GET("/:id", gate.Require(session.ResourceRecruitment, session.ActionRead, session.ModeAPI), h.GetByID)
		g.POST("",
			gate.Require(session.ResourceRecruitment, session.ActionCreate, session.ModeAPI),
			middleware.RateLimitByUser(1, 5),
			h.Create,
		)
		g.PATCH("/:id/status",
			gate.Require(session.ResourceRecruitment, session.ActionUpdate, session.ModeAPI),
			middleware.RateLimitByUser(2, 5),
			h.SetStatus,
		)
	}
}
