package employee

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"time"

	employeeerrors "hr-portal/internal/employee/errors"
	"hr-portal/internal/events"
	"hr-portal/internal/filter"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"
	"hr-portal/internal/shared/counter"
	"hr-portal/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ListCacheKey = "employees:list"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, q ListQuery) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	AddDocument(ctx context.Context, employeeID string, upload DocumentUpload) (DocumentResponse, error)
	RemoveDocument(ctx context.Context, employeeID, docID string) error
	DocumentFile(ctx context.Context, employeeID, docID string) (DocumentFile, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	files    storage.Storage
	rdb      *redis.Client
	cacheTTL time.Duration
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	files storage.Storage,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		outbox:   outboxRepo,
		files:    files,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	empl := &Employee{ID: uuid.NewString()}
	if err := applyRequest(empl, req); err != nil {
		s.logger.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if empl.EmployeeCode == "" {
			seq, err := s.counter.GetNextValue(ctx, CodeCounter)
			if err != nil {
				s.logger.Error("create employee generate code failed", zap.Error(err))
				return err
			}
			empl.EmployeeCode = FormatCode(seq)
		}

		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			s.logger.Error("create employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		if s.outbox == nil {
			return nil
		}
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.ID, events.EventTypeEmployeeCreated, events.EmployeeCreatedTopic,
			events.EmployeeCreatedEvent{
				EventType:    events.EventTypeEmployeeCreated,
				RequestID:    rid,
				EmployeeID:   empl.ID,
				EmployeeCode: empl.EmployeeCode,
				FullName:     empl.FullName(),
				OccurredAt:   time.Now().UTC(),
			})
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed", zap.String("employee_id", empl.ID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return mapToResponse(*empl), nil
}

func applyRequest(empl *Employee, req CreateEmployeeRequest) error {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employeeerrors.ErrInvalidHireDate
	}

	monthly := toCents(req.MonthlySalary)
	hourly := toCents(req.HourlyRate)
	switch req.Collar {
	case CollarWhite:
		if monthly <= 0 {
			return employeeerrors.ErrMonthlySalaryRequired
		}
		hourly = 0
	case CollarBlue:
		if hourly <= 0 {
			return employeeerrors.ErrHourlyRateRequired
		}
		monthly = 0
	}

	if code := strings.TrimSpace(req.EmployeeCode); code != "" {
		empl.EmployeeCode = code
	}
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Position = req.Position
	empl.Department = req.Department
	empl.Plant = req.Plant
	empl.HireDate = hireDate
	empl.Collar = req.Collar
	empl.PayCycle = PayCycleFor(req.Collar)
	empl.MonthlySalaryCents = monthly
	empl.HourlyRateCents = hourly
	empl.BankAccount = req.BankAccount
	empl.NSS = req.NSS
	empl.RFC = req.RFC
	return nil
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (s *service) List(ctx context.Context, q ListQuery) ([]EmployeeResponse, error) {
	all, err := s.cachedList(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, q), nil
}

// Filter narrows a loaded directory by search term, department, plant and
// collar.
func Filter(records []EmployeeResponse, q ListQuery) []EmployeeResponse {
	return filter.Apply(records, q.Search,
		func(e EmployeeResponse) []string {
			return []string{e.EmployeeCode, e.FullName, e.Email, e.Position, e.Department}
		},
		filter.By(q.Department, func(e EmployeeResponse) string { return e.Department }),
		filter.By(q.Plant, func(e EmployeeResponse) string { return e.Plant }),
		filter.By(q.Collar, func(e EmployeeResponse) string { return e.Collar }),
	)
}

func (s *service) cachedList(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("list employees failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeResponse, 0, len(empls))
		for _, e := range empls {
			resp = append(resp, mapToResponse(e))
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ListCacheKey, payload, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee list failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache", zap.Error(err))
	}
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := applyRequest(empl, req); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", empl.ID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", empl.ID))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, empl.ID); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", empl.ID))
	return nil
}

func (s *service) AddDocument(ctx context.Context, employeeID string, upload DocumentUpload) (DocumentResponse, error) {
	if upload.Content == nil || upload.Name == "" {
		return DocumentResponse{}, employeeerrors.ErrDocumentRequired
	}
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return DocumentResponse{}, mapRepositoryError(err)
	}

	docID := uuid.NewString()
	stored, err := s.files.Save(ctx, empl.ID, upload.Name, upload.Content)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return DocumentResponse{}, employeeerrors.ErrDocumentTooLarge
		}
		if errors.Is(err, storage.ErrUnsupportedType) {
			return DocumentResponse{}, employeeerrors.ErrDocumentType
		}
		s.logger.Error("store document failed", zap.String("employee_id", empl.ID), zap.Error(err))
		return DocumentResponse{}, err
	}

	docType := upload.Type
	if docType == "" {
		docType = strings.TrimPrefix(strings.ToLower(filepath.Ext(upload.Name)), ".")
	}
	doc := &Document{
		ID:          docID,
		EmployeeID:  empl.ID,
		Name:        filepath.Base(upload.Name),
		Type:        docType,
		URL:         DocumentURL(empl.ID, docID),
		StoragePath: stored.Path,
		Size:        stored.Size,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if delErr := s.files.Delete(ctx, stored.Path); delErr != nil {
			s.logger.Warn("cleanup stored document failed", zap.String("path", stored.Path), zap.Error(delErr))
		}
		return DocumentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx)
	s.logger.Info("document uploaded",
		zap.String("employee_id", empl.ID),
		zap.String("document_id", doc.ID),
		zap.Int64("size", doc.Size),
	)
	return mapDocument(*doc), nil
}

func (s *service) RemoveDocument(ctx context.Context, employeeID, docID string) error {
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	doc, err := s.repo.FindDocument(ctx, empl.ID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrDocumentNotFound
		}
		return err
	}
	if err := s.repo.DeleteDocument(ctx, empl.ID, doc.ID); err != nil {
		return err
	}
	if doc.StoragePath != "" {
		if err := s.files.Delete(ctx, doc.StoragePath); err != nil {
			s.logger.Warn("delete stored document failed", zap.String("path", doc.StoragePath), zap.Error(err))
		}
	}

	s.invalidate(ctx)
	return nil
}

// DocumentFile returns where a stored document lives so the handler can
// stream it. Documents of other employees are reported as not found.
func (s *service) DocumentFile(ctx context.Context, employeeID, docID string) (DocumentFile, error) {
	doc, err := s.repo.FindDocument(ctx, employeeID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentFile{}, employeeerrors.ErrDocumentNotFound
		}
		return DocumentFile{}, err
	}
	full, err := s.files.Resolve(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("document file missing", zap.String("document_id", doc.ID), zap.String("path", doc.StoragePath))
			return DocumentFile{}, employeeerrors.ErrDocumentNotFound
		}
		return DocumentFile{}, err
	}
	return DocumentFile{Name: doc.Name, Path: full}, nil
}

// DocumentURL is the gated download route of a document.
func DocumentURL(employeeID, docID string) string {
	return "/api/employees/" + employeeID + "/documents/" + docID
}

func mapDocument(d Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		Name:       d.Name,
		Type:       d.Type,
		URL:        d.URL,
		Size:       d.Size,
		UploadDate: d.UploadedAt.Format("2006-01-02"),
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	docs := make([]DocumentResponse, 0, len(e.Documents))
	for _, d := range e.Documents {
		docs = append(docs, mapDocument(d))
	}
	return EmployeeResponse{
		ID:            e.ID,
		EmployeeCode:  e.EmployeeCode,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Email:         e.Email,
		Position:      e.Position,
		Department:    e.Department,
		Plant:         e.Plant,
		HireDate:      e.HireDate.Format("2006-01-02"),
		Collar:        e.Collar,
		PayCycle:      e.PayCycle,
		MonthlySalary: float64(e.MonthlySalaryCents) / 100,
		HourlyRate:    float64(e.HourlyRateCents) / 100,
		BankAccount:   e.BankAccount,
		NSS:           e.NSS,
		RFC:           e.RFC,
		Documents:     docs,
	}
}
