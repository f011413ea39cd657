package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"hr-portal/internal/employee"
	employeeerrors "hr-portal/internal/employee/errors"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/contextutil"
	counterMock "hr-portal/internal/shared/counter/mock"
	"hr-portal/internal/storage"
	storageMock "hr-portal/internal/storage/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeEmployeeRepository struct {
	employees map[string]*employee.Employee
	docs      map[string]*employee.Document
	createErr error
}

func newFakeRepo(empls ...employee.Employee) *fakeEmployeeRepository {
	f := &fakeEmployeeRepository{
		employees: map[string]*employee.Employee{},
		docs:      map[string]*employee.Document{},
	}
	for i := range empls {
		e := empls[i]
		f.employees[e.ID] = &e
	}
	return f
}

func (f *fakeEmployeeRepository) WithTx(*gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(_ context.Context, e *employee.Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepository) FindAll(context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepository) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id || e.EmployeeCode == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(_ context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepository) CreateDocument(_ context.Context, d *employee.Document) error {
	f.docs[d.ID] = d
	return nil
}

func (f *fakeEmployeeRepository) FindDocument(_ context.Context, employeeID, docID string) (*employee.Document, error) {
	d, ok := f.docs[docID]
	if !ok || d.EmployeeID != employeeID {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeEmployeeRepository) DeleteDocument(_ context.Context, _ string, docID string) error {
	delete(f.docs, docID)
	return nil
}

func (f *fakeEmployeeRepository) Count(context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(*gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) { return nil, nil }
func (f *fakeOutbox) MarkSent(context.Context, string) error                        { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, kafka.OutboxEvent, string) error   { return nil }

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *fakeEmployeeRepository
	counter *counterMock.MockRepository
	files   *storageMock.MockStorage
	outbox  *fakeOutbox
	service employee.Service
}

func setupServiceTest(t *testing.T, rdb *redis.Client, empls ...employee.Employee) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	deps := &serviceDeps{
		sqlMock: mock,
		repo:    newFakeRepo(empls...),
		counter: counterMock.NewMockRepository(ctrl),
		files:   storageMock.NewMockStorage(ctrl),
		outbox:  &fakeOutbox{},
	}
	deps.service = employee.NewService(gdb, deps.repo, deps.counter, deps.outbox, deps.files, rdb, time.Minute)
	return deps
}

func whiteCollarRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:     "Laura",
		LastName:      "Gómez",
		Email:         "Laura.Gomez@example.com",
		Position:      "HR Analyst",
		Department:    "Human Resources",
		Plant:         "Monterrey",
		HireDate:      "2024-02-01",
		Collar:        employee.CollarWhite,
		MonthlySalary: 32000.50,
	}
}

func existingEmployee() employee.Employee {
	return employee.Employee{
		ID:              "emp-1",
		EmployeeCode:    "EMP-000001",
		FirstName:       "Carlos",
		LastName:        "Méndez",
		Email:           "carlos@example.com",
		Position:        "Operator",
		Department:      "Production",
		Plant:           "Saltillo",
		HireDate:        time.Date(2022, 5, 9, 0, 0, 0, 0, time.UTC),
		Collar:          employee.CollarBlue,
		PayCycle:        employee.PayCycleWeekly,
		HourlyRateCents: 8550,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("success generates code and writes outbox event", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.counter.EXPECT().GetNextValue(gomock.Any(), "employee").Return(int64(12), nil)

		ctx := contextutil.WithRequestID(context.Background(), "rid-7")
		resp, err := deps.service.Create(ctx, whiteCollarRequest())
		require.NoError(t, err)

		assert.Equal(t, "EMP-000012", resp.EmployeeCode)
		assert.Equal(t, "laura.gomez@example.com", resp.Email)
		assert.Equal(t, "Laura Gómez", resp.FullName)
		assert.Equal(t, employee.PayCycleBiweekly, resp.PayCycle)
		assert.Equal(t, 32000.50, resp.MonthlySalary)
		assert.Zero(t, resp.HourlyRate)
		assert.NotNil(t, resp.Documents)

		require.Len(t, deps.outbox.created, 1)
		ev := deps.outbox.created[0]
		assert.Equal(t, "hr.employee.lifecycle.v1", ev.Topic)
		assert.Equal(t, "rid-7", ev.RequestID)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, "EMP-000012", payload["employee_code"])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success keeps explicit code and weekly cycle for blue collar", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		req := whiteCollarRequest()
		req.EmployeeCode = "EMP-900"
		req.Collar = employee.CollarBlue
		req.HourlyRate = 95.25

		resp, err := deps.service.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "EMP-900", resp.EmployeeCode)
		assert.Equal(t, employee.PayCycleWeekly, resp.PayCycle)
		assert.Equal(t, 95.25, resp.HourlyRate)
		assert.Zero(t, resp.MonthlySalary)
	})

	t.Run("negative compensation missing for collar", func(t *testing.T) {
		deps := setupServiceTest(t, nil)

		req := whiteCollarRequest()
		req.MonthlySalary = 0
		_, err := deps.service.Create(context.Background(), req)
		assert.ErrorIs(t, err, employeeerrors.ErrMonthlySalaryRequired)

		req = whiteCollarRequest()
		req.Collar = employee.CollarBlue
		_, err = deps.service.Create(context.Background(), req)
		assert.ErrorIs(t, err, employeeerrors.ErrHourlyRateRequired)
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		req := whiteCollarRequest()
		req.HireDate = "01/02/2024"

		_, err := deps.service.Create(context.Background(), req)
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative counter failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.counter.EXPECT().GetNextValue(gomock.Any(), "employee").Return(int64(0), errors.New("counter down"))

		_, err := deps.service.Create(context.Background(), whiteCollarRequest())
		assert.EqualError(t, err, "counter down")
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_List(t *testing.T) {
	office := existingEmployee()
	office.ID, office.EmployeeCode, office.FirstName = "emp-2", "EMP-000002", "Lucía"
	office.Department, office.Collar = "Finance", employee.CollarWhite

	t.Run("filters by search and categorical params", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee(), office)

		got, err := deps.service.List(context.Background(), employee.ListQuery{Collar: "blue"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "EMP-000001", got[0].EmployeeCode)

		got, err = deps.service.List(context.Background(), employee.ListQuery{Search: "lucía", Department: "all"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Finance", got[0].Department)
	})

	t.Run("cache miss stores list", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		deps := setupServiceTest(t, rdb, existingEmployee())

		mock.ExpectGet(employee.ListCacheKey).RedisNil()
		mock.Regexp().ExpectSet(employee.ListCacheKey, `.*`, time.Minute).SetVal("OK")

		got, err := deps.service.List(context.Background(), employee.ListQuery{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		deps := setupServiceTest(t, rdb)

		mock.ExpectGet(employee.ListCacheKey).SetVal(`[{"id":"cached","employee_code":"EMP-000050","collar":"white"}]`)

		got, err := deps.service.List(context.Background(), employee.ListQuery{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "cached", got[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetUpdateDelete(t *testing.T) {
	t.Run("get by code", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())

		got, err := deps.service.GetByID(context.Background(), "EMP-000001")
		require.NoError(t, err)
		assert.Equal(t, "emp-1", got.ID)
		assert.Equal(t, 85.5, got.HourlyRate)
	})

	t.Run("get missing", func(t *testing.T) {
		deps := setupServiceTest(t, nil)

		_, err := deps.service.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("update switches collar", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		req := whiteCollarRequest()

		got, err := deps.service.Update(context.Background(), "emp-1", req)
		require.NoError(t, err)
		assert.Equal(t, "EMP-000001", got.EmployeeCode)
		assert.Equal(t, employee.PayCycleBiweekly, got.PayCycle)
		assert.Zero(t, deps.repo.employees["emp-1"].HourlyRateCents)
	})

	t.Run("delete", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())

		require.NoError(t, deps.service.Delete(context.Background(), "emp-1"))
		assert.Empty(t, deps.repo.employees)
		assert.ErrorIs(t, deps.service.Delete(context.Background(), "emp-1"), employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Documents(t *testing.T) {
	t.Run("upload stores file and record", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.files.EXPECT().
			Save(gomock.Any(), "emp-1", "contract.PDF", gomock.Any()).
			Return(storage.StoredFile{Path: "emp-1/abc.pdf", Size: 4}, nil)

		doc, err := deps.service.AddDocument(context.Background(), "emp-1", employee.DocumentUpload{
			Name:    "contract.PDF",
			Content: strings.NewReader("data"),
		})
		require.NoError(t, err)
		assert.Equal(t, "pdf", doc.Type)
		assert.Equal(t, employee.DocumentURL("emp-1", doc.ID), doc.URL)
		assert.Equal(t, int64(4), doc.Size)
		assert.Len(t, deps.repo.docs, 1)
	})

	t.Run("upload too large", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(storage.StoredFile{}, storage.ErrTooLarge)

		_, err := deps.service.AddDocument(context.Background(), "emp-1", employee.DocumentUpload{
			Name: "scan.png", Type: "ID", Content: strings.NewReader("xx"),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentTooLarge)
		assert.Empty(t, deps.repo.docs)
	})

	t.Run("upload of active content rejected", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.files.EXPECT().Save(gomock.Any(), gomock.Any(), "page.html", gomock.Any()).
			Return(storage.StoredFile{}, storage.ErrUnsupportedType)

		_, err := deps.service.AddDocument(context.Background(), "emp-1", employee.DocumentUpload{
			Name: "page.html", Content: strings.NewReader("<script>"),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentType)
		assert.Empty(t, deps.repo.docs)
	})

	t.Run("upload without file", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())

		_, err := deps.service.AddDocument(context.Background(), "emp-1", employee.DocumentUpload{})
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentRequired)
	})

	t.Run("remove deletes record and file", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.repo.docs["doc-1"] = &employee.Document{ID: "doc-1", EmployeeID: "emp-1", StoragePath: "emp-1/abc.pdf"}
		deps.files.EXPECT().Delete(gomock.Any(), "emp-1/abc.pdf").Return(nil)

		require.NoError(t, deps.service.RemoveDocument(context.Background(), "emp-1", "doc-1"))
		assert.Empty(t, deps.repo.docs)
	})

	t.Run("remove other employee's document", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.repo.docs["doc-1"] = &employee.Document{ID: "doc-1", EmployeeID: "emp-9"}

		err := deps.service.RemoveDocument(context.Background(), "emp-1", "doc-1")
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentNotFound)
	})

	t.Run("file resolves stored path", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.repo.docs["doc-1"] = &employee.Document{ID: "doc-1", EmployeeID: "emp-1", Name: "contract.pdf", StoragePath: "emp-1/abc.pdf"}
		deps.files.EXPECT().Resolve(gomock.Any(), "emp-1/abc.pdf").Return("/data/emp-1/abc.pdf", nil)

		file, err := deps.service.DocumentFile(context.Background(), "emp-1", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "contract.pdf", file.Name)
		assert.Equal(t, "/data/emp-1/abc.pdf", file.Path)
	})

	t.Run("file of other employee", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.repo.docs["doc-1"] = &employee.Document{ID: "doc-1", EmployeeID: "emp-9", StoragePath: "emp-9/abc.pdf"}

		_, err := deps.service.DocumentFile(context.Background(), "emp-1", "doc-1")
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentNotFound)
	})

	t.Run("file missing on disk", func(t *testing.T) {
		deps := setupServiceTest(t, nil, existingEmployee())
		deps.repo.docs["doc-1"] = &employee.Document{ID: "doc-1", EmployeeID: "emp-1", StoragePath: "emp-1/gone.pdf"}
		deps.files.EXPECT().Resolve(gomock.Any(), "emp-1/gone.pdf").Return("", storage.ErrNotFound)

		_, err := deps.service.DocumentFile(context.Background(), "emp-1", "doc-1")
		assert.ErrorIs(t, err, employeeerrors.ErrDocumentNotFound)
	})
}
