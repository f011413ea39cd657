package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hr-portal/internal/employee"
	employeeerrors "hr-portal/internal/employee/errors"
	"hr-portal/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn         func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	ListFn           func(ctx context.Context, q employee.ListQuery) ([]employee.EmployeeResponse, error)
	GetByIDFn        func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn         func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn         func(ctx context.Context, id string) error
	AddDocumentFn    func(ctx context.Context, employeeID string, upload employee.DocumentUpload) (employee.DocumentResponse, error)
	RemoveDocumentFn func(ctx context.Context, employeeID, docID string) error
	DocumentFileFn   func(ctx context.Context, employeeID, docID string) (employee.DocumentFile, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) List(ctx context.Context, q employee.ListQuery) ([]employee.EmployeeResponse, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) AddDocument(ctx context.Context, employeeID string, upload employee.DocumentUpload) (employee.DocumentResponse, error) {
	return f.AddDocumentFn(ctx, employeeID, upload)
}
func (f *fakeEmployeeService) RemoveDocument(ctx context.Context, employeeID, docID string) error {
	return f.RemoveDocumentFn(ctx, employeeID, docID)
}
func (f *fakeEmployeeService) DocumentFile(ctx context.Context, employeeID, docID string) (employee.DocumentFile, error) {
	return f.DocumentFileFn(ctx, employeeID, docID)
}

func setupRouter(h *employee.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	r.GET("/employees", h.List)
	r.GET("/employees/:id", h.GetByID)
	r.POST("/employees", h.Create)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)
	r.POST("/employees/:id/documents", h.UploadDocument)
	r.GET("/employees/:id/documents/:docId", h.DownloadDocument)
	r.DELETE("/employees/:id/documents/:docId", h.DeleteDocument)
	return r
}

const createBody = `{"first_name":"Laura","last_name":"Gómez","email":"laura@example.com","position":"Analyst","department":"HR","hire_date":"2024-02-01","collar":"white","monthly_salary":32000}`

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Laura", req.FirstName)
				assert.Equal(t, 32000.0, req.MonthlySalary)
				return employee.EmployeeResponse{ID: "e1", EmployeeCode: "EMP-000001", FullName: "Laura Gómez"}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-000001")
	})

	t.Run("validation error", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"first_name":"x","collar":"purple"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidation)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(createBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_List(t *testing.T) {
	svc := &fakeEmployeeService{
		ListFn: func(ctx context.Context, q employee.ListQuery) ([]employee.EmployeeResponse, error) {
			assert.Equal(t, "gómez", q.Search)
			assert.Equal(t, "Production", q.Department)
			assert.Equal(t, "blue", q.Collar)
			return []employee.EmployeeResponse{{ID: "e1", FullName: "Ana Gómez"}}, nil
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees?search=g%C3%B3mez&department=Production&collar=blue", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Ok   bool `json:"ok"`
		Data struct {
			Employees []employee.EmployeeResponse `json:"employees"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	require.Len(t, body.Data.Employees, 1)
	assert.Equal(t, "Ana Gómez", body.Data.Employees[0].FullName)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			if id == "missing" {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return employee.EmployeeResponse{ID: id}, nil
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/e1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeNotFound)
}

func TestEmployeeHandler_UpdateDelete(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "e1", id)
			return employee.EmployeeResponse{ID: id, Department: req.Department}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			assert.Equal(t, "e1", id)
			return nil
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/e1", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestEmployeeHandler_Documents(t *testing.T) {
	t.Run("upload multipart", func(t *testing.T) {
		svc := &fakeEmployeeService{
			AddDocumentFn: func(ctx context.Context, employeeID string, upload employee.DocumentUpload) (employee.DocumentResponse, error) {
				assert.Equal(t, "e1", employeeID)
				assert.Equal(t, "contract.pdf", upload.Name)
				assert.Equal(t, "Contract", upload.Type)
				content, err := io.ReadAll(upload.Content)
				require.NoError(t, err)
				assert.Equal(t, "%PDF-1.4", string(content))
				return employee.DocumentResponse{ID: "d1", Name: upload.Name, Type: upload.Type}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("type", "Contract"))
		fw, err := mw.CreateFormFile("file", "contract.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/e1/documents", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"d1"`)
	})

	t.Run("upload without file", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees/e1/documents", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("download as attachment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stored.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
		svc := &fakeEmployeeService{
			DocumentFileFn: func(ctx context.Context, employeeID, docID string) (employee.DocumentFile, error) {
				assert.Equal(t, "e1", employeeID)
				assert.Equal(t, "d1", docID)
				return employee.DocumentFile{Name: "contract.pdf", Path: path}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/e1/documents/d1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "%PDF-1.4", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "contract.pdf")
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("download unknown document", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DocumentFileFn: func(context.Context, string, string) (employee.DocumentFile, error) {
				return employee.DocumentFile{}, employeeerrors.ErrDocumentNotFound
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/e1/documents/d9", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete document not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			RemoveDocumentFn: func(ctx context.Context, employeeID, docID string) error {
				assert.Equal(t, "d9", docID)
				return employeeerrors.ErrDocumentNotFound
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e1/documents/d9", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
