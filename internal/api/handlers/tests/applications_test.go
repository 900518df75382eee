package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edarmartinez/job-hunt-os/internal/api/handlers"
	"github.com/edarmartinez/job-hunt-os/internal/api/middleware"
	"github.com/edarmartinez/job-hunt-os/internal/api/routes"
	"github.com/edarmartinez/job-hunt-os/internal/export"
	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/services"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-key"

// --- Mock Service ---

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]models.Application)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationService) GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if app, ok := args.Get(0).(*models.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if app, ok := args.Get(0).(*models.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationService) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	args := m.Called(ctx, req)
	if app, ok := args.Get(0).(*models.Application); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationService) Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockApplicationService) ExportCSV(ctx context.Context, q *dto.ExportQuery) (*export.Streamer, error) {
	args := m.Called(ctx, q)
	if s, ok := args.Get(0).(*export.Streamer); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Helpers ---

func setupRouter(svc services.ApplicationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.APIKeyAuth(testAPIKey))
	h := handlers.NewApplicationHandler(svc, zap.NewNop())
	routes.RegisterApplicationRoutes(router.Group(""), h, nil)
	return router
}

func perform(router *gin.Engine, method, path, body, apiKey string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func storedApplication(id int64) *models.Application {
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	return &models.Application{
		ID:        id,
		Company:   "Acme",
		Role:      "Backend Developer",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- List ---

func TestListApplications_ReturnsEnvelopeWithDefaults(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("List", mock.Anything, mock.MatchedBy(func(q *dto.ListApplicationsQuery) bool {
		return q.Page == 1 && q.PageSize == 20 && q.OrderBy == "created_at" && q.OrderDir == "desc"
	})).Return([]models.Application{*storedApplication(2), *storedApplication(1)}, int64(2), nil).Once()

	w := perform(router, http.MethodGet, "/applications", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListApplicationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Items[0].ID)
	mockSvc.AssertExpectations(t)
}

func TestListApplications_InvalidParameterReturns400(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("List", mock.Anything, mock.Anything).
		Return(nil, int64(0), fmt.Errorf("%w: Invalid order_by", services.ErrInvalidQueryParameter)).Once()

	w := perform(router, http.MethodGet, "/applications?order_by=company", "", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid order_by", errorBody(t, w))
}

// --- Get ---

func TestGetApplication_Success(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("GetByID", mock.Anything, &dto.GetApplicationRequest{ID: 1}).
		Return(storedApplication(1), nil).Once()

	w := perform(router, http.MethodGet, "/applications/1", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ApplicationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Acme", resp.Company)
	assert.Nil(t, resp.Location, "optional columns serialize as explicit nulls")
}

func TestGetApplication_InvalidIDFormat(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	w := perform(router, http.MethodGet, "/applications/abc", "", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid application ID format", errorBody(t, w))
	mockSvc.AssertNotCalled(t, "GetByID")
}

func TestGetApplication_NotFound(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("GetByID", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: getting application by ID", services.ErrNotFound)).Once()

	w := perform(router, http.MethodGet, "/applications/99", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Create ---

func TestCreateApplication_SuccessWithAPIKey(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *dto.CreateApplicationRequest) bool {
		return req.Company == "Acme" && req.Role == "Backend Developer" && req.Authorized
	})).Return(storedApplication(1), nil).Once()

	body := `{"company":"Acme","role":"Backend Developer"}`
	w := perform(router, http.MethodPost, "/applications", body, testAPIKey)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ApplicationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	mockSvc.AssertExpectations(t)
}

func TestCreateApplication_MissingAPIKey(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *dto.CreateApplicationRequest) bool {
		return !req.Authorized
	})).Return(nil, services.ErrUnauthorized).Once()

	body := `{"company":"Acme","role":"Backend Developer"}`
	w := perform(router, http.MethodPost, "/applications", body, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid API key", errorBody(t, w))
}

func TestCreateApplication_WrongAPIKeyIsNotAuthorized(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(req *dto.CreateApplicationRequest) bool {
		return !req.Authorized
	})).Return(nil, services.ErrUnauthorized).Once()

	body := `{"company":"Acme","role":"Backend Developer"}`
	w := perform(router, http.MethodPost, "/applications", body, "wrong-key")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateApplication_MalformedJSONReturns422(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	w := perform(router, http.MethodPost, "/applications", `{"company": 42}`, testAPIKey)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestCreateApplication_DomainErrorReturns400(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: salary_min must be <= salary_max", services.ErrDomainValidation)).Once()

	body := `{"company":"Acme","role":"Dev","salary_min":200,"salary_max":100}`
	w := perform(router, http.MethodPost, "/applications", body, testAPIKey)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "salary_min must be <= salary_max", errorBody(t, w))
}

// --- Update ---

func TestUpdateApplication_PartialBody(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(req *dto.UpdateApplicationRequest) bool {
		// stage present with value, notes explicitly null, company absent
		return req.ID == 1 && req.Authorized &&
			req.Stage.Set && req.Stage.Valid && req.Stage.Value == "offer" &&
			req.Notes.Set && !req.Notes.Valid &&
			!req.Company.Set
	})).Return(storedApplication(1), nil).Once()

	body := `{"stage":"offer","notes":null}`
	w := perform(router, http.MethodPut, "/applications/1", body, testAPIKey)

	require.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUpdateApplication_SchemaErrorReturns422(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Update", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: company must be a non-empty string", services.ErrSchemaValidation)).Once()

	w := perform(router, http.MethodPut, "/applications/1", `{"company":null}`, testAPIKey)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "company must be a non-empty string", errorBody(t, w))
}

// --- Delete ---

func TestDeleteApplication_Returns204(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Delete", mock.Anything, &dto.DeleteApplicationRequest{ID: 1, Authorized: true}).
		Return(nil).Once()

	w := perform(router, http.MethodDelete, "/applications/1", "", testAPIKey)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteApplication_NotFound(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("Delete", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: deleting application", services.ErrNotFound)).Once()

	w := perform(router, http.MethodDelete, "/applications/99", "", testAPIKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Export ---

func TestExportCSV_StreamsWithDownloadHeaders(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	streamer := export.NewStreamer(func(ctx context.Context, page int) ([]models.Application, error) {
		if page == 1 {
			return []models.Application{*storedApplication(1)}, nil
		}
		return nil, nil
	})
	mockSvc.On("ExportCSV", mock.Anything, mock.MatchedBy(func(q *dto.ExportQuery) bool {
		return q.OrderBy == "created_at" && q.OrderDir == "desc"
	})).Return(streamer, nil).Once()

	w := perform(router, http.MethodGet, "/export.csv", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="export.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(export.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Acme,"))
}

func TestExportCSV_InvalidFilterFailsBeforeAnyBytes(t *testing.T) {
	mockSvc := new(MockApplicationService)
	router := setupRouter(mockSvc)

	mockSvc.On("ExportCSV", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Invalid stage", services.ErrInvalidQueryParameter)).Once()

	w := perform(router, http.MethodGet, "/export.csv?stage=daydreaming", "", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid stage", errorBody(t, w))
	assert.NotContains(t, w.Header().Get("Content-Type"), "text/csv")
}
