package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
	portssvc "github.com/castor-coop/credit-castor/internal/core/ports/services"
	"github.com/castor-coop/credit-castor/internal/dto"
	"github.com/castor-coop/credit-castor/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ScenarioService ---
type MockScenarioService struct {
	mock.Mock
}

func (m *MockScenarioService) CreateScenario(ctx context.Context, name string, file domain.ScenarioFile) (*domain.Scenario, error) {
	args := m.Called(ctx, name, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) GetScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) UpdateScenario(ctx context.Context, scenarioID, name string, file domain.ScenarioFile) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID, name, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) DeleteScenario(ctx context.Context, scenarioID string) error {
	args := m.Called(ctx, scenarioID)
	return args.Error(0)
}
func (m *MockScenarioService) ExportScenario(ctx context.Context, scenarioID string) ([]byte, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockScenarioService) ImportScenario(ctx context.Context, name string, data []byte) (*domain.Scenario, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) PinParticipant(ctx context.Context, scenarioID string, participantName string) error {
	args := m.Called(ctx, scenarioID, participantName)
	return args.Error(0)
}
func (m *MockScenarioService) PinnedParticipant(ctx context.Context, scenarioID string) (*domain.Participant, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}
func (m *MockScenarioService) UnpinParticipant(ctx context.Context, scenarioID string) error {
	args := m.Called(ctx, scenarioID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.ScenarioSvcFacade = (*MockScenarioService)(nil)

// --- Test Suite ---
type ScenarioHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockScenarioService *MockScenarioService
}

func (suite *ScenarioHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockScenarioService = new(MockScenarioService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterScenarioRoutes(v1, suite.mockScenarioService)
}

func testScenarioFile() domain.ScenarioFile {
	return domain.ScenarioFile{
		Version:   domain.ScenarioFileVersion,
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Participants: []domain.Participant{
			{Name: "Alice", IsFounder: true, Enabled: true, Surface: 100, RegistrationFeesRate: 12.5, InterestRate: 4, DurationYears: 20},
		},
		ProjectParams:  domain.ProjectParams{TotalPurchasePrice: 650000},
		DeedDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PortageFormula: domain.DefaultPortageFormulaParams(),
	}
}

// --- Test Cases ---

func (suite *ScenarioHandlerTestSuite) TestCreateScenario_Success() {
	file := testScenarioFile()
	created := &domain.Scenario{
		ScenarioID: uuid.NewString(),
		Name:       "Brutopia",
		File:       file,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	suite.mockScenarioService.On("CreateScenario",
		mock.Anything,
		"Brutopia",
		mock.MatchedBy(func(f domain.ScenarioFile) bool {
			return len(f.Participants) == 1 && f.Participants[0].Name == "Alice"
		}),
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateScenarioRequest{Name: "Brutopia", File: file})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/scenarios", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ScenarioResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ScenarioID, resp.ScenarioID)
	suite.Equal("Brutopia", resp.Name)
	suite.Len(resp.File.Participants, 1)

	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestCreateScenario_ValidationError() {
	file := testScenarioFile()

	suite.mockScenarioService.On("CreateScenario", mock.Anything, "Broken", mock.Anything).
		Return(nil, fmt.Errorf("duplicate participant name Alice: %w", apperrors.ErrValidation)).Once()

	body, _ := json.Marshal(dto.CreateScenarioRequest{Name: "Broken", File: file})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/scenarios", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestCreateScenario_BadPayload() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/scenarios", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockScenarioService.AssertNotCalled(suite.T(), "CreateScenario")
}

func (suite *ScenarioHandlerTestSuite) TestGetScenario_NotFound() {
	scenarioID := uuid.NewString()

	suite.mockScenarioService.On("GetScenarioByID", mock.Anything, scenarioID).
		Return(nil, fmt.Errorf("scenario %s: %w", scenarioID, apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/scenarios/"+scenarioID, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestListScenarios_Success() {
	scenarios := []domain.Scenario{
		{ScenarioID: uuid.NewString(), Name: "A", File: testScenarioFile()},
		{ScenarioID: uuid.NewString(), Name: "B", File: testScenarioFile()},
	}

	suite.mockScenarioService.On("ListScenarios", mock.Anything).Return(scenarios, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.ScenarioSummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("A", resp[0].Name)
	suite.Equal(1, resp[0].Participants)

	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestDeleteScenario_Success() {
	scenarioID := uuid.NewString()

	suite.mockScenarioService.On("DeleteScenario", mock.Anything, scenarioID).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/scenarios/"+scenarioID, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestExportScenario_RawPayload() {
	scenarioID := uuid.NewString()
	payload := []byte(`{"version":2,"participants":[]}`)

	suite.mockScenarioService.On("ExportScenario", mock.Anything, scenarioID).Return(payload, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/export", scenarioID), nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/json", w.Header().Get("Content-Type"))
	suite.Equal(payload, w.Body.Bytes())

	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestPinParticipant_UnknownName() {
	scenarioID := uuid.NewString()

	suite.mockScenarioService.On("PinParticipant", mock.Anything, scenarioID, "Nobody").
		Return(fmt.Errorf("%w: participant %q not in scenario", apperrors.ErrNotFound, "Nobody")).Once()

	body, _ := json.Marshal(dto.PinParticipantRequest{ParticipantName: "Nobody"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/scenarios/%s/pinned-participant", scenarioID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockScenarioService.AssertExpectations(suite.T())
}

func (suite *ScenarioHandlerTestSuite) TestGetPinnedParticipant_NonePinned() {
	scenarioID := uuid.NewString()

	suite.mockScenarioService.On("PinnedParticipant", mock.Anything, scenarioID).Return(nil, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/pinned-participant", scenarioID), nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockScenarioService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestScenarioHandler(t *testing.T) {
	suite.Run(t, new(ScenarioHandlerTestSuite))
}
