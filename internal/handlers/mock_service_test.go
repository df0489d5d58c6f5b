package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (models.Session, error) {
	m.lastParseToken = token
	return models.Session{UserID: m.parseID}, m.parseErr
}

type mockMonitoring struct {
	mu sync.Mutex

	labs    []models.LabOverview
	listErr error
	detail  models.LabDetail
	lab     map[string]bool // known lab ids; nil means every id is known
	loadErr error

	lastQuery  string
	lastBucket inventory.Bucket
	loads      int
}

func (m *mockMonitoring) known(labID string) bool {
	return m.lab == nil || m.lab[labID]
}

func (m *mockMonitoring) ListLabs(_ context.Context, query string) ([]models.LabOverview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = query
	return m.labs, m.listErr
}

func (m *mockMonitoring) GetLab(_ context.Context, labID string) (models.LabDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.known(labID) {
		return models.LabDetail{}, service.ErrLabNotFound
	}
	if m.loadErr != nil {
		return models.LabDetail{}, m.loadErr
	}
	return m.detail, nil
}

func (m *mockMonitoring) ListComputers(ctx context.Context, labID, query string, bucket inventory.Bucket) ([]models.Computer, error) {
	d, err := m.GetLab(ctx, labID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.lastQuery = query
	m.lastBucket = bucket
	m.mu.Unlock()
	return inventory.FilterComputers(d.Computers, query, bucket), nil
}

func (m *mockMonitoring) LoadLab(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error) {
	d, err := m.GetLab(ctx, labID)
	m.mu.Lock()
	m.loads++
	m.lastBucket = bucket
	m.mu.Unlock()
	if err != nil {
		return models.LabDetail{}, err
	}
	d.Computers = inventory.FilterComputers(d.Computers, "", bucket)
	return d, nil
}

type mockEventLog struct {
	resp     []models.LabEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	lastLab  string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.LabEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLab = f.LabID
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
