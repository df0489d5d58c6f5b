package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/service"
)

func doGet(t *testing.T, s *service.Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header = authHeader("valid")
	newTestRouter(s).ServeHTTP(w, req)
	return w
}

func labDetailFixture() models.LabDetail {
	return models.LabDetail{
		Lab:   models.Lab{ID: "lab-a", Name: "Computer Lab A", TotalComputers: 3},
		Stats: models.LabStats{LabID: "lab-a", Working: 1, NotWorking: 1, Maintenance: 1, OperationalPercentage: 33, StatusTier: models.TierError},
		Computers: []models.Computer{
			{ID: "PC-01", Name: "LAB-A-PC-01", Status: models.StatusWorking},
			{ID: "PC-02", Name: "LAB-A-PC-02", Status: models.StatusMaintenance},
			{ID: "PC-03", Name: "LAB-A-PC-03", Status: models.StatusNotWorking},
		},
	}
}

func TestHealth(t *testing.T) {
	w := doGet(t, &service.Service{}, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListLabs_PassesQuery(t *testing.T) {
	mon := &mockMonitoring{labs: []models.LabOverview{{Lab: models.Lab{ID: "lab-b"}}}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitoring: mon}

	w := doGet(t, s, "/api/v1/labs?q=Johnson")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Count int                  `json:"count"`
		Labs  []models.LabOverview `json:"labs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "Johnson", mon.lastQuery)
}

func TestListLabs_Unauthorized(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Monitoring: &mockMonitoring{}}
	w := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/labs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListLabs_ServiceError(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitoring: &mockMonitoring{listErr: errors.New("db down")}}
	w := doGet(t, s, "/api/v1/labs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetLab(t *testing.T) {
	mon := &mockMonitoring{detail: labDetailFixture(), lab: map[string]bool{"lab-a": true}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitoring: mon}

	t.Run("found", func(t *testing.T) {
		w := doGet(t, s, "/api/v1/labs/lab-a")
		require.Equal(t, http.StatusOK, w.Code)
		var d models.LabDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Len(t, d.Computers, 3)
	})

	t.Run("not found has home link", func(t *testing.T) {
		w := doGet(t, s, "/api/v1/labs/unknown-id")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"lab not found","home":"/"}`, w.Body.String())
	})
}

func TestGetLab_FetchFailureIsBadGateway(t *testing.T) {
	mon := &mockMonitoring{loadErr: errors.New("source down")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitoring: mon}

	w := doGet(t, s, "/api/v1/labs/lab-a")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestListComputers(t *testing.T) {
	mon := &mockMonitoring{detail: labDetailFixture()}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Monitoring: mon}

	tests := []struct {
		name   string
		target string
		code   int
		ids    []string
		bucket inventory.Bucket
	}{
		{"all", "/api/v1/labs/lab-a/computers", http.StatusOK, []string{"PC-01", "PC-02", "PC-03"}, inventory.BucketAll},
		{"search by id", "/api/v1/labs/lab-a/computers?q=pc-01", http.StatusOK, []string{"PC-01"}, inventory.BucketAll},
		{"not working bucket", "/api/v1/labs/lab-a/computers?bucket=not_working", http.StatusOK, []string{"PC-02", "PC-03"}, inventory.BucketNotWorking},
		{"route spelling", "/api/v1/labs/lab-a/computers?bucket=non-working", http.StatusOK, []string{"PC-02", "PC-03"}, inventory.BucketNotWorking},
		{"bad bucket", "/api/v1/labs/lab-a/computers?bucket=broken", http.StatusBadRequest, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(t, s, tt.target)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var out struct {
				Count     int               `json:"count"`
				Computers []models.Computer `json:"computers"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			ids := make([]string, 0, len(out.Computers))
			for _, c := range out.Computers {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.bucket, mon.lastBucket)
		})
	}
}
