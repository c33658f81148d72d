package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/calendar"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
)

const (
	secret       = "test-secret"
	doctorUserID = 10
	patientID    = 20
)

type server struct {
	engine *gin.Engine
	inbox  *notification.MemoryInbox
	outbox *notification.Outbox
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	repo.AddUser(models.User{ID: doctorUserID, Name: "Gregory House", Email: "house@clinic.test"})
	repo.AddUser(models.User{ID: patientID, Name: "John Doe", Email: "john@example.com"})
	repo.AddDoctor(models.Doctor{ID: 1, UserID: doctorUserID, FirstName: "Gregory", LastName: "House", Status: "approved"})

	inbox := notification.NewMemoryInbox()
	outbox := notification.NewOutbox(inbox, 16, zap.NewNop())
	t.Cleanup(outbox.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{
			JWTSecret:          secret,
			SuggestSlotMinutes: 30,
			SuggestMax:         3,
			SuggestMaxDays:     7,
		},
		Logger:    zap.NewNop(),
		Repo:      repo,
		Inbox:     inbox,
		Publisher: outbox,
		Location:  time.UTC,
		Clock:     calendar.FixedClock(time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)),
	})

	return &server{engine: r, inbox: inbox, outbox: outbox}
}

func (s *server) do(t *testing.T, method, path string, userID uint, role string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := middleware.IssueToken(secret, userID, role)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func slot(start, end string) map[string]any {
	return map[string]any{
		"doctor_id":  1,
		"date":       "2024-06-03",
		"start_time": start,
		"end_time":   end,
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	if w := s.do(t, http.MethodGet, "/health", 0, "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequiresAuth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodPost, "/api/appointments", 0, "", slot("10:00", "10:30"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)

	// advisory check
	w := s.do(t, http.MethodPost, "/api/appointments/availability", patientID, middleware.RolePatient, slot("10:00", "10:30"))
	if w.Code != http.StatusOK {
		t.Fatalf("availability: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var av struct {
		Available bool `json:"available"`
	}
	decode(t, w, &av)
	if !av.Available {
		t.Fatalf("expected available, got %s", w.Body.String())
	}

	// book
	w = s.do(t, http.MethodPost, "/api/appointments", patientID, middleware.RolePatient, slot("10:00", "10:30"))
	if w.Code != http.StatusCreated {
		t.Fatalf("book: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var ap models.Appointment
	decode(t, w, &ap)
	if ap.Status != "pending" || ap.PatientID != patientID {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	// same slot again
	w = s.do(t, http.MethodPost, "/api/appointments", patientID, middleware.RolePatient, slot("10:15", "10:45"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var conflict struct {
		Code   string `json:"error_code"`
		Reason string `json:"reason"`
	}
	decode(t, w, &conflict)
	if conflict.Code != "slot_conflict" || conflict.Reason != "already-booked" {
		t.Fatalf("unexpected conflict body %s", w.Body.String())
	}

	// availability now comes back with suggestions
	w = s.do(t, http.MethodPost, "/api/appointments/availability", patientID, middleware.RolePatient, slot("10:00", "10:30"))
	var withSuggestions struct {
		Available   bool   `json:"available"`
		Reason      string `json:"reason"`
		Suggestions []struct {
			Start string `json:"start"`
		} `json:"suggestions"`
	}
	decode(t, w, &withSuggestions)
	if withSuggestions.Available || withSuggestions.Reason != "already-booked" ||
		len(withSuggestions.Suggestions) == 0 || withSuggestions.Suggestions[0].Start != "10:30" {
		t.Fatalf("unexpected availability %s", w.Body.String())
	}

	// doctor approves
	w = s.do(t, http.MethodPatch, "/api/doctor/appointments/1/status", doctorUserID, middleware.RoleDoctor, map[string]string{"status": "approved"})
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// a second decision is refused
	w = s.do(t, http.MethodPatch, "/api/doctor/appointments/1/status", doctorUserID, middleware.RoleDoctor, map[string]string{"status": "rejected"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 invalid_state, got %d: %s", w.Code, w.Body.String())
	}

	// patient sees the appointment and the notifications
	w = s.do(t, http.MethodGet, "/api/me/appointments", patientID, middleware.RolePatient, nil)
	var mine struct {
		Total int `json:"total"`
	}
	decode(t, w, &mine)
	if mine.Total != 1 {
		t.Fatalf("expected one appointment, got %s", w.Body.String())
	}

	s.outbox.Close()

	w = s.do(t, http.MethodGet, "/api/notifications?unseen=true", patientID, middleware.RolePatient, nil)
	var inbox struct {
		Data []models.Notification `json:"data"`
	}
	decode(t, w, &inbox)
	if len(inbox.Data) != 2 || inbox.Data[0].Kind != string(notification.KindAppointmentApproved) {
		t.Fatalf("unexpected inbox %s", w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/notifications/seen", patientID, middleware.RolePatient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark seen: expected 200, got %d", w.Code)
	}
}

func TestBookingErrors(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"sunday", map[string]any{"doctor_id": 1, "date": "2024-06-02", "start_time": "10:00", "end_time": "10:30"}, http.StatusUnprocessableEntity, "rule_violation"},
		{"bad clock", slot("10am", "11am"), http.StatusBadRequest, "invalid_time_format"},
		{"missing date", map[string]any{"doctor_id": 1, "start_time": "10:00", "end_time": "10:30"}, http.StatusBadRequest, "validation_error"},
		{"unknown doctor", map[string]any{"doctor_id": 9, "date": "2024-06-03", "start_time": "10:00", "end_time": "10:30"}, http.StatusNotFound, "doctor_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/appointments", patientID, middleware.RolePatient, tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			var body struct {
				Code string `json:"error_code"`
			}
			decode(t, w, &body)
			if body.Code != tt.code {
				t.Fatalf("expected %s, got %s", tt.code, body.Code)
			}
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/appointments/suggestions?doctor_id=1&date=2024-06-01&time=15:30", patientID, middleware.RolePatient, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out struct {
		Data []struct {
			Date  string `json:"date"`
			Start string `json:"start"`
		} `json:"data"`
	}
	decode(t, w, &out)
	if len(out.Data) != 3 || out.Data[0].Start != "15:30" || out.Data[1].Date != "2024-06-03" {
		t.Fatalf("unexpected suggestions %s", w.Body.String())
	}
}

func TestDoctorRoutesNeedDoctorRole(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/doctor/appointments?date=2024-06-03", patientID, middleware.RolePatient, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/doctor/appointments?date=2024-06-03", doctorUserID, middleware.RoleDoctor, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
