package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/service"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

// newTestApp wires the full router onto an in-memory store.
func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	authSvc := service.NewAuthService(st)
	registrySvc := service.NewRegistryService(st)
	memberSvc := service.NewMemberService(st, registrySvc)
	todoSvc := service.NewTodoService(st)
	trackerSvc := service.NewMinuteTrackerService(st)

	return NewRouter(
		NewAuthHandler(authSvc),
		NewMemberHandler(memberSvc),
		NewRegistryHandler(registrySvc),
		NewTodoHandler(todoSvc),
		NewMinuteTrackerHandler(trackerSvc, memberSvc),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func registerTeam(t *testing.T, r *gin.Engine, teamName, password string) model.LoginResponse {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"teamName": teamName, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", rec.Code, rec.Body.String())
	}
	return decode[model.LoginResponse](t, rec)
}

func TestRegisterLoginFlow(t *testing.T) {
	r := newTestApp(t)

	registerTeam(t, r, "Cabin Crew", "Secret1!")

	rec := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"teamName": "Cabin Crew", "password": "Secret1!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[model.LoginResponse](t, rec)
	if resp.User.TeamName != "Cabin Crew" {
		t.Errorf("session teamName = %q", resp.User.TeamName)
	}
	if resp.Token == "" {
		t.Error("no token issued")
	}

	// Session bootstrap with the issued token.
	rec = doJSON(t, r, http.MethodGet, "/api/me", resp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d", rec.Code)
	}
	me := decode[model.Session](t, rec)
	if me.TeamName != "Cabin Crew" {
		t.Errorf("me.teamName = %q", me.TeamName)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := newTestApp(t)
	registerTeam(t, r, "Cabin Crew", "Secret1!")

	rec := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"teamName": "Cabin Crew", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var resp model.LoginResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Token != "" {
		t.Error("token issued for bad credentials")
	}
}

func TestRegisterDuplicateTeamName(t *testing.T) {
	r := newTestApp(t)
	registerTeam(t, r, "alpha", "Secret1!")

	rec := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"teamName": "Alpha", "password": "Other123",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	r := newTestApp(t)
	rec := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"teamName": "Cabin Crew", "password": "Secret1!", "confirmPassword": "Secret2!",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestApp(t)
	for _, path := range []string{"/api/me", "/api/members", "/api/todos", "/api/minutes", "/api/registry"} {
		rec := doJSON(t, r, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rec.Code)
		}
	}
}

func TestMemberAndMinuteTrackerFlow(t *testing.T) {
	r := newTestApp(t)
	session := registerTeam(t, r, "Cabin Crew", "Secret1!")
	token := session.Token

	// Add member "Asha".
	rec := doJSON(t, r, http.MethodPost, "/api/members", token, gin.H{"name": "Asha"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create member: status %d: %s", rec.Code, rec.Body.String())
	}
	asha := decode[model.Member](t, rec)

	// Track today with the "Daily sync" template.
	rec = doJSON(t, r, http.MethodPost, "/api/minutes", token, gin.H{
		"members": []string{asha.ID}, "template": "Daily sync",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry: status %d: %s", rec.Code, rec.Body.String())
	}
	entry := decode[model.MinuteTrackerEntry](t, rec)
	if tasks := entry.Tasks[asha.ID]; len(tasks) != 1 || tasks[0] != "Daily sync" {
		t.Errorf("tasks[%s] = %v, want [Daily sync]", asha.ID, tasks)
	}
}

func TestRegistryFlow(t *testing.T) {
	r := newTestApp(t)
	token := registerTeam(t, r, "Cabin Crew", "Secret1!").Token

	rec := doJSON(t, r, http.MethodPost, "/api/members", token, gin.H{"name": "Asha"})
	asha := decode[model.Member](t, rec)

	rec = doJSON(t, r, http.MethodPost, "/api/registry/mark-in", token, gin.H{
		"memberId": asha.ID, "memberName": "Asha", "date": "2024-01-01", "time": "09:00",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark-in: status %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, r, http.MethodPost, "/api/registry/mark-out", token, gin.H{
		"memberId": asha.ID, "memberName": "Asha", "date": "2024-01-01", "time": "17:00",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark-out: status %d: %s", rec.Code, rec.Body.String())
	}
	entry := decode[model.RegistryEntry](t, rec)
	if entry.MarkIn != "09:00" || entry.MarkOut != "17:00" {
		t.Errorf("entry = %+v, want both marks", entry)
	}

	// Cascade: deleting the member clears its registry entries.
	rec = doJSON(t, r, http.MethodDelete, "/api/members/"+asha.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete member: status %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/registry?date=2024-01-01", token, nil)
	entries := decode[[]model.RegistryEntry](t, rec)
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none after cascade", entries)
	}
}

func TestMinuteTrackerExport(t *testing.T) {
	r := newTestApp(t)
	token := registerTeam(t, r, "Cabin Crew", "Secret1!").Token

	rec := doJSON(t, r, http.MethodPost, "/api/members", token, gin.H{"name": "Asha"})
	asha := decode[model.Member](t, rec)
	doJSON(t, r, http.MethodPost, "/api/minutes", token, gin.H{
		"members": []string{asha.ID}, "template": "Daily sync",
	})

	rec = doJSON(t, r, http.MethodGet, "/api/minutes/export", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestTodoFlow(t *testing.T) {
	r := newTestApp(t)
	token := registerTeam(t, r, "Cabin Crew", "Secret1!").Token

	rec := doJSON(t, r, http.MethodPost, "/api/todos", token, gin.H{
		"title": "Pack supplies", "priority": "high", "dueDate": "2024-06-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create todo: status %d: %s", rec.Code, rec.Body.String())
	}
	todo := decode[model.TodoItem](t, rec)

	rec = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/todos/%s", todo.ID), token, gin.H{
		"title": todo.Title, "priority": "high", "completed": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update todo: status %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[model.TodoItem](t, rec)
	if !updated.Completed {
		t.Error("todo not completed after toggle")
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/todos/"+todo.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete todo: status %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/todos", token, nil)
	todos := decode[[]model.TodoItem](t, rec)
	if len(todos) != 0 {
		t.Errorf("todos = %+v, want empty", todos)
	}
}
