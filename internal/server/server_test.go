package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/pipeline"
	"github.com/pfrederiksen/advent-wins/internal/storage"
	"github.com/pfrederiksen/advent-wins/internal/tracker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAcquirer struct {
	result  pipeline.Result
	forced  bool
	block   chan struct{}
	started chan struct{}
}

func (s *stubAcquirer) Acquire(_ context.Context, _ []advent.Member, forceSimulate bool) pipeline.Result {
	s.forced = forceSimulate
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		<-s.block
	}
	return s.result
}

func newTestRouter(t *testing.T, acq *stubAcquirer) (*gin.Engine, string) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error: %v", err)
	}
	tr := tracker.New(store, acq, nil)
	groups, err := tr.Groups()
	if err != nil {
		t.Fatalf("Groups() error: %v", err)
	}
	return NewRouter(NewHandler(tr, 2025)), groups[0].ID
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &stubAcquirer{})

	w := do(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decode[map[string]string](t, w); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestCheckAndViews(t *testing.T) {
	acq := &stubAcquirer{result: pipeline.Result{
		Source: advent.SourceReal,
		DayData: []advent.DayData{
			{Day: 24, WinGroups: []advent.WinGroup{
				{Numbers: []string{"5555", "0815"}, Prize: "Gans", Sponsor: "Metzgerei Roth"},
			}},
		},
	}}
	router, groupID := newTestRouter(t, acq)

	w := do(t, router, http.MethodPost, "/api/groups/"+groupID+"/members", `{"name":"Tante","number":"0815"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add member status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPost, "/api/check?simulate=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d, body = %s", w.Code, w.Body.String())
	}
	if !acq.forced {
		t.Error("simulate query not passed through")
	}
	res := decode[tracker.CheckResult](t, w)
	if res.Source != advent.SourceReal || len(res.Wins) != 1 {
		t.Errorf("check result = %+v", res)
	}

	w = do(t, router, http.MethodGet, "/api/wins", "")
	wins := decode[[]advent.WinEntry](t, w)
	if len(wins) != 1 || wins[0].Member.Name != "Tante" || wins[0].Day != 24 {
		t.Errorf("wins = %+v", wins)
	}

	w = do(t, router, http.MethodGet, "/api/wins?filter=day:1-6", "")
	if filtered := decode[[]advent.WinEntry](t, w); len(filtered) != 0 {
		t.Errorf("filtered wins = %+v, want none", filtered)
	}
	w = do(t, router, http.MethodGet, "/api/wins?filter=color:red", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodGet, "/api/wins.ics", "")
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("ics content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "DTSTART;VALUE=DATE:20251224") {
		t.Errorf("ics body = %q", w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/days", "")
	days := decode[[]tracker.DayView](t, w)
	if len(days) != 1 || days[0].WinGroups[0].Numbers[0] != "0815" {
		t.Errorf("days = %+v", days)
	}
	if days[0].Decoration == nil || days[0].Decoration.Label != "Heiligabend" {
		t.Errorf("decoration = %+v", days[0].Decoration)
	}

	w = do(t, router, http.MethodGet, "/api/status", "")
	status := decode[tracker.Status](t, w)
	if status.DataSource != advent.SourceReal || !status.Live || status.Wins != 1 {
		t.Errorf("status = %+v", status)
	}
}

func TestCheck_Conflict(t *testing.T) {
	acq := &stubAcquirer{
		result:  pipeline.Result{Source: advent.SourceError, Err: "offline"},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	router, _ := newTestRouter(t, acq)

	done := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/check", nil))
		done <- w.Code
	}()

	select {
	case <-acq.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first check did not start")
	}

	w := do(t, router, http.MethodPost, "/api/check", "")
	if w.Code != http.StatusConflict {
		t.Errorf("concurrent check status = %d, want 409", w.Code)
	}

	close(acq.block)
	if code := <-done; code != http.StatusOK {
		t.Errorf("first check status = %d, want 200", code)
	}
}

func TestMemberErrors(t *testing.T) {
	router, groupID := newTestRouter(t, &stubAcquirer{})

	if w := do(t, router, http.MethodPost, "/api/groups/"+groupID+"/members", `{"name":"A","number":"1000"}`); w.Code != http.StatusCreated {
		t.Fatalf("add status = %d", w.Code)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"duplicate number", http.MethodPost, "/api/groups/" + groupID + "/members", `{"name":"B","number":"1000"}`, http.StatusConflict},
		{"missing number", http.MethodPost, "/api/groups/" + groupID + "/members", `{"name":"B"}`, http.StatusBadRequest},
		{"unknown group", http.MethodPost, "/api/groups/nope/members", `{"name":"B","number":"2000"}`, http.StatusNotFound},
		{"bad json", http.MethodPost, "/api/groups/" + groupID + "/members", `{`, http.StatusBadRequest},
		{"unknown member", http.MethodDelete, "/api/groups/" + groupID + "/members/nope", "", http.StatusNotFound},
		{"edit unknown member", http.MethodPut, "/api/groups/" + groupID + "/members/nope", `{"name":"B","number":"2000"}`, http.StatusNotFound},
		{"empty rename", http.MethodPut, "/api/groups/" + groupID, `{"name":"  "}`, http.StatusBadRequest},
		{"share unknown group", http.MethodGet, "/api/groups/nope/share", "", http.StatusNotFound},
		{"import without data", http.MethodPost, "/api/import", `{}`, http.StatusBadRequest},
		{"invalid simulate", http.MethodPost, "/api/check?simulate=yes", "", http.StatusBadRequest},
		{"import garbage", http.MethodPost, "/api/import", `{"data":"#data=%%%"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestGroupLifecycle(t *testing.T) {
	router, groupID := newTestRouter(t, &stubAcquirer{})

	w := do(t, router, http.MethodPost, "/api/groups/"+groupID+"/members", `{"name":"Oma","number":"4711","avatar":"🎄"}`)
	member := decode[advent.Member](t, w)
	if member.ID == "" || member.Avatar != "🎄" {
		t.Fatalf("member = %+v", member)
	}

	w = do(t, router, http.MethodPut, "/api/groups/"+groupID+"/members/"+member.ID, `{"name":"Oma Ilse","number":"4712"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPut, "/api/groups/"+groupID, `{"name":"Nachbarn"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("rename status = %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/api/groups/"+groupID+"/share?base=https://example.org/", "")
	link := decode[map[string]string](t, w)["url"]
	if !strings.HasPrefix(link, "https://example.org/#data=") {
		t.Fatalf("share url = %q", link)
	}

	w = do(t, router, http.MethodDelete, "/api/groups/"+groupID+"/members/"+member.ID, "")
	if groups := decode[[]advent.Group](t, w); len(groups[0].Members) != 0 {
		t.Errorf("members after delete = %d, want 0", len(groups[0].Members))
	}

	body, _ := json.Marshal(map[string]string{"data": strings.TrimPrefix(link, "https://example.org/")})
	w = do(t, router, http.MethodPost, "/api/import", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/groups", "")
	groups := decode[[]advent.Group](t, w)
	if len(groups) != 1 || groups[0].Name != "Nachbarn" || len(groups[0].Members) != 1 {
		t.Fatalf("groups = %+v", groups)
	}
	if m := groups[0].Members[0]; m.Name != "Oma Ilse" || m.Number != "4712" || m.Avatar != "🎄" {
		t.Errorf("imported member = %+v", m)
	}
}

func TestShare_DefaultBase(t *testing.T) {
	router, groupID := newTestRouter(t, &stubAcquirer{})

	req := httptest.NewRequest(http.MethodGet, "/api/groups/"+groupID+"/share", nil)
	req.Host = "advent.local:8080"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	link := decode[map[string]string](t, w)["url"]
	if !strings.HasPrefix(link, "http://advent.local:8080/#data=") {
		t.Errorf("share url = %q", link)
	}
}

func TestAddMember_FreshInstall(t *testing.T) {
	router, _ := newTestRouter(t, &stubAcquirer{})

	w := do(t, router, http.MethodGet, "/api/groups", "")
	groups := decode[[]advent.Group](t, w)
	if len(groups) != 1 {
		t.Fatalf("groups = %+v", groups)
	}

	w = do(t, router, http.MethodPost, "/api/groups/"+groups[0].ID+"/members", `{"name":"Oma","number":"4711"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add member status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/groups", "")
	if after := decode[[]advent.Group](t, w); len(after[0].Members) != 1 {
		t.Errorf("members after add = %d, want 1", len(after[0].Members))
	}
}

func TestCheck_InvalidSimulateDoesNotFetch(t *testing.T) {
	acq := &stubAcquirer{started: make(chan struct{})}
	router, _ := newTestRouter(t, acq)

	w := do(t, router, http.MethodPost, "/api/check?simulate=yes", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	select {
	case <-acq.started:
		t.Error("acquisition ran for an invalid simulate value")
	default:
	}
}
