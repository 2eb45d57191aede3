package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/store"
)

// ---------- test router ----------

func newTestRouter(s store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(s)
	r := gin.New()
	r.NoRoute(NoRoute)
	r.GET("/questions", h.GetQuestions)
	r.GET("/questions/:id", h.GetQuestion)
	r.POST("/questions", h.AddQuestion)
	r.PUT("/questions/:id", h.UpdateQuestion)
	r.DELETE("/questions/:id", h.DeleteQuestion)
	r.GET("/questions/:id/answers", h.GetAnswers)
	r.POST("/answers", h.AddAnswer)
	return r
}

func do(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("error body: %v (%s)", err, w.Body.String())
	}
	return er
}

func seed(t *testing.T, s store.Store, titles ...string) {
	t.Helper()
	for _, title := range titles {
		if _, err := s.AddQuestion(context.Background(), domain.NewQuestion{Title: title, Content: "c"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

// ---------- failing store ----------

type brokenStore struct{ store.Store }

var errDisk = errors.New("disk full")

func (brokenStore) GetQuestions(context.Context, *int, int) ([]domain.Question, error) {
	return nil, domain.DatabaseQueryError(errDisk)
}

func (brokenStore) AddQuestion(context.Context, domain.NewQuestion) (domain.Question, error) {
	return domain.Question{}, domain.DatabaseQueryError(errDisk)
}

func (brokenStore) AddAnswer(context.Context, domain.NewAnswer) (domain.Answer, error) {
	return domain.Answer{}, domain.DatabaseQueryError(errDisk)
}

// ---------- tests ----------

func TestGetQuestions_Paging(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "a", "b", "c", "d")
	r := newTestRouter(s)

	cases := []struct {
		query  string
		status int
		titles []string
		code   string
	}{
		{"", 200, []string{"a", "b", "c", "d"}, ""},
		{"?limit=2&offset=1", 200, []string{"b", "c"}, ""},
		{"?start=1&end=3", 200, []string{"b", "c"}, ""},
		{"?limit=2&offset=10", 200, []string{}, ""},
		{"?start=2&end=100", 200, []string{"c", "d"}, ""},
		{"?limit=2", 416, nil, "missing_parameters"},
		{"?end=2", 416, nil, "missing_parameters"},
		{"?limit=x&offset=0", 416, nil, "parse_error"},
		{"?limit=-1&offset=0", 416, nil, "parse_error"},
		{"?start=3&end=1", 416, nil, "start_larger_than_end"},
		{"?other=1", 200, []string{"a", "b", "c", "d"}, ""},
	}
	for _, tc := range cases {
		w := do(r, http.MethodGet, "/questions"+tc.query, "", "")
		if w.Code != tc.status {
			t.Fatalf("GET /questions%s -> %d; want %d (%s)", tc.query, w.Code, tc.status, w.Body.String())
		}
		if tc.code != "" {
			if er := decodeErr(t, w); er.Code != tc.code {
				t.Fatalf("GET /questions%s code=%q; want %q", tc.query, er.Code, tc.code)
			}
			continue
		}
		var qs []domain.Question
		if err := json.Unmarshal(w.Body.Bytes(), &qs); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		if len(qs) != len(tc.titles) {
			t.Fatalf("GET /questions%s len=%d; want %d", tc.query, len(qs), len(tc.titles))
		}
		for i := range qs {
			if qs[i].Title != tc.titles[i] {
				t.Fatalf("GET /questions%s [%d]=%q; want %q", tc.query, i, qs[i].Title, tc.titles[i])
			}
		}
		if got := w.Header().Get("X-Total-Count"); got != "4" {
			t.Fatalf("X-Total-Count=%q; want 4", got)
		}
	}

	// Empty window serializes as [] rather than null.
	if w := do(r, http.MethodGet, "/questions?limit=1&offset=99", "", ""); strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list body = %q", w.Body.String())
	}
}

func TestAddQuestion_ThenGet(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s)

	w := do(r, http.MethodPost, "/questions", "application/json", `{"title":" café ","content":"body","tags":["go"]}`)
	if w.Code != http.StatusOK || w.Body.String() != "question added" {
		t.Fatalf("POST /questions -> %d %q", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/questions/1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /questions/1 -> %d", w.Code)
	}
	var q domain.Question
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.ID != 1 || q.Title != "café" || len(q.Tags) != 1 {
		t.Fatalf("unexpected question: %+v", q)
	}

	w = do(r, http.MethodGet, "/questions/2", "", "")
	if w.Code != http.StatusRequestedRangeNotSatisfiable || decodeErr(t, w).Message != "Question not found" {
		t.Fatalf("GET missing -> %d %s", w.Code, w.Body.String())
	}
}

func TestAddQuestion_BadBody(t *testing.T) {
	r := newTestRouter(store.NewMemoryStore())
	for _, body := range []string{`{"title":`, `{"title":"t"}`, `[]`} {
		w := do(r, http.MethodPost, "/questions", "application/json", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("POST %s -> %d; want 422", body, w.Code)
		}
		er := decodeErr(t, w)
		if er.Code != ErrCodeInvalidBody || !strings.HasSuffix(er.Message, ", Please try again later!") {
			t.Fatalf("unexpected error body: %+v", er)
		}
	}
}

func TestAddQuestion_EmptyStringsAccepted(t *testing.T) {
	s := store.NewMemoryStore()
	r := newTestRouter(s)

	w := do(r, http.MethodPost, "/questions", "application/json", `{"title":"","content":""}`)
	if w.Code != http.StatusOK || w.Body.String() != "question added" {
		t.Fatalf("POST empty strings -> %d %q", w.Code, w.Body.String())
	}
	q, err := s.GetQuestion(context.Background(), 1)
	if err != nil || q.Title != "" || q.Content != "" {
		t.Fatalf("stored question = %+v, %v", q, err)
	}
}

func TestUpdateQuestion(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "old")
	r := newTestRouter(s)

	body := `{"id":"99","title":"new","content":"text","tags":["x"]}`
	for range 2 {
		w := do(r, http.MethodPut, "/questions/1", "application/json", body)
		if w.Code != http.StatusOK {
			t.Fatalf("PUT /questions/1 -> %d %s", w.Code, w.Body.String())
		}
		var q domain.Question
		_ = json.Unmarshal(w.Body.Bytes(), &q)
		if q.ID != 1 || q.Title != "new" {
			t.Fatalf("PUT result: %+v", q)
		}
	}

	w := do(r, http.MethodPut, "/questions/99", "application/json", body)
	if w.Code != http.StatusRequestedRangeNotSatisfiable || decodeErr(t, w).Code != "question_not_found" {
		t.Fatalf("PUT missing -> %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPut, "/questions/abc", "application/json", body)
	if w.Code != http.StatusRequestedRangeNotSatisfiable || decodeErr(t, w).Code != "parse_error" {
		t.Fatalf("PUT bad id -> %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPut, "/questions/1", "application/json", `{"title":1}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("PUT bad body -> %d", w.Code)
	}
}

func TestDeleteQuestion(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "a", "b")
	r := newTestRouter(s)

	w := do(r, http.MethodDelete, "/questions/1", "", "")
	if w.Code != http.StatusOK || w.Body.String() != "Question 1 deleted" {
		t.Fatalf("DELETE -> %d %q", w.Code, w.Body.String())
	}
	w = do(r, http.MethodDelete, "/questions/1", "", "")
	if w.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("second DELETE -> %d", w.Code)
	}
	if n, _ := s.CountQuestions(context.Background()); n != 1 {
		t.Fatalf("count after delete = %d", n)
	}
}

func TestAnswers(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "q")
	r := newTestRouter(s)

	form := url.Values{"content": {"forty-two"}, "question_id": {"1"}}.Encode()
	w := do(r, http.MethodPost, "/answers", "application/x-www-form-urlencoded", form)
	if w.Code != http.StatusOK || w.Body.String() != "Answer added" {
		t.Fatalf("POST /answers -> %d %q", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/questions/1/answers", "", "")
	var as []domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &as); err != nil || len(as) != 1 || as[0].Content != "forty-two" || as[0].QuestionID != 1 {
		t.Fatalf("GET answers -> %s err=%v", w.Body.String(), err)
	}

	for _, bad := range []string{
		url.Values{"content": {"x"}}.Encode(),
		url.Values{"question_id": {"1"}}.Encode(),
		url.Values{"content": {"x"}, "question_id": {"one"}}.Encode(),
	} {
		w := do(r, http.MethodPost, "/answers", "application/x-www-form-urlencoded", bad)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("POST /answers %q -> %d; want 422", bad, w.Code)
		}
	}
}

func TestBackendFailures_Map422(t *testing.T) {
	r := newTestRouter(brokenStore{})

	checks := []*httptest.ResponseRecorder{
		do(r, http.MethodGet, "/questions", "", ""),
		do(r, http.MethodPost, "/questions", "application/json", `{"title":"t","content":"c"}`),
		do(r, http.MethodPost, "/answers", "application/x-www-form-urlencoded", "content=x&question_id=1"),
	}
	for i, w := range checks {
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("check %d -> %d; want 422", i, w.Code)
		}
		if er := decodeErr(t, w); er.Message != "Cannot update, invalid data." {
			t.Fatalf("check %d message = %q", i, er.Message)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(store.NewMemoryStore())
	w := do(r, http.MethodGet, "/nope", "", "")
	if w.Code != http.StatusNotFound || decodeErr(t, w).Message != "Route not found" {
		t.Fatalf("GET /nope -> %d %s", w.Code, w.Body.String())
	}
}
