package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/adapter/auth"
	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

type memRepo struct {
	mu   sync.Mutex
	rows map[domain.Identity]*model.Record
}

func (r *memRepo) Load(_ context.Context, id domain.Identity) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *memRepo) Upsert(_ context.Context, rec *model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[domain.Identity(rec.UserID)] = rec
	return nil
}

func (r *memRepo) get(id domain.Identity) *model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

type pdfPrinter struct{}

func (pdfPrinter) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.4 test"), nil
}

type testServer struct {
	app  *fiber.App
	repo *memRepo
}

func newTestServer(t *testing.T, window time.Duration) *testServer {
	t.Helper()
	log := logger.Discard()
	entry := logrus.NewEntry(log)
	repo := &memRepo{rows: map[domain.Identity]*model.Record{}}
	mgr := usecase.NewManager(usecase.SessionDeps{
		Repo:     repo,
		Exporter: usecase.NewExporter(pdfPrinter{}, nil, entry),
		Autosave: usecase.AutosaveConfig{Window: window, SignInPath: "/sign-in"},
		Log:      entry,
	})
	t.Cleanup(func() { mgr.CloseAll(context.Background()) })
	h := NewHandler(mgr, auth.NewJWTAuthenticator(testSecret, "", ""))
	return &testServer{app: NewApp(h, log), repo: repo}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (ts *testServer) do(t *testing.T, method, path, tok, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func (ts *testServer) start(t *testing.T, tok string) sessionState {
	t.Helper()
	code, body := ts.do(t, "POST", "/api/v1/sessions", tok, "")
	require.Equal(t, fiber.StatusCreated, code, string(body))
	return decode[sessionState](t, body)
}

func TestHealthy(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	code, body := ts.do(t, "GET", "/check/healthy", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"result":"ok"}`, string(body))
}

func TestStartSession(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	st := ts.start(t, "")
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, 1, st.Step.Number)
	assert.Equal(t, 6, st.TotalSteps)
	assert.True(t, st.IsFirst)
	assert.False(t, st.Authenticated)
	assert.Len(t, st.Checks, 6)

	st = ts.start(t, token(t, "user-1"))
	assert.True(t, st.Authenticated)

	code, body := ts.do(t, "POST", "/api/v1/sessions", "garbage", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", string(decode[apiError](t, body).Code))
}

func TestStartSessionHydrates(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	ts.repo.rows["user-1"] = model.NewRecord("user-1", domain.ResumeDocument{
		PersonalInfo: domain.PersonalInfo{FullName: "Ada"},
	}, time.Now())
	tok := token(t, "user-1")

	st := ts.start(t, tok)
	code, body := ts.do(t, "GET", "/api/v1/sessions/"+st.ID+"/document", tok, "")
	require.Equal(t, fiber.StatusOK, code)
	doc := decode[domain.ResumeDocument](t, body)
	assert.Equal(t, "Ada", doc.PersonalInfo.FullName)
}

func TestNavigation(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	id := ts.start(t, "").ID

	code, body := ts.do(t, "POST", "/api/v1/sessions/"+id+"/previous", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, 1, decode[sessionState](t, body).Step.Number)

	ts.do(t, "POST", "/api/v1/sessions/"+id+"/next", "", "")
	_, body = ts.do(t, "POST", "/api/v1/sessions/"+id+"/next", "", "")
	st := decode[sessionState](t, body)
	assert.Equal(t, 3, st.Step.Number)
	assert.Equal(t, 50, st.Percent)

	_, body = ts.do(t, "GET", "/api/v1/sessions/"+id+"/form", "", "")
	form := decode[usecase.Form](t, body)
	assert.Equal(t, domain.SliceExperience, form.Slice)
}

func TestEditingEntities(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	base := "/api/v1/sessions/" + ts.start(t, "").ID

	code, body := ts.do(t, "POST", base+"/experience", "", "")
	require.Equal(t, fiber.StatusCreated, code, string(body))
	eid := decode[map[string]string](t, body)["id"]
	require.NotEmpty(t, eid)

	code, body = ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"company","value":"Acme"}`)
	require.Equal(t, fiber.StatusOK, code, string(body))
	assert.JSONEq(t, `{"updated":true}`, string(body))

	ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"position","value":"Engineer"}`)
	ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"startDate","value":"2020-01"}`)
	code, _ = ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"current","value":true}`)
	require.Equal(t, fiber.StatusOK, code)

	_, body = ts.do(t, "PATCH", base+"/experience/missing", "", `{"field":"company","value":"X"}`)
	assert.JSONEq(t, `{"updated":false}`, string(body))

	code, _ = ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"current","value":"yes"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"field":"salary","value":"1"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	code, _ = ts.do(t, "PATCH", base+"/experience/"+eid, "", `{"value":"1"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	code, _ = ts.do(t, "POST", base+"/hobbies", "", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	_, body = ts.do(t, "GET", base+"/preview", "", "")
	var preview struct {
		Experience []struct {
			Position string `json:"position"`
			Company  string `json:"company"`
			Dates    string `json:"dates"`
		} `json:"experience"`
		Education []any `json:"education"`
	}
	require.NoError(t, json.Unmarshal(body, &preview))
	require.Len(t, preview.Experience, 1)
	assert.Equal(t, "Engineer", preview.Experience[0].Position)
	assert.Equal(t, "Acme", preview.Experience[0].Company)
	assert.Equal(t, "Jan 2020 - Present", preview.Experience[0].Dates)
	assert.Nil(t, preview.Education)

	_, body = ts.do(t, "DELETE", base+"/experience/missing", "", "")
	assert.JSONEq(t, `{"removed":false}`, string(body))
	_, body = ts.do(t, "DELETE", base+"/experience/"+eid, "", "")
	assert.JSONEq(t, `{"removed":true}`, string(body))
}

func TestPersonalInfoAndHTMLPreview(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	base := "/api/v1/sessions/" + ts.start(t, "").ID

	code, body := ts.do(t, "PUT", base+"/personal-info", "", `{"field":"fullName","value":"Ada Lovelace"}`)
	require.Equal(t, fiber.StatusOK, code, string(body))
	assert.Equal(t, "Ada Lovelace", decode[domain.PersonalInfo](t, body).FullName)

	code, body = ts.do(t, "GET", base+"/preview?format=html", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body), "<h1>Ada Lovelace</h1>")
}

func TestAnonymousSaveRedirectsOnce(t *testing.T) {
	ts := newTestServer(t, 20*time.Millisecond)
	st := ts.start(t, "")
	base := "/api/v1/sessions/" + st.ID

	ts.do(t, "PUT", base+"/personal-info", "", `{"field":"email","value":"a@b.c"}`)

	require.Eventually(t, func() bool {
		_, body := ts.do(t, "GET", base, "", "")
		return decode[sessionState](t, body).Redirect == "/sign-in"
	}, time.Second, 10*time.Millisecond)

	_, body := ts.do(t, "GET", base, "", "")
	assert.Empty(t, decode[sessionState](t, body).Redirect)
}

func TestSignedInSaveAndEnd(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	tok := token(t, "user-9")
	st := ts.start(t, tok)
	base := "/api/v1/sessions/" + st.ID

	ts.do(t, "POST", base+"/skills", tok, "")
	code, _ := ts.do(t, "DELETE", base, tok, "")
	require.Equal(t, fiber.StatusNoContent, code)

	rec := ts.repo.get("user-9")
	require.NotNil(t, rec)
	require.Len(t, rec.Skills, 1)
	assert.Equal(t, domain.LevelIntermediate, rec.Skills[0].Level)

	code, body := ts.do(t, "GET", base, tok, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", string(decode[apiError](t, body).Code))
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, time.Hour)
	base := "/api/v1/sessions/" + ts.start(t, "").ID

	req := httptest.NewRequest("POST", base+"/export", nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4 test", string(b))
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	req := httptest.NewRequest("GET", "/check/healthy", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-Id"))

	resp, err = ts.app.Test(httptest.NewRequest("GET", "/check/healthy", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
