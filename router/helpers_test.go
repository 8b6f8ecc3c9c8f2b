package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/api"
	"github.com/sahilchouksey/online-lms/database/dbtest"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/router"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/services/storage/storagetest"
	"github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"github.com/sahilchouksey/online-lms/utils/middleware"
	"gorm.io/gorm"
)

const testOrigin = "http://localhost:5173"

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	files *storagetest.Fake
	jwt   *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := dbtest.New(t)
	files := storagetest.New()
	log := logger.Nop()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:   "0123456789abcdef0123456789abcdef",
		Issuer:   "online-lms-api",
		Audience: "online-lms-frontend",
		Expiry:   time.Hour,
	})

	server := api.NewAPIServer(":0", 200*1024*1024, log)
	router.SetupRoutes(server.GetEngine(), router.Dependencies{
		Store:      store,
		Services:   services.New(store, files, log),
		JWTManager: jwtManager,
		Revoker:    auth.NewMemoryRevoker(),
		Security:   middleware.SecurityConfig{AllowedOrigin: testOrigin},
		Log:        log,
	})

	return &testEnv{app: server.GetEngine(), db: store.GetDB(), files: files, jwt: jwtManager}
}

// user inserts a user with a fixed id and returns a bearer token for it
func (e *testEnv) user(t *testing.T, id uint, role model.Role) string {
	t.Helper()
	u := &model.User{
		ID:           id,
		FirstName:    fmt.Sprintf("user%d", id),
		Email:        fmt.Sprintf("user%d@lms.test", id),
		Username:     fmt.Sprintf("user%d", id),
		PasswordHash: "not-a-hash",
		Role:         role,
	}
	e.create(t, u)
	token, _, _, err := e.jwt.GenerateAccessToken(id, role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func (e *testEnv) create(t *testing.T, v interface{}) {
	t.Helper()
	if err := e.db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", req.Method, req.URL.Path, raw, err)
		}
	}
	return resp.StatusCode, env
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(f.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
}
