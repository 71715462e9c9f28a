package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"ponsiv/internal/catalog"
	"ponsiv/internal/http/handlers"
	applog "ponsiv/internal/log"
	"ponsiv/internal/media"
	"ponsiv/internal/repos"
)

type testApp struct {
	t        *testing.T
	app      *fiber.App
	cookies  map[string]string
	token    string
	stateDir string
	mediaDir string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newTestApp wires the real app over a temp state dir and a two-product catalog.
func newTestApp(t *testing.T, cfg handlers.AppConfig) *testApp {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "productos", "ponsiv", "CAMISA", "info.json"),
		`{"nombre":"Camisa","marca":"Ponsiv","precio":20.50,"tallas":["S","L"]}`)
	writeFile(t, filepath.Join(root, "productos", "ponsiv", "CAMISA", "fotos", "1.jpg"), "jpegbytes")
	writeFile(t, filepath.Join(root, "productos", "ponsiv", "GORRA", "info.json"),
		`{"nombre":"Gorra","marca":"Ponsiv","precio":5}`)

	stateDir := t.TempDir()
	st, err := repos.OpenStore(context.Background(), repos.BackendFile, stateDir, "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	products := repos.NewProductRepo(st, catalog.NewLoader(root))
	r := repos.New(st, products, repos.NewPasswordHasher(bcrypt.MinCost))

	mediaDir := t.TempDir()
	cfg.CatalogDir = root
	cfg.MediaDir = mediaDir
	if cfg.RateMax == 0 {
		cfg.RateMax = 1000
	}
	if cfg.LoginMax == 0 {
		cfg.LoginMax = 100
	}
	app := handlers.NewApp(handlers.NewDeps(r, media.NewPhotoStore(mediaDir)), cfg)

	ta := &testApp{t: t, app: app, cookies: map[string]string{}, stateDir: stateDir, mediaDir: mediaDir}
	resp := ta.do("GET", "/api/v1/csrf", nil, "")
	resp.Body.Close()
	ta.token = ta.cookies[handlers.CSRFCookie]
	if ta.token == "" {
		t.Fatal("csrf cookie missing")
	}
	return ta
}

func (a *testApp) do(method, path string, body io.Reader, contentType string) *http.Response {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range a.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	if a.token != "" && method != "GET" && method != "HEAD" {
		req.Header.Set(handlers.CSRFHeader, a.token)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	for _, c := range resp.Cookies() {
		a.cookies[c.Name] = c.Value
	}
	return resp
}

func (a *testApp) json(method, path string, payload any) *http.Response {
	a.t.Helper()
	var body io.Reader
	ct := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			a.t.Fatal(err)
		}
		body, ct = bytes.NewReader(b), fiber.MIMEApplicationJSON
	}
	return a.do(method, path, body, ct)
}

func (a *testApp) signup(email string) {
	a.t.Helper()
	resp := a.json("POST", "/api/v1/auth/signup", map[string]any{
		"email": email, "password": "secret1", "name": "Ana Gomez", "handle": "@ana",
	})
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusCreated {
		a.t.Fatalf("signup %s: status %d body=%s", email, resp.StatusCode, readBody(resp))
	}
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		img.Set(x, 4, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// multipartBody builds a form with text fields and one optional file.
func multipartBody(t *testing.T, fields map[string]string, fileField string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "upload.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

// captureLogs redirects the global logger while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	applog.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	defer applog.SetOutput(os.Stdout)

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func hasAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
