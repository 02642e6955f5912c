package ui

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tabview/app"
)

const fixture = "region,amt\nA,10\nB,20\nA,30\n"

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(app.NewViewerService(), 1<<20)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()
	return &body, w.FormDataContentType()
}

// uploadSession uploads the fixture and returns the session path
func uploadSession(t *testing.T, a *App) string {
	t.Helper()
	body, contentType := multipartUpload(t, "sales.csv", fixture)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d, want 303", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/sessions/") {
		t.Fatalf("redirect = %q, want a session path", location)
	}
	return location
}

func TestIndexRenders(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Load a dataset") {
		t.Error("index should render the upload form")
	}
}

func TestUploadAndViewSession(t *testing.T) {
	a := newTestApp(t)
	path := uploadSession(t, a)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("session page status = %d", rec.Code)
	}
	page := rec.Body.String()
	for _, want := range []string{"sales.csv", "region", "amt", "3 of 3 rows"} {
		if !strings.Contains(page, want) {
			t.Errorf("session page missing %q", want)
		}
	}
}

func TestUploadRejectsUnparseable(t *testing.T) {
	a := newTestApp(t)
	body, contentType := multipartUpload(t, "bad.csv", "a,b\n\"broken\n")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect back to the upload form", rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "error=") {
		t.Errorf("redirect %q should carry the error message", location)
	}
}

func TestUpdateParamsFiltersView(t *testing.T) {
	a := newTestApp(t)
	path := uploadSession(t, a)

	form := url.Values{
		"sort_column": {"amt"},
		"sort_dir":    {"desc"},
		"cat_region":  {"A"},
		"metric":      {"amt"},
	}
	req := httptest.NewRequest(http.MethodPost, path+"/params", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("params status = %d, want 303", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	page := rec.Body.String()
	if !strings.Contains(page, "2 of 3 rows") {
		t.Errorf("filtered page should show 2 of 3 rows")
	}
	if strings.Contains(page, "<td>B</td>") {
		t.Errorf("region B should be filtered out")
	}
}

func TestExportCSVDownload(t *testing.T) {
	a := newTestApp(t)
	path := uploadSession(t, a)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"/export.csv", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content type = %q, want text/csv", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "filtered_export.csv") {
		t.Errorf("disposition = %q, want filtered_export.csv", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("download must be BOM-prefixed")
	}
}

func TestSessionExpiredRedirects(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/ghost", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to the upload form", rec.Code)
	}
}

func TestHelpPageRenders(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/help", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Error("help markdown should render to HTML")
	}
}
