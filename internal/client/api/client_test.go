package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unioncup/contestdesk/internal/client/models"
	"github.com/unioncup/contestdesk/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, StaticToken(token), testLogger())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, "tok-1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := c.Groups.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var present bool
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})

	_, err := c.Groups.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, present)
}

func TestClient_ErrorEnvelopeMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"token expired"}`, ErrUnauthorized, "token expired"},
		{"forbidden", http.StatusForbidden, `{"message":"judges only"}`, ErrUnauthorized, "judges only"},
		{"not found", http.StatusNotFound, `{"detail":"no such participant"}`, ErrNotFound, "no such participant"},
		{"server error", http.StatusInternalServerError, `{"message":"db down"}`, ErrUnavailable, "db down"},
		{"bad request without body", http.StatusBadRequest, ``, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Participants.Get(context.Background(), 1)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestClient_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL, time.Second, StaticToken(""), testLogger())

	_, err := c.Groups.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_MalformedJSONIsError(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	})

	_, err := c.Participants.List(context.Background(), models.ParticipantQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_QueryParameters(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[],"total":0,"page":2,"size":10,"pages":0}`))
	})

	groupID := 5
	checked := true
	_, err := c.Participants.List(context.Background(), models.ParticipantQuery{
		Page: 2, Size: 10, GroupID: &groupID, IsCheckedIn: &checked, Search: "li",
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "size=10")
	assert.Contains(t, gotQuery, "group_id=5")
	assert.Contains(t, gotQuery, "is_checked_in=true")
	assert.Contains(t, gotQuery, "search=li")
}

func TestClient_UploadSendsMultipart(t *testing.T) {
	var gotContentType, gotFilename string
	var gotData []byte
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotData, _ = io.ReadAll(file)
		w.Write([]byte(`{"filename":"p.jpg","path":"/photos/p.jpg","size":3,"url":""}`))
	})

	resp, err := c.Participants.UploadPhoto(context.Background(), 1, "p.jpg", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "p.jpg", gotFilename)
	assert.Equal(t, []byte{1, 2, 3}, gotData)
	assert.Equal(t, "p.jpg", resp.Filename)
}

func TestClient_DownloadFilenameFromHeader(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
		w.Write([]byte("excel-bytes"))
	})

	report, err := c.Statistics.ExportReport(context.Background(), models.ReportRequest{
		ReportType: "overview", Format: "excel",
	})
	require.NoError(t, err)
	assert.Equal(t, "report.xlsx", report.Filename)
	assert.Equal(t, []byte("excel-bytes"), report.Data)
}

func TestClient_DownloadFilenameFallsBackToPath(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("csv"))
	})

	report, err := c.Statistics.ExportReport(context.Background(), models.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "export", report.Filename)
}

func TestClient_ContextCancellation(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Groups.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded))
}

func TestClient_LoginPostsCredentials(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/judges/login", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"alice","password":"pw"}`, string(body))
		w.Write([]byte(`{"success":true,"token":"tok","judge":{"id":1,"name":"Alice","username":"alice","organization":"","is_active":true,"created_at":"","updated_at":""},"role":"admin"}`))
	})

	resp, err := c.Judges.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "admin", resp.Role)
}

// captureLogger records debug messages so request logging can be asserted.
type captureLogger struct {
	mu     sync.Mutex
	debugs []string
}

func (l *captureLogger) Debug(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, msg)
}

func (l *captureLogger) Info(context.Context, string, ...any)  {}
func (l *captureLogger) Warn(context.Context, string, ...any)  {}
func (l *captureLogger) Error(context.Context, string, ...any) {}
func (l *captureLogger) With(...any) logging.Logger            { return l }

func TestClient_DebugLogsEachRequest(t *testing.T) {
	log := &captureLogger{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, 5*time.Second, StaticToken(""), log)

	_, err := c.Groups.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"api request"}, log.debugs)
}
