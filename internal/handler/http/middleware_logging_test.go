package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/escrow-api/internal/logger"
)

// makeRequest creates a test request whose context carries a logger writing
// to buf, the same way withTraceID does.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf).With().Timestamp().Logger()
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "GET 200",
			method:          http.MethodGet,
			path:            "/api/jobs?page=2",
			handlerStatus:   http.StatusOK,
			handlerResponse: `{"jobs":[]}`,
			checkLogContains: []string{
				`"level":"info"`,
				`"method":"GET"`,
				`"uri":"/api/jobs?page=2"`,
				`"status":200`,
				`"duration":`,
				`"size":11`,
			},
		},
		{
			name:            "POST 201",
			method:          http.MethodPost,
			path:            "/api/jobs",
			handlerStatus:   http.StatusCreated,
			handlerResponse: "Created",
			checkLogContains: []string{
				`"method":"POST"`,
				`"status":201`,
				`"size":7`,
			},
		},
		{
			name:          "handler writes nothing",
			method:        http.MethodDelete,
			path:          "/api/jobs/1",
			handlerStatus: 0,
			checkLogContains: []string{
				`"status":200`,
				`"size":0`,
			},
		},
		{
			name:            "5xx is logged as error",
			method:          http.MethodGet,
			path:            "/api/user/profile",
			handlerStatus:   http.StatusInternalServerError,
			handlerResponse: `{"message":"Internal Server Error"}`,
			checkLogContains: []string{
				`"level":"error"`,
				`"status":500`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.handlerStatus != 0 {
					w.WriteHeader(tt.handlerStatus)
				}
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			rr := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rr, makeRequest(tt.method, tt.path, &buf))

			logged := buf.String()
			for _, want := range tt.checkLogContains {
				assert.Contains(t, logged, want)
			}
		})
	}
}

func TestWithLogging_ResponsePassesThrough(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{}`))
	})

	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, makeRequest(http.MethodGet, "/api/health", &buf))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{}`, rr.Body.String())
}
