package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"otoran/internal/logger"

	"github.com/gorilla/mux"
)

func TestAttach(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"matched route", http.MethodGet, "/homepage/", http.StatusOK},
		{"unknown route", http.MethodGet, "/nothing/here", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/homepage/", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: "info", Output: &buf})

			var scoped *logger.Logger
			router := mux.NewRouter()
			router.HandleFunc("/homepage/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}).Methods("GET")
			router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				scoped = logger.FromContext(r.Context(), nil)
				w.WriteHeader(http.StatusNotFound)
			})

			Attach(router, AccessLog(log, time.Minute))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %v, want %v", w.Code, tt.status)
			}
			if w.Header().Get(RequestIDHeader) == "" {
				t.Error("response should carry a request id")
			}
			if !strings.Contains(buf.String(), tt.method+" "+tt.path) {
				t.Errorf("access log should contain %q, got %q", tt.method+" "+tt.path, buf.String())
			}
			if tt.status == http.StatusNotFound && scoped == nil {
				t.Error("not found handler should receive a request scoped logger")
			}
		})
	}
}
