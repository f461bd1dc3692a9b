package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwebster45206/school-maze/pkg/aqi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = aqi.Location{City: "Utrecht", Region: "Utrecht", Country: "Netherlands"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewAirVisualService(t *testing.T) {
	s := NewAirVisualService("key", "", discardLogger())
	assert.Equal(t, DefaultAirVisualBaseURL, s.baseURL)
	assert.NotNil(t, s.httpClient)
	assert.Equal(t, airVisualTimeout, s.httpClient.Timeout)

	s = NewAirVisualService("key", "http://example.test/v2/", discardLogger())
	assert.Equal(t, "http://example.test/v2", s.baseURL)
}

func TestAirVisualService_FetchAQI(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"status":"success","data":{"city":"Utrecht","current":{"pollution":{"aqius":42,"mainus":"p2"}}}}`,
			want:   42,
		},
		{
			name:    "api failure status",
			status:  http.StatusOK,
			body:    `{"status":"fail","data":{"message":"city_not_found"}}`,
			wantErr: true,
		},
		{
			name:    "http error",
			status:  http.StatusTooManyRequests,
			body:    `{"status":"fail","data":{"message":"call_limit_reached"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v2/city", r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "Utrecht", q.Get("city"))
				assert.Equal(t, "Utrecht", q.Get("state"))
				assert.Equal(t, "Netherlands", q.Get("country"))
				assert.Equal(t, "secret", q.Get("key"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s := NewAirVisualService("secret", srv.URL+"/v2", discardLogger())
			got, err := s.FetchAQI(context.Background(), testLoc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, aqi.ErrUnavailable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAirVisualService_NoKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := NewAirVisualService("", srv.URL, discardLogger())
	_, err := s.FetchAQI(context.Background(), testLoc)
	assert.ErrorIs(t, err, aqi.ErrUnavailable)
	assert.False(t, called)
}

func TestAirVisualService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewAirVisualService("secret", url, discardLogger())
	_, err := s.FetchAQI(context.Background(), testLoc)
	assert.ErrorIs(t, err, aqi.ErrUnavailable)
}

func TestMockAirQuality(t *testing.T) {
	m := NewMockAirQuality(77)
	got, err := m.FetchAQI(context.Background(), testLoc)
	require.NoError(t, err)
	assert.Equal(t, 77, got)

	m.Err = aqi.ErrUnavailable
	_, err = m.FetchAQI(context.Background(), testLoc)
	assert.ErrorIs(t, err, aqi.ErrUnavailable)
	assert.Equal(t, []aqi.Location{testLoc, testLoc}, m.Queried)
}
