package postcards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimGeocoderResolve(t *testing.T) {
	t.Run("resolves first match", func(t *testing.T) {
		var gotQuery, gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotAgent = r.Header.Get("User-Agent")
			if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "1" {
				t.Errorf("unexpected query params: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`[{"lat": "48.8566", "lon": "2.3522"}]`))
		}))
		defer srv.Close()

		g := NewNominatimGeocoder(srv.URL, "test-agent", 0, time.Second)
		point, err := g.Resolve(context.Background(), "Paris", "France")
		if err != nil {
			t.Fatal(err)
		}
		if point.Lat != 48.8566 || point.Lon != 2.3522 {
			t.Errorf("expected Paris coordinates, got %+v", point)
		}
		if gotQuery != "Paris, France" {
			t.Errorf("expected query %q, got %q", "Paris, France", gotQuery)
		}
		if gotAgent != "test-agent" {
			t.Errorf("expected custom user agent, got %q", gotAgent)
		}
	})

	t.Run("no match is a NotFoundError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		g := NewNominatimGeocoder(srv.URL, "test-agent", 0, time.Second)
		_, err := g.Resolve(context.Background(), "Atlantis", "Nowhere")
		nf, ok := err.(NotFoundError)
		if !ok {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nf.City != "Atlantis" || nf.Country != "Nowhere" {
			t.Errorf("expected place echoed back, got %+v", nf)
		}
		want := "Could not find coordinates for Atlantis, Nowhere"
		if nf.Error() != want {
			t.Errorf("expected %q, got %q", want, nf.Error())
		}
	})

	t.Run("upstream failure is an ExternalError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		g := NewNominatimGeocoder(srv.URL, "test-agent", 0, time.Second)
		_, err := g.Resolve(context.Background(), "Paris", "France")
		if _, ok := err.(ExternalError); !ok {
			t.Fatalf("expected ExternalError, got %v", err)
		}
	})

	t.Run("garbage response is an ExternalError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()

		g := NewNominatimGeocoder(srv.URL, "test-agent", 0, time.Second)
		_, err := g.Resolve(context.Background(), "Paris", "France")
		if _, ok := err.(ExternalError); !ok {
			t.Fatalf("expected ExternalError, got %v", err)
		}
	})
}
