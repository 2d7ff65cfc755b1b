package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/geojsonprofil/profil/internal/pkg/metrics"
)

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	metrics.ConversionsTotal.WithLabelValues("success", "").Inc()

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	out := string(body)

	for _, want := range []string{
		`profil_http_requests_total{method="GET",path="/ping",status="200"}`,
		`profil_conversion_total{result="success",stage=""}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestConversionCounter(t *testing.T) {
	before := testutil.ToFloat64(metrics.ConversionsTotal.WithLabelValues("failure", "decode"))
	metrics.ConversionsTotal.WithLabelValues("failure", "decode").Inc()
	after := testutil.ToFloat64(metrics.ConversionsTotal.WithLabelValues("failure", "decode"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, got %v", after-before)
	}
}
