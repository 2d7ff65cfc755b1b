package http

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/geojsonprofil/profil/internal/core/domain"
	"github.com/geojsonprofil/profil/internal/core/usecases"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Images shown on the upload page.
//
//go:embed templates/static
var staticFS embed.FS

// StaticHandler serves the page images under /static.
func StaticHandler() fiber.Handler {
	return filesystem.New(filesystem.Config{
		Root:       nethttp.FS(staticFS),
		PathPrefix: "templates/static",
		Browse:     false,
	})
}

// pageData feeds the upload form template.
type pageData struct {
	Error       string
	Success     bool
	Points      int
	Length      float64
	ZMin        int
	ZMax        int
	Gridlines   int
	DownloadURI template.URL
	Filename    string
	Layers      []string
}

func newPageData(filename string) pageData {
	return pageData{
		Filename: filename,
		Layers:   domain.Layers(),
	}
}

// withResult fills in the download button for a finished conversion.
func (p pageData) withResult(res *usecases.ConversionResult) pageData {
	p.Success = true
	p.Points = res.Event.Points
	p.Length = res.Event.Length
	p.ZMin = res.Event.ZMin
	p.ZMax = res.Event.ZMax
	p.Gridlines = res.Event.Gridlines
	p.Filename = res.Filename
	p.DownloadURI = template.URL("data:" + res.ContentType + ";base64," + base64.StdEncoding.EncodeToString(res.Data))
	return p
}

func renderPage(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return errInternal(c, "render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
