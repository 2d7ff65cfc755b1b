package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/geojsonprofil/profil/internal/adapters/dxf"
	"github.com/geojsonprofil/profil/internal/adapters/geojson"
	"github.com/geojsonprofil/profil/internal/core/usecases"
	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
	"github.com/geojsonprofil/profil/internal/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.SetupWriter(os.Stderr, os.Getenv("PROFIL_LOG_LEVEL"), "text")

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("convert: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	in := fs.StringP("in", "i", "", "GeoJSON profile exported from polska.e-mapa.net")
	out := fs.StringP("out", "o", "profil.dxf", "destination DXF file")
	model := fs.StringP("model", "m", geospatial.ModelWGS84, "distance model: wgs84 or sphere")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("usage: convert --in profil.geojson [--out profil.dxf] [--model wgs84|sphere]")
	}

	distance, err := geospatial.ParseModel(*model)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts := usecases.DefaultProfileOptions()
	opts.Distance = distance
	opts.Filename = filepath.Base(*out)
	svc := usecases.NewProfileService(geojson.Decoder{}, dxf.Format{}, nil, opts)

	res, err := svc.Convert(ctx, raw)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(*out, res.Data); err != nil {
		return err
	}

	sum, err := dxf.SummarizeBytes(res.Data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "OK  %s  %s  points=%d length=%.2fm z=%d..%d gridlines=%d\n",
		*out, sum.Version, res.Event.Points, res.Event.Length, res.Event.ZMin, res.Event.ZMax, res.Event.Gridlines)
	return nil
}

// writeFileAtomic stages data next to path and renames it into place, so a
// failed run never leaves a partial drawing behind.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profil-*.dxf")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
