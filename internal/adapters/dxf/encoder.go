// Package dxf writes drawings as ASCII DXF (AutoCAD R12, AC1009), readable by
// practically every CAD package.
package dxf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// ContentType is the media type used when serving DXF files.
const ContentType = "application/dxf"

type layerStyle struct {
	color    int
	linetype string
}

// Layer colours use the AutoCAD colour index: 7 white/black, 8 grey.
var layerStyles = map[string]layerStyle{
	"0":                 {color: 7, linetype: domain.LinetypeContinuous},
	domain.LayerProfile: {color: 7, linetype: domain.LinetypeContinuous},
	domain.LayerGrid:    {color: 8, linetype: domain.LinetypeDashed},
	domain.LayerLabels:  {color: 7, linetype: domain.LinetypeContinuous},
}

// Encoder writes DXF documents to an output stream.
type Encoder struct {
	w   *bufio.Writer
	err error
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes d as a complete DXF document.
func (e *Encoder) Encode(d *domain.Drawing) error {
	if d == nil {
		return errors.New("dxf: nil drawing")
	}

	e.header(d)
	e.tables()
	e.entities(d)
	e.pair(0, "EOF")

	if e.err != nil {
		return fmt.Errorf("dxf: write: %w", e.err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("dxf: flush: %w", err)
	}
	return nil
}

// Encode writes d to w.
func Encode(w io.Writer, d *domain.Drawing) error {
	return NewEncoder(w).Encode(d)
}

// Marshal returns the DXF document for d.
func Marshal(d *domain.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) header(d *domain.Drawing) {
	minV, maxV := extents(d)

	e.section("HEADER")
	e.pair(9, "$ACADVER")
	e.pair(1, "AC1009")
	e.pair(9, "$EXTMIN")
	e.point(10, minV)
	e.pair(9, "$EXTMAX")
	e.point(10, maxV)
	e.pair(9, "$LTSCALE")
	e.real(40, 1.0)
	e.endSection()
}

func (e *Encoder) tables() {
	e.section("TABLES")

	e.table("LTYPE", 2)
	e.pair(0, "LTYPE")
	e.pair(2, domain.LinetypeContinuous)
	e.integer(70, 0)
	e.pair(3, "Solid line")
	e.integer(72, 65)
	e.integer(73, 0)
	e.real(40, 0)
	e.pair(0, "LTYPE")
	e.pair(2, domain.LinetypeDashed)
	e.integer(70, 0)
	e.pair(3, "Dashed __ __ __ __")
	e.integer(72, 65)
	e.integer(73, 2)
	e.real(40, 0.75)
	e.real(49, 0.5)
	e.real(49, -0.25)
	e.endTable()

	layers := append([]string{"0"}, domain.Layers()...)
	e.table("LAYER", len(layers))
	for _, name := range layers {
		st := layerStyles[name]
		e.pair(0, "LAYER")
		e.pair(2, name)
		e.integer(70, 0)
		e.integer(62, st.color)
		e.pair(6, st.linetype)
	}
	e.endTable()

	e.table("STYLE", 1)
	e.pair(0, "STYLE")
	e.pair(2, "STANDARD")
	e.integer(70, 0)
	e.real(40, 0)
	e.real(41, 1)
	e.real(50, 0)
	e.integer(71, 0)
	e.real(42, 0.25)
	e.pair(3, "txt")
	e.pair(4, "")
	e.endTable()

	e.endSection()
}

func (e *Encoder) entities(d *domain.Drawing) {
	e.section("ENTITIES")

	if len(d.Profile.Vertices) > 0 {
		layer := d.Profile.Layer
		e.pair(0, "POLYLINE")
		e.pair(8, layer)
		e.integer(66, 1)
		e.point(10, domain.Vertex{})
		e.integer(70, 0)
		for _, v := range d.Profile.Vertices {
			e.pair(0, "VERTEX")
			e.pair(8, layer)
			e.point(10, v)
		}
		e.pair(0, "SEQEND")
		e.pair(8, layer)
	}

	for _, l := range d.Grid {
		e.pair(0, "LINE")
		e.pair(8, l.Layer)
		if l.Linetype != "" {
			e.pair(6, l.Linetype)
		}
		e.point(10, l.Start)
		e.point(11, l.End)
	}

	for _, t := range d.Labels {
		e.pair(0, "TEXT")
		e.pair(8, t.Layer)
		e.point(10, t.Insert)
		e.real(40, t.Height)
		e.pair(1, sanitize(t.Value))
		e.pair(7, "STANDARD")
		if t.Align != domain.AlignLeft {
			e.integer(72, int(t.Align))
			e.point(11, t.Insert)
		}
	}

	e.endSection()
}

func (e *Encoder) section(name string) {
	e.pair(0, "SECTION")
	e.pair(2, name)
}

func (e *Encoder) endSection() { e.pair(0, "ENDSEC") }

func (e *Encoder) table(name string, entries int) {
	e.pair(0, "TABLE")
	e.pair(2, name)
	e.integer(70, entries)
}

func (e *Encoder) endTable() { e.pair(0, "ENDTAB") }

// point writes x/y/z under code, code+10 and code+20.
func (e *Encoder) point(code int, v domain.Vertex) {
	e.real(code, v.X)
	e.real(code+10, v.Y)
	e.real(code+20, 0)
}

func (e *Encoder) real(code int, v float64) {
	e.pair(code, formatFloat(v))
}

func (e *Encoder) integer(code int, v int) {
	e.pair(code, strconv.Itoa(v))
}

func (e *Encoder) pair(code int, value string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "%3d\n%s\n", code, value)
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// sanitize keeps a text value on one line.
func sanitize(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func extents(d *domain.Drawing) (minV, maxV domain.Vertex) {
	minV = domain.Vertex{X: math.Inf(1), Y: math.Inf(1)}
	maxV = domain.Vertex{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(v domain.Vertex) {
		minV.X = math.Min(minV.X, v.X)
		minV.Y = math.Min(minV.Y, v.Y)
		maxV.X = math.Max(maxV.X, v.X)
		maxV.Y = math.Max(maxV.Y, v.Y)
	}
	for _, v := range d.Profile.Vertices {
		grow(v)
	}
	for _, l := range d.Grid {
		grow(l.Start)
		grow(l.End)
	}
	for _, t := range d.Labels {
		grow(t.Insert)
	}
	if math.IsInf(minV.X, 1) {
		return domain.Vertex{}, domain.Vertex{}
	}
	return minV, maxV
}

// Format adapts the encoder to the service's drawing encoder port.
type Format struct{}

func (Format) Encode(w io.Writer, d *domain.Drawing) error { return Encode(w, d) }

func (Format) ContentType() string { return ContentType }
