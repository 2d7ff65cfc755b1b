package domain

// Layer and linetype names of the generated drawing. Anything that needs to
// recognise the layers of a produced file refers to these.
const (
	LayerProfile = "PROFIL"
	LayerGrid    = "SIATKA"
	LayerLabels  = "OPISY"

	LinetypeContinuous = "CONTINUOUS"
	LinetypeDashed     = "DASHED"
)

// TextAlign is the horizontal justification of a text entity.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Vertex is a point in drawing space (x = distance, y = elevation).
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polyline is an open connected line through its vertices.
type Polyline struct {
	Layer    string   `json:"layer"`
	Vertices []Vertex `json:"vertices"`
}

// Line is a single straight segment.
type Line struct {
	Layer    string `json:"layer"`
	Linetype string `json:"linetype"`
	Start    Vertex `json:"start"`
	End      Vertex `json:"end"`
}

// Text is a single-line annotation anchored at Insert.
type Text struct {
	Layer  string    `json:"layer"`
	Value  string    `json:"value"`
	Insert Vertex    `json:"insert"`
	Height float64   `json:"height"`
	Align  TextAlign `json:"align"`
}

// Drawing is the in-memory cross-section document: the profile polyline,
// one dashed gridline per whole elevation and one label per gridline.
type Drawing struct {
	Bounds  BoundingRange `json:"bounds"`
	Profile Polyline      `json:"profile"`
	Grid    []Line        `json:"grid"`
	Labels  []Text        `json:"labels"`
}

// Layers returns the layer names of a profile drawing in output order.
func Layers() []string {
	return []string{LayerProfile, LayerGrid, LayerLabels}
}
