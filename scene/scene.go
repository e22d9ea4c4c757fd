// Package scene defines the declarative scene description handed to the
// external rendering engine.
//
// The types model a Vega-Lite flavored grammar: specs carry inline data,
// marks, encodings and selection parameters, and compose through layer,
// vconcat and hconcat nodes. The package only describes the scene; drawing
// is entirely the renderer's concern.
package scene

// SchemaURL identifies the grammar version the emitted scene targets.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is one scene node. A node either carries a mark and encoding of its
// own or composes child nodes via Layer, VConcat or HConcat.
type Spec struct {
	Schema    string         `json:"$schema,omitempty"`
	Title     *Title         `json:"title,omitempty"`
	Width     int            `json:"width,omitempty"`
	Height    int            `json:"height,omitempty"`
	Data      *Data          `json:"data,omitempty"`
	Transform []Transform    `json:"transform,omitempty"`
	Params    []*Param       `json:"params,omitempty"`
	Mark      *Mark          `json:"mark,omitempty"`
	Encoding  *Encoding      `json:"encoding,omitempty"`
	Layer     []*Spec        `json:"layer,omitempty"`
	VConcat   []*Spec        `json:"vconcat,omitempty"`
	HConcat   []*Spec        `json:"hconcat,omitempty"`
	Spacing   int            `json:"spacing,omitempty"`
	Resolve   *Resolve       `json:"resolve,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
}

// New returns a top-level spec carrying the schema reference.
func New() *Spec {
	return &Spec{Schema: SchemaURL}
}

// Title is a chart or panel title.
type Title struct {
	Text             string `json:"text"`
	Subtitle         string `json:"subtitle,omitempty"`
	FontSize         int    `json:"fontSize,omitempty"`
	FontWeight       int    `json:"fontWeight,omitempty"`
	SubtitleColor    string `json:"subtitleColor,omitempty"`
	SubtitleFontSize int    `json:"subtitleFontSize,omitempty"`
	Anchor           string `json:"anchor,omitempty"`
}

// Data carries inline values bound to a node and its children.
type Data struct {
	Values any `json:"values"`
}

// Mark describes the visual mark a node draws.
type Mark struct {
	Type        string  `json:"type"`
	Filled      *bool   `json:"filled,omitempty"`
	Size        float64 `json:"size,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Color       string  `json:"color,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	Interpolate string  `json:"interpolate,omitempty"`
	Baseline    string  `json:"baseline,omitempty"`
	DY          int     `json:"dy,omitempty"`
	FontSize    int     `json:"fontSize,omitempty"`
}

// Encoding maps data fields onto visual channels.
type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	X2      *Channel  `json:"x2,omitempty"`
	Y2      *Channel  `json:"y2,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Opacity *Channel  `json:"opacity,omitempty"`
	Text    *Channel  `json:"text,omitempty"`
	Detail  *Channel  `json:"detail,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel is a single encoding channel: either a field reference (Field,
// Type, optional Aggregate) or a constant (Value), optionally guarded by a
// selection Condition with Value as the fallback.
type Channel struct {
	Field     string     `json:"field,omitempty"`
	Type      string     `json:"type,omitempty"`
	Aggregate string     `json:"aggregate,omitempty"`
	Value     any        `json:"value,omitempty"`
	Title     any        `json:"title,omitempty"`
	Format    string     `json:"format,omitempty"`
	Axis      *Axis      `json:"axis,omitempty"`
	Scale     *Scale     `json:"scale,omitempty"`
	Sort      *Sort      `json:"sort,omitempty"`
	Legend    any        `json:"legend,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// Condition makes a channel value depend on a selection parameter.
type Condition struct {
	Param string `json:"param,omitempty"`
	Test  string `json:"test,omitempty"`
	Empty *bool  `json:"empty,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Axis configures an axis. A nil Axis means renderer defaults; set fields
// explicitly (including Null for the title) to override.
type Axis struct {
	Title      any    `json:"title,omitempty"`
	Orient     string `json:"orient,omitempty"`
	Labels     *bool  `json:"labels,omitempty"`
	Ticks      *bool  `json:"ticks,omitempty"`
	Grid       *bool  `json:"grid,omitempty"`
	Domain     *bool  `json:"domain,omitempty"`
	TickCount  int    `json:"tickCount,omitempty"`
	LabelSize  int    `json:"labelFontSize,omitempty"`
	TitleColor string `json:"titleColor,omitempty"`
}

// Scale configures a channel scale.
type Scale struct {
	Domain any      `json:"domain,omitempty"`
	Range  []string `json:"range,omitempty"`
	Scheme string   `json:"scheme,omitempty"`
}

// Sort fixes the order of a categorical axis by a data field. Panels that
// encode the same category must share one Sort value so their columns align.
type Sort struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Param declares a selection parameter. Parameters with the same name are
// one shared selection: interacting with it in any panel affects all panels
// that reference it.
type Param struct {
	Name   string  `json:"name"`
	Select *Select `json:"select,omitempty"`
	Bind   string  `json:"bind,omitempty"`
	Value  any     `json:"value,omitempty"`
}

// Select describes what a selection parameter selects and what triggers it.
type Select struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields,omitempty"`
	On     string   `json:"on,omitempty"`
}

// Transform is a data transform applied before encoding.
type Transform struct {
	Filter    any      `json:"filter,omitempty"`
	Calculate string   `json:"calculate,omitempty"`
	As        any      `json:"as,omitempty"`
	Density   string   `json:"density,omitempty"`
	GroupBy   []string `json:"groupby,omitempty"`
}

// Resolve controls scale sharing between sibling nodes.
type Resolve struct {
	Scale map[string]string `json:"scale,omitempty"`
}

// Null marshals to a JSON null. Use it where an explicit null disables a
// renderer default (e.g. Axis.Title) and omission would keep it.
var Null nullValue

type nullValue struct{}

// MarshalJSON emits a JSON null.
func (nullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// True and False are convenience pointers for optional bool fields.
var (
	True  = boolPtr(true)
	False = boolPtr(false)
)

func boolPtr(b bool) *bool { return &b }
