package mapdoc

// Face is one planar side of a brush. The three plane points and the texture
// axes are kept as raw strings; the converter never does arithmetic on them.
type Face struct {
	// P1, P2, P3 are the plane-defining coordinate triples, verbatim.
	P1 string
	P2 string
	P3 string
	// Material is the texture path. The __TB_empty sentinel is already
	// replaced by the time a Face exists.
	Material string
	// UAxis and VAxis are the texture-axis strings without their brackets.
	UAxis string
	VAxis string
	// Rotation in degrees.
	Rotation int
	// ScaleX and ScaleY are parsed from the face line but not used when
	// writing VMF output (the writer emits a fixed scale).
	ScaleX int
	ScaleY int
}

// Brush is a solid made of faces. It has no identity of its own; output
// solid ids come from its position in Document.Brushes.
type Brush struct {
	Faces []Face
}

// Document is the in-memory form of one parsed .map file: the worldspawn
// properties plus every brush, in source order. Built in a single pass and
// immutable afterwards.
type Document struct {
	Worldspawn *Properties
	Brushes    []Brush
}

// NewDocument returns an empty document ready for one parse.
func NewDocument() *Document {
	return &Document{Worldspawn: NewProperties()}
}

// Stats summarizes one parse. Returned alongside the Document and reported
// to the user; never persisted.
type Stats struct {
	// BrushesFound counts "// brush" markers seen in the input.
	BrushesFound int
	// BrushesProcessed counts brushes whose brace nesting closed.
	BrushesProcessed int
	// FacesProcessed counts face lines that matched the grammar.
	FacesProcessed int
	// MaterialReplacements counts __TB_empty substitutions.
	MaterialReplacements int
}
