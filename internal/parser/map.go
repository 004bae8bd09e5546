package parser

import (
	"regexp"
	"strconv"
	"strings"

	"map2vmf/internal/mapdoc"
)

// EmptyTextureSentinel is the placeholder TrenchBroom writes on faces that
// were never assigned a texture. It is replaced with the configured default
// during parsing.
const EmptyTextureSentinel = "__TB_empty"

// parseState tracks where in the map document the line loop currently is.
type parseState int

const (
	// stateAwaitingWorldspawnOrBrushOpen is the initial state, before the
	// worldspawn block has been entered.
	stateAwaitingWorldspawnOrBrushOpen parseState = iota
	// stateOutside is between top-level blocks after worldspawn closed.
	stateOutside
	// stateInWorldspawn collects "key" "value" property lines.
	stateInWorldspawn
	// stateAwaitingBrushOpen follows a "// brush" marker; every line until
	// the opening brace is inert.
	stateAwaitingBrushOpen
	// stateInBrush collects face lines until brace depth returns to zero.
	stateInBrush
)

// propertyPattern matches a quoted key/value pair on a worldspawn line.
var propertyPattern = regexp.MustCompile(`^"([^"]+)"\s+"([^"]*)"`)

// facePattern matches one face line: three parenthesized plane points, a
// material token, two bracketed texture axes, then rotation and the two
// integer scales. Trailing text after the scales is tolerated.
var facePattern = regexp.MustCompile(
	`^\(\s*([^)]+)\s*\)\s*\(\s*([^)]+)\s*\)\s*\(\s*([^)]+)\s*\)` +
		`\s+(\S+)\s+\[([^\]]+)\]\s+\[([^\]]+)\]\s+(\d+)\s+(\d+)\s+(\d+)`)

// MapParser parses TrenchBroom-style .map text into a mapdoc.Document.
// Construct one per conversion; it keeps no state between calls to Parse.
type MapParser struct {
	defaultTexture string
}

// NewMapParser creates a parser that substitutes defaultTexture for the
// empty-texture sentinel.
func NewMapParser(defaultTexture string) *MapParser {
	return &MapParser{defaultTexture: defaultTexture}
}

// Parse runs a single forward pass over the map text and returns the
// document plus parse statistics. Malformed or unrecognized lines are
// skipped without error; a brush still open at end of input is discarded.
func (p *MapParser) Parse(content string) (*mapdoc.Document, mapdoc.Stats) {
	doc := mapdoc.NewDocument()
	var stats mapdoc.Stats

	state := stateAwaitingWorldspawnOrBrushOpen
	var current *mapdoc.Brush
	braceDepth := 0

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		// A brush marker takes over from any state. If a brush was still
		// open it is abandoned, never appended.
		if strings.HasPrefix(line, "// brush") {
			state = stateAwaitingBrushOpen
			current = nil
			stats.BrushesFound++
			continue
		}

		switch state {
		case stateAwaitingWorldspawnOrBrushOpen, stateOutside:
			if line == "{" {
				state = stateInWorldspawn
			}

		case stateInWorldspawn:
			if line == "}" {
				state = stateOutside
				continue
			}
			if strings.HasPrefix(line, `"`) {
				if m := propertyPattern.FindStringSubmatch(line); m != nil {
					doc.Worldspawn.Set(m[1], m[2])
				}
			}

		case stateAwaitingBrushOpen:
			if line == "{" {
				state = stateInBrush
				current = &mapdoc.Brush{}
				braceDepth = 1
			}

		case stateInBrush:
			switch {
			case line == "{":
				braceDepth++
			case line == "}":
				braceDepth--
				if braceDepth == 0 {
					doc.Brushes = append(doc.Brushes, *current)
					current = nil
					state = stateOutside
					stats.BrushesProcessed++
				}
			case strings.HasPrefix(line, "("):
				face, substituted, ok := p.parseFace(line)
				if !ok {
					continue
				}
				current.Faces = append(current.Faces, face)
				stats.FacesProcessed++
				if substituted {
					stats.MaterialReplacements++
				}
			}
		}
	}

	return doc, stats
}

// parseFace matches one face line. Reports whether the sentinel material was
// replaced and whether the line matched at all.
func (p *MapParser) parseFace(line string) (mapdoc.Face, bool, bool) {
	m := facePattern.FindStringSubmatch(line)
	if m == nil {
		return mapdoc.Face{}, false, false
	}

	material := m[4]
	substituted := material == EmptyTextureSentinel
	if substituted {
		material = p.defaultTexture
	}

	// Digits are guaranteed by the pattern.
	rotation, _ := strconv.Atoi(m[7])
	scaleX, _ := strconv.Atoi(m[8])
	scaleY, _ := strconv.Atoi(m[9])

	return mapdoc.Face{
		P1:       strings.TrimSpace(m[1]),
		P2:       strings.TrimSpace(m[2]),
		P3:       strings.TrimSpace(m[3]),
		Material: material,
		UAxis:    strings.TrimSpace(m[5]),
		VAxis:    strings.TrimSpace(m[6]),
		Rotation: rotation,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
	}, substituted, true
}
