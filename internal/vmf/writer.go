package vmf

import (
	"fmt"
	"strconv"
	"strings"

	"map2vmf/internal/mapdoc"
)

const (
	// worldID is the fixed id of the single world entity.
	worldID = 0
	// firstSolidID is assigned to the first brush; subsequent brushes
	// count up from it.
	firstSolidID = 1
	// firstSideID starts the side counter, which is shared across the
	// whole document rather than reset per solid.
	firstSideID = 2

	// textureScale is emitted after every uaxis/vaxis regardless of the
	// scales parsed from the source face.
	textureScale = "0.25"
	// lightmapScale is the fixed lightmap resolution for every side.
	lightmapScale = "16"
)

// kv renders one `"key" "value"` property line at the given tab depth.
// Values are written verbatim; the map grammar already excludes embedded
// quotes.
func kv(depth int, key, value string) string {
	return strings.Repeat("\t", depth) + `"` + key + `" "` + value + `"`
}

// Serialize renders the document as VMF text: one world block carrying the
// worldspawn properties in their preserved order, then one solid per brush
// with freshly assigned sequential ids. Lines are joined with a single
// newline and indented one tab per nesting level.
func Serialize(doc *mapdoc.Document) string {
	var lines []string

	lines = append(lines, "world", "{")
	lines = append(lines, kv(1, "id", strconv.Itoa(worldID)))

	for _, key := range doc.Worldspawn.Keys() {
		value, _ := doc.Worldspawn.Get(key)
		lines = append(lines, kv(1, key, value))
	}

	solidID := firstSolidID
	sideID := firstSideID

	for _, brush := range doc.Brushes {
		lines = append(lines, "\tsolid", "\t{")
		lines = append(lines, kv(2, "id", strconv.Itoa(solidID)))

		for _, face := range brush.Faces {
			lines = append(lines, "\t\tside", "\t\t{")
			lines = append(lines, kv(3, "id", strconv.Itoa(sideID)))
			lines = append(lines, kv(3, "plane",
				fmt.Sprintf("(%s) (%s) (%s)", face.P1, face.P2, face.P3)))
			lines = append(lines, kv(3, "material", face.Material))
			lines = append(lines, kv(3, "uaxis", fmt.Sprintf("[%s] %s", face.UAxis, textureScale)))
			lines = append(lines, kv(3, "vaxis", fmt.Sprintf("[%s] %s", face.VAxis, textureScale)))
			lines = append(lines, kv(3, "lightmapscale", lightmapScale))
			lines = append(lines, "\t\t}")
			sideID++
		}

		lines = append(lines, "\t}")
		solidID++
	}

	lines = append(lines, "}")

	return strings.Join(lines, "\n")
}
