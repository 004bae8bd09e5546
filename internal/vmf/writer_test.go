package vmf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map2vmf/internal/mapdoc"
)

func testFace(material string) mapdoc.Face {
	return mapdoc.Face{
		P1:       "0 0 0",
		P2:       "0 0 1",
		P3:       "0 1 0",
		Material: material,
		UAxis:    "1 0 0 0",
		VAxis:    "0 1 0 0",
		ScaleX:   7,
		ScaleY:   9,
	}
}

func TestSerialize_EmptyDocument(t *testing.T) {
	out := Serialize(mapdoc.NewDocument())

	expected := strings.Join([]string{
		"world",
		"{",
		"\t\"id\" \"0\"",
		"}",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestSerialize_SingleBrush(t *testing.T) {
	doc := mapdoc.NewDocument()
	doc.Brushes = []mapdoc.Brush{{Faces: []mapdoc.Face{testFace("dev/tex")}}}

	out := Serialize(doc)

	expected := strings.Join([]string{
		"world",
		"{",
		"\t\"id\" \"0\"",
		"\tsolid",
		"\t{",
		"\t\t\"id\" \"1\"",
		"\t\tside",
		"\t\t{",
		"\t\t\t\"id\" \"2\"",
		"\t\t\t\"plane\" \"(0 0 0) (0 0 1) (0 1 0)\"",
		"\t\t\t\"material\" \"dev/tex\"",
		"\t\t\t\"uaxis\" \"[1 0 0 0] 0.25\"",
		"\t\t\t\"vaxis\" \"[0 1 0 0] 0.25\"",
		"\t\t\t\"lightmapscale\" \"16\"",
		"\t\t}",
		"\t}",
		"}",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestSerialize_WorldspawnOrderPreserved(t *testing.T) {
	doc := mapdoc.NewDocument()
	doc.Worldspawn.Set("classname", "worldspawn")
	doc.Worldspawn.Set("skyname", "day")
	doc.Worldspawn.Set("mapversion", "220")
	doc.Worldspawn.Set("skyname", "night")

	out := Serialize(doc)
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "\t\"classname\" \"worldspawn\"", lines[3])
	assert.Equal(t, "\t\"skyname\" \"night\"", lines[4])
	assert.Equal(t, "\t\"mapversion\" \"220\"", lines[5])
}

func TestSerialize_SideIDsSharedAcrossSolids(t *testing.T) {
	doc := mapdoc.NewDocument()
	doc.Brushes = []mapdoc.Brush{
		{Faces: []mapdoc.Face{testFace("a"), testFace("b")}},
		{Faces: []mapdoc.Face{testFace("c")}},
	}

	out := Serialize(doc)

	var solidIDs, sideIDs []string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "\t\t\t\"id\" "):
			sideIDs = append(sideIDs, strings.Trim(strings.TrimPrefix(line, "\t\t\t\"id\" "), `"`))
		case strings.HasPrefix(line, "\t\t\"id\" "):
			solidIDs = append(solidIDs, strings.Trim(strings.TrimPrefix(line, "\t\t\"id\" "), `"`))
		}
	}

	assert.Equal(t, []string{"1", "2"}, solidIDs)
	// The side counter is shared across solids, never reset.
	assert.Equal(t, []string{"2", "3", "4"}, sideIDs)
}

func TestSerialize_FixedTextureScaleIgnoresParsedScales(t *testing.T) {
	doc := mapdoc.NewDocument()
	doc.Brushes = []mapdoc.Brush{{Faces: []mapdoc.Face{testFace("dev/tex")}}}

	out := Serialize(doc)

	assert.Contains(t, out, "\"uaxis\" \"[1 0 0 0] 0.25\"")
	assert.Contains(t, out, "\"vaxis\" \"[0 1 0 0] 0.25\"")
	assert.NotContains(t, out, "0.25 7")
	assert.NotContains(t, out, "] 7")
	assert.NotContains(t, out, "] 9")
}

func TestSerialize_EmptyBrushStillEmitted(t *testing.T) {
	doc := mapdoc.NewDocument()
	doc.Brushes = []mapdoc.Brush{{}}

	out := Serialize(doc)

	assert.Contains(t, out, "\tsolid")
	assert.Contains(t, out, "\t\t\"id\" \"1\"")
	assert.NotContains(t, out, "side")
}

func TestSerialize_NoTrailingNewline(t *testing.T) {
	out := Serialize(mapdoc.NewDocument())
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.True(t, strings.HasSuffix(out, "}"))
}
