package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMap = `{
"classname" "worldspawn"
"mapversion" "220"
// brush 0
{
( 0 0 0 ) ( 0 0 1 ) ( 0 1 0 ) __TB_empty [1 0 0 0] [0 1 0 0] 0 1 1
( 0 0 0 ) ( 1 0 0 ) ( 0 0 1 ) brick/wall [1 0 0 0] [0 0 1 0] 0 1 1
}
}
`

func TestConvert_EndToEnd(t *testing.T) {
	conv := New("dev/tex")

	out, stats, err := conv.Convert(sampleMap)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.BrushesFound)
	assert.Equal(t, 1, stats.BrushesProcessed)
	assert.Equal(t, 2, stats.FacesProcessed)
	assert.Equal(t, 1, stats.MaterialReplacements)

	assert.True(t, strings.HasPrefix(out, "world\n{\n"))
	assert.Contains(t, out, "\t\"classname\" \"worldspawn\"")
	assert.Contains(t, out, "\t\t\t\"material\" \"dev/tex\"")
	assert.Contains(t, out, "\t\t\t\"material\" \"brick/wall\"")
}

func TestConvert_EmptyInput(t *testing.T) {
	out, stats, err := New("dev/tex").Convert("")
	require.NoError(t, err)

	assert.Zero(t, stats.BrushesFound)
	assert.Equal(t, "world\n{\n\t\"id\" \"0\"\n}", out)
}

func TestConvertFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "level.map")
	out := filepath.Join(dir, "out", "level.vmf")
	require.NoError(t, os.WriteFile(in, []byte(sampleMap), 0644))

	report, err := New("dev/tex").ConvertFile(in, out)
	require.NoError(t, err)

	assert.Equal(t, in, report.InputPath)
	assert.Equal(t, out, report.OutputPath)
	assert.Equal(t, "dev/tex", report.DefaultTexture)
	assert.Equal(t, 1, report.Stats.BrushesProcessed)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, written, report.OutputSize)
	assert.Contains(t, string(written), "\"material\" \"dev/tex\"")
}

func TestConvertFile_MissingInput(t *testing.T) {
	dir := t.TempDir()

	report, err := New("dev/tex").ConvertFile(filepath.Join(dir, "missing.map"), filepath.Join(dir, "out.vmf"))

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "read map file")

	// No partial output.
	_, statErr := os.Stat(filepath.Join(dir, "out.vmf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertFile_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "level.map")
	require.NoError(t, os.WriteFile(in, []byte(sampleMap), 0644))

	// The output path collides with an existing directory.
	out := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(out, 0755))

	_, err := New("dev/tex").ConvertFile(in, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write vmf file")
}
