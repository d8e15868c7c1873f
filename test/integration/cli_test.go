package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/tedori/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	path, err := filepath.Abs(fixtures[0])
	require.NoError(t, err)
	profile, adv := loadFixture(t, path)
	report, err := adv.Advise(profile)
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	for format, ext := range map[string]string{"console": "txt", "json": "json", "csv": "csv", "html": "html", "md": "md"} {
		f := output.GetFormatterByName(format)
		require.NotNil(t, f, "Formatter %s should be registered", format)

		filename, err := output.WriteFormatted(f, report, ext)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, "."+ext))

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		require.NoError(t, os.Remove(filename))
	}
}
