package plot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformance(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "performance.png")
	remaining := []int{8, 6, 5, 5, 4, 3, 3, 2, 1, 1}
	require.NoError(t, Performance(remaining, filename))

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestPerformanceSingleEpisode(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "performance.png")
	assert.NoError(t, Performance([]int{1}, filename))
}

func TestPerformanceErrors(t *testing.T) {
	assert.Error(t, Performance(nil, filepath.Join(t.TempDir(), "p.png")))

	missing := filepath.Join(t.TempDir(), "missing", "p.png")
	assert.Error(t, Performance([]int{3, 2}, missing))
}

func TestRunningMean(t *testing.T) {
	data := []float64{4, 2, 6, 0, 3}

	assert.Equal(t, data, RunningMean(data, 1))
	assert.Equal(t, []float64{4, 3, 4, 8.0 / 3, 3}, RunningMean(data, 3))
	assert.Equal(t, []float64{4, 3, 4, 3, 3}, RunningMean(data, 10))
	assert.Empty(t, RunningMean(nil, 3))

	assert.Panics(t, func() { RunningMean(data, 0) })
}
