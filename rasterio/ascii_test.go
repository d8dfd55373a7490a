// SPDX-License-Identifier: MIT

package rasterio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowacc/raster"
	"github.com/katalvlaran/flowacc/rasterio"
)

const sampleASC = `NCOLS 3
nrows 2
xllcorner 100.5
YLLCORNER -20
cellsize 30
NODATA_value -9999
1 2.5 -9999
4 5 6
`

// TestReadASCII decodes a header with mixed-case keys and a no-data cell.
func TestReadASCII(t *testing.T) {
	hdr, g, err := rasterio.ReadASCII(strings.NewReader(sampleASC))
	require.NoError(t, err)

	assert.Equal(t, &rasterio.Header{NCols: 3, NRows: 2, XLL: 100.5, YLL: -20, CellSize: 30, NoData: -9999}, hdr)
	assert.Equal(t, [][]float64{{1, 2.5, -9999}, {4, 5, 6}}, g.Rows())
	assert.True(t, g.IsNoData(2))
	assert.Equal(t, 5, g.CountData())
}

// TestReadASCII_CenterNoNoData accepts center origins and a missing
// NODATA_value.
func TestReadASCII_CenterNoNoData(t *testing.T) {
	in := "ncols 2\nnrows 1\nxllcenter 0\nyllcenter 0\ncellsize 1\n7 8\n"
	hdr, g, err := rasterio.ReadASCII(strings.NewReader(in))
	require.NoError(t, err)
	assert.True(t, hdr.Center)
	assert.Equal(t, float64(rasterio.DefaultNoData), g.NoData())
	assert.Equal(t, []float64{7, 8}, g.Data())
}

// TestReadASCII_Errors rejects malformed input.
func TestReadASCII_Errors(t *testing.T) {
	base := "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n"
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"MissingNCols", "nrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", rasterio.ErrBadHeader},
		{"UnknownKey", "ncols 1\nnrows 1\nfoo 3\n", rasterio.ErrBadHeader},
		{"Duplicate", "ncols 1\nncols 1\n", rasterio.ErrBadHeader},
		{"BadNRows", "ncols 2\nnrows x\n", rasterio.ErrBadHeader},
		{"ZeroCellSize", "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 0\n1 2\n", rasterio.ErrBadHeader},
		{"NoOrigin", "ncols 2\nnrows 1\ncellsize 1\n1 2\n", rasterio.ErrBadHeader},
		{"MixedOrigin", "ncols 2\nnrows 1\nxllcorner 0\nyllcenter 0\ncellsize 1\n1 2\n", rasterio.ErrBadHeader},
		{"ShortBody", base + "1\n", rasterio.ErrBadValue},
		{"LongBody", base + "1 2 3\n", rasterio.ErrBadValue},
		{"NotNumber", base + "1 two\n", rasterio.ErrBadValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := rasterio.ReadASCII(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestWriteASCII_RoundTrip encodes a result grid and decodes it back.
func TestWriteASCII_RoundTrip(t *testing.T) {
	g, err := raster.FromRows([][]uint32{{1, 2}, {3, 4294967295}}, 4294967295)
	require.NoError(t, err)
	hdr := &rasterio.Header{XLL: 10, YLL: 20, CellSize: 5}

	var buf bytes.Buffer
	require.NoError(t, rasterio.WriteASCII(&buf, hdr, g))
	assert.Equal(t, "ncols 2\nnrows 2\nxllcorner 10\nyllcorner 20\ncellsize 5\nNODATA_value 4294967295\n1 2\n3 4294967295\n", buf.String())

	back, decoded, err := rasterio.ReadASCII(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, back.NCols)
	assert.True(t, decoded.IsNoData(3))
	assert.Equal(t, []float64{1, 2, 3, 4294967295}, decoded.Data())
}

// TestWriteASCII_DefaultHeader uses a unit cell at the origin.
func TestWriteASCII_DefaultHeader(t *testing.T) {
	g, err := raster.FromRows([][]float64{{0.5}}, -1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, rasterio.WriteASCII(&buf, nil, g))
	assert.Equal(t, "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -1\n0.5\n", buf.String())
}

// TestDirections converts codes and rejects impossible values.
func TestDirections(t *testing.T) {
	g, err := raster.FromRows([][]float64{{0, 5, -9999}, {8, 1, 3}}, -9999)
	require.NoError(t, err)

	dirs, err := rasterio.Directions(g)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 5, raster.DirectionNoData, 8, 1, 3}, dirs.Data())
	assert.Equal(t, raster.DirectionNoData, dirs.NoData())

	for _, bad := range []float64{9, -1, 2.5, 300} {
		g.Set(0, bad)
		_, err = rasterio.Directions(g)
		assert.ErrorIs(t, err, rasterio.ErrBadValue, "value %g", bad)
	}
}
