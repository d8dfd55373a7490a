// SPDX-License-Identifier: MIT

package rasterio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowacc/raster"
	"github.com/katalvlaran/flowacc/rasterio"
)

const sampleYAML = `
width: 2
height: 2
noData: [3]
cells:
  - index: 0
    shares: {E: 0.5, s: 0.5}
  - index: 1
    shares: {SW: 1}
`

// TestReadProportions decodes YAML with case-insensitive direction names.
func TestReadProportions(t *testing.T) {
	props, err := rasterio.ReadProportions(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, raster.Shape{Width: 2, Height: 2}, props.Shape())
	assert.Equal(t, []raster.Share{{Dir: raster.E, Fraction: 0.5}, {Dir: raster.S, Fraction: 0.5}}, props.Shares(0))
	assert.Equal(t, []raster.Share{{Dir: raster.SW, Fraction: 1}}, props.Shares(1))
	assert.Empty(t, props.Shares(2))
	assert.True(t, props.IsNoData(3))
}

// TestReadProportions_QuotedNorth reads the one name YAML would otherwise
// turn into a boolean.
func TestReadProportions_QuotedNorth(t *testing.T) {
	in := "width: 1\nheight: 2\ncells:\n  - index: 1\n    shares: {\"N\": 1}\n"
	props, err := rasterio.ReadProportions(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, float32(1), props.Fraction(1, raster.N))
}

// TestReadProportions_JSON accepts the same document as JSON.
func TestReadProportions_JSON(t *testing.T) {
	in := `{"width": 3, "height": 1, "cells": [{"index": 1, "shares": {"W": 0.25, "E": 0.75}}]}`
	props, err := rasterio.ReadProportions(strings.NewReader(in))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, props.Total(1), 1e-9)
}

// TestReadProportions_Errors rejects bad indices, names and unknown fields.
func TestReadProportions_Errors(t *testing.T) {
	cases := map[string]string{
		"CellIndex":    `{"width": 1, "height": 1, "cells": [{"index": 1, "shares": {"E": 1}}]}`,
		"NoDataIndex":  `{"width": 1, "height": 1, "noData": [-1], "cells": []}`,
		"Direction":    `{"width": 1, "height": 1, "cells": [{"index": 0, "shares": {"UP": 1}}]}`,
		"NoFlowKey":    `{"width": 1, "height": 1, "cells": [{"index": 0, "shares": {"NoFlow": 1}}]}`,
		"UnknownField": `{"width": 1, "height": 1, "depth": 2, "cells": []}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rasterio.ReadProportions(strings.NewReader(in))
			assert.ErrorIs(t, err, rasterio.ErrBadValue)
		})
	}

	_, err := rasterio.ReadProportions(strings.NewReader(`{"width": 0, "height": 1, "cells": []}`))
	assert.ErrorIs(t, err, raster.ErrBadShape)
}

// TestWriteProportions_RoundTrip checks both encodings reproduce the field.
func TestWriteProportions_RoundTrip(t *testing.T) {
	props, err := rasterio.ReadProportions(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	for _, f := range []rasterio.Format{rasterio.FormatYAML, rasterio.FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, rasterio.WriteProportions(&buf, props, f))

		back, err := rasterio.ReadProportions(&buf)
		require.NoError(t, err, "format %s", f)
		for i := 0; i < props.Size(); i++ {
			if diff := cmp.Diff(props.Shares(i), back.Shares(i)); diff != "" {
				t.Errorf("%s cell %d (-want +got):\n%s", f, i, diff)
			}
			assert.Equal(t, props.IsNoData(i), back.IsNoData(i))
		}
	}

	assert.Error(t, rasterio.WriteProportions(&bytes.Buffer{}, props, "toml"))
}

// TestParseFormat maps names and extensions.
func TestParseFormat(t *testing.T) {
	for in, want := range map[string]rasterio.Format{"yaml": rasterio.FormatYAML, ".yml": rasterio.FormatYAML, "JSON": rasterio.FormatJSON} {
		got, err := rasterio.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := rasterio.ParseFormat(".asc")
	assert.Error(t, err)
}
