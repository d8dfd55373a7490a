// SPDX-License-Identifier: MIT

package rasterio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/flowacc/raster"
)

// Sentinel errors.
var (
	// ErrBadHeader indicates a missing, duplicated or malformed header key.
	ErrBadHeader = errors.New("rasterio: bad header")

	// ErrBadValue indicates a body value that is not a number, or that does
	// not fit the requested grid type.
	ErrBadValue = errors.New("rasterio: bad value")
)

// DefaultNoData is the NODATA_value assumed when a file declares none.
const DefaultNoData = -9999

// Header is the georeferencing block of an ESRI ASCII grid.
type Header struct {
	NCols, NRows int
	// XLL and YLL locate the lower-left corner, or the centre of the
	// lower-left cell when Center is set (xllcenter / yllcenter).
	XLL, YLL float64
	Center   bool
	CellSize float64
	NoData   float64
}

// DefaultHeader returns a unit-cell header anchored at the origin.
func DefaultHeader(s raster.Shape) *Header {
	return &Header{NCols: s.Width, NRows: s.Height, CellSize: 1, NoData: DefaultNoData}
}

// ReadASCII decodes an ESRI ASCII grid. Header keys are case-insensitive;
// NODATA_value is optional. Values are read row by row from the top.
func ReadASCII(r io.Reader) (*Header, *raster.Grid[float64], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<26)
	sc.Split(bufio.ScanWords)

	hdr := &Header{NoData: DefaultNoData}
	seen := make(map[string]bool, 6)
	var first string // first body token, consumed while looking for keys
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			first = key
			break
		}
		if seen[key] {
			return nil, nil, fmt.Errorf("ReadASCII: duplicate %q: %w", key, ErrBadHeader)
		}
		seen[key] = true
		if !sc.Scan() {
			return nil, nil, fmt.Errorf("ReadASCII: %q has no value: %w", key, ErrBadHeader)
		}
		if err := hdr.set(key, sc.Text()); err != nil {
			return nil, nil, fmt.Errorf("ReadASCII: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("ReadASCII: %w", err)
	}
	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if !seen[k] {
			return nil, nil, fmt.Errorf("ReadASCII: missing %q: %w", k, ErrBadHeader)
		}
	}
	if seen["xllcorner"] == seen["xllcenter"] || seen["yllcorner"] == seen["yllcenter"] {
		return nil, nil, fmt.Errorf("ReadASCII: need exactly one of xllcorner/xllcenter and yllcorner/yllcenter: %w", ErrBadHeader)
	}
	if seen["xllcenter"] != seen["yllcenter"] {
		return nil, nil, fmt.Errorf("ReadASCII: mixed corner and center origin: %w", ErrBadHeader)
	}

	g, err := raster.New[float64](hdr.NCols, hdr.NRows, hdr.NoData)
	if err != nil {
		return nil, nil, fmt.Errorf("ReadASCII: %w", err)
	}
	data := g.Data()
	n := 0
	next := func() (string, bool) {
		if first != "" {
			tok := first
			first = ""
			return tok, true
		}
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}
	for ; n < len(data); n++ {
		tok, ok := next()
		if !ok {
			break
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			x, y := g.IToXY(n)
			return nil, nil, fmt.Errorf("ReadASCII: cell (%d,%d) %q: %w", x, y, tok, ErrBadValue)
		}
		data[n] = v
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("ReadASCII: %w", err)
	}
	if n < len(data) {
		return nil, nil, fmt.Errorf("ReadASCII: %d values, want %d: %w", n, len(data), ErrBadValue)
	}
	if _, extra := next(); extra {
		return nil, nil, fmt.Errorf("ReadASCII: trailing values after %d cells: %w", len(data), ErrBadValue)
	}

	return hdr, g, nil
}

func (h *Header) set(key, val string) error {
	switch key {
	case "ncols", "nrows":
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return fmt.Errorf("%s %q: %w", key, val, ErrBadHeader)
		}
		if key == "ncols" {
			h.NCols = n
		} else {
			h.NRows = n
		}

		return nil
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("%s %q: %w", key, val, ErrBadHeader)
	}
	switch key {
	case "xllcorner":
		h.XLL = f
	case "xllcenter":
		h.XLL, h.Center = f, true
	case "yllcorner":
		h.YLL = f
	case "yllcenter":
		h.YLL, h.Center = f, true
	case "cellsize":
		if f <= 0 {
			return fmt.Errorf("cellsize %g: %w", f, ErrBadHeader)
		}
		h.CellSize = f
	case "nodata_value":
		h.NoData = f
	default:
		return fmt.Errorf("unknown key %q: %w", key, ErrBadHeader)
	}

	return nil
}

// WriteASCII encodes g as an ESRI ASCII grid. hdr supplies georeferencing;
// nil means DefaultHeader. The dimensions and NODATA_value always come from
// g. No-data cells are written as the grid's sentinel.
func WriteASCII[T raster.Number](w io.Writer, hdr *Header, g *raster.Grid[T]) error {
	if hdr == nil {
		hdr = DefaultHeader(g.Shape())
	}
	bw := bufio.NewWriter(w)
	xk, yk := "xllcorner", "yllcorner"
	if hdr.Center {
		xk, yk = "xllcenter", "yllcenter"
	}
	fmt.Fprintf(bw, "ncols %d\nnrows %d\n", g.Width(), g.Height())
	fmt.Fprintf(bw, "%s %s\n%s %s\n", xk, formatFloat(hdr.XLL), yk, formatFloat(hdr.YLL))
	fmt.Fprintf(bw, "cellsize %s\n", formatFloat(hdr.CellSize))
	fmt.Fprintf(bw, "NODATA_value %s\n", formatFloat(float64(g.NoData())))

	data := g.Data()
	width := g.Width()
	for i, v := range data {
		bw.WriteString(formatFloat(float64(v)))
		if (i+1)%width == 0 {
			bw.WriteByte('\n')
		} else {
			bw.WriteByte(' ')
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("WriteASCII: %w", err)
	}

	return nil
}

// formatFloat never uses exponent notation; counts past 1e6 stay integers.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Directions converts a decoded grid to D8 codes. No-data cells become
// raster.DirectionNoData; every other value must be an integer in 0..8.
func Directions(g *raster.Grid[float64]) (*raster.Grid[uint8], error) {
	out := raster.NewLike[uint8](g, 0, raster.DirectionNoData)
	for i, v := range g.Data() {
		if g.IsNoData(i) {
			out.Set(i, raster.DirectionNoData)
			continue
		}
		if v != math.Trunc(v) || v < 0 || v > float64(raster.MaxDirection) {
			x, y := g.IToXY(i)
			return nil, fmt.Errorf("Directions: cell (%d,%d) value %g: %w", x, y, v, ErrBadValue)
		}
		out.Set(i, uint8(v))
	}

	return out, nil
}
