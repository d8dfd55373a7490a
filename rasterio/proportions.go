// SPDX-License-Identifier: MIT

package rasterio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/katalvlaran/flowacc/raster"
)

// Format selects the encoding of a proportion document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a name or file extension ("yaml", ".yml", "json") to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("rasterio: unknown format %q", s)
	}
}

// proportionDoc is the on-disk layout of a proportion field. Only routed
// cells are listed; absent cells are terminal.
type proportionDoc struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	NoData []int     `json:"noData,omitempty"`
	Cells  []cellDoc `json:"cells"`
}

type cellDoc struct {
	Index  int                `json:"index"`
	Shares map[string]float32 `json:"shares"`
}

// ReadProportions decodes a YAML or JSON proportion document. Direction
// names are case-insensitive ("E", "sw"); in YAML a bare N reads as a
// boolean and must be quoted. Fraction values are stored as given; the
// engine validates them.
func ReadProportions(r io.Reader) (*raster.Proportions, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ReadProportions: %w", err)
	}
	var doc proportionDoc
	if err = yaml.UnmarshalStrict(b, &doc); err != nil {
		return nil, fmt.Errorf("ReadProportions: %w: %w", ErrBadValue, err)
	}
	props, err := raster.NewProportions(doc.Width, doc.Height)
	if err != nil {
		return nil, fmt.Errorf("ReadProportions: %w", err)
	}

	for _, i := range doc.NoData {
		if i < 0 || i >= props.Size() {
			return nil, fmt.Errorf("ReadProportions: noData index %d: %w", i, ErrBadValue)
		}
		props.SetNoData(i, true)
	}
	for _, c := range doc.Cells {
		if c.Index < 0 || c.Index >= props.Size() {
			return nil, fmt.Errorf("ReadProportions: cell index %d: %w", c.Index, ErrBadValue)
		}
		for name, f := range c.Shares {
			d, err := raster.ParseDirection(name)
			if err != nil {
				return nil, fmt.Errorf("ReadProportions: cell %d: %w: %w", c.Index, ErrBadValue, err)
			}
			if err = props.Set(c.Index, d, f); err != nil {
				return nil, fmt.Errorf("ReadProportions: cell %d: %w: %w", c.Index, ErrBadValue, err)
			}
		}
	}

	return props, nil
}

// WriteProportions encodes props in the given format. Cells are listed in
// index order and only when they hold a non-zero fraction.
func WriteProportions(w io.Writer, props *raster.Proportions, f Format) error {
	doc := proportionDoc{Width: props.Width(), Height: props.Height(), Cells: []cellDoc{}}
	for i := 0; i < props.Size(); i++ {
		if props.IsNoData(i) {
			doc.NoData = append(doc.NoData, i)
			continue
		}
		shares := props.Shares(i)
		if len(shares) == 0 {
			continue
		}
		c := cellDoc{Index: i, Shares: make(map[string]float32, len(shares))}
		for _, s := range shares {
			c.Shares[s.Dir.String()] = s.Fraction
		}
		doc.Cells = append(doc.Cells, c)
	}

	var (
		b   []byte
		err error
	)
	switch f {
	case FormatYAML:
		b, err = yaml.Marshal(doc)
	case FormatJSON:
		b, err = json.MarshalIndent(doc, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("WriteProportions: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("WriteProportions: %w", err)
	}
	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("WriteProportions: %w", err)
	}

	return nil
}
