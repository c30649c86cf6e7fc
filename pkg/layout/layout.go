// Package layout encodes and decodes the persisted tile-grid-plus-tower
// layout string a driver saves and reloads between sessions. It is the
// kernel's only serialization surface; World.Apply itself never reads or
// writes bytes.
//
// Encode and Decode are small functions with no hidden I/O: Encode returns
// the layout string, Decode returns (Layout, error). The payload is a
// compact varint tower list.
package layout

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/tdsim/pkg/contracts"
)

// ErrWallThicknessUnsupported is returned when a legacy v1 payload carries a
// wall_thickness key. The kernel has no flag-parsing layer to reject the
// equivalent --wall-thickness CLI flag at, so the v1 decoder is the nearest
// enforcement point.
var ErrWallThicknessUnsupported = errors.New("layout: wall_thickness is not supported")

// TowerPlacement is one tower's kind and footprint origin within a layout.
type TowerPlacement struct {
	Kind   contracts.TowerKind
	Origin contracts.Cell
}

// Layout is the decoded form of a persisted maze string: the tile grid
// dimensions and the towers placed on it.
type Layout struct {
	Cols         int
	Rows         int
	CellsPerTile int
	Towers       []TowerPlacement
}

// Encode serializes a layout to the current maze:v2:CxR|<payload> form.
func Encode(l Layout) string {
	payload := make([]byte, 0, 16+len(l.Towers)*6)
	var buf [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(buf[:], uint64(l.CellsPerTile))
	payload = append(payload, buf[:n]...)

	n = binary.PutUvarint(buf[:], uint64(len(l.Towers)))
	payload = append(payload, buf[:n]...)

	for _, tw := range l.Towers {
		n = binary.PutUvarint(buf[:], uint64(tw.Kind))
		payload = append(payload, buf[:n]...)
		n = binary.PutUvarint(buf[:], uint64(tw.Origin.Col))
		payload = append(payload, buf[:n]...)
		n = binary.PutUvarint(buf[:], uint64(tw.Origin.Row))
		payload = append(payload, buf[:n]...)
	}

	encoded := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(payload)
	return fmt.Sprintf("maze:v2:%dx%d|%s", l.Cols, l.Rows, encoded)
}

// Decode parses either a current v2 string or a legacy v1 JSON payload. The
// CxR tile grid embedded in the payload overrides any grid configuration
// supplied separately by the driver.
func Decode(s string) (Layout, error) {
	switch {
	case strings.HasPrefix(s, "maze:v2:"):
		return decodeV2(strings.TrimPrefix(s, "maze:v2:"))
	case strings.HasPrefix(s, "maze:v1:"):
		return decodeV1(strings.TrimPrefix(s, "maze:v1:"))
	default:
		return Layout{}, fmt.Errorf("layout: unrecognized format %q", s)
	}
}

func decodeV2(rest string) (Layout, error) {
	gridPart, payloadPart, ok := strings.Cut(rest, "|")
	if !ok {
		return Layout{}, errors.New("layout: missing payload separator")
	}

	cols, rows, err := parseGrid(gridPart)
	if err != nil {
		return Layout{}, err
	}

	payload, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(payloadPart)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: invalid base64 payload: %w", err)
	}

	l := Layout{Cols: cols, Rows: rows}

	cellsPerTile, n := binary.Uvarint(payload)
	if n <= 0 {
		return Layout{}, errors.New("layout: truncated payload")
	}
	payload = payload[n:]
	l.CellsPerTile = int(cellsPerTile)

	towerCount, n := binary.Uvarint(payload)
	if n <= 0 {
		return Layout{}, errors.New("layout: truncated payload")
	}
	payload = payload[n:]

	for i := uint64(0); i < towerCount; i++ {
		kind, n := binary.Uvarint(payload)
		if n <= 0 {
			return Layout{}, errors.New("layout: truncated tower record")
		}
		payload = payload[n:]

		col, n := binary.Uvarint(payload)
		if n <= 0 {
			return Layout{}, errors.New("layout: truncated tower record")
		}
		payload = payload[n:]

		row, n := binary.Uvarint(payload)
		if n <= 0 {
			return Layout{}, errors.New("layout: truncated tower record")
		}
		payload = payload[n:]

		l.Towers = append(l.Towers, TowerPlacement{
			Kind:   contracts.TowerKind(kind),
			Origin: contracts.Cell{Col: int(col), Row: int(row)},
		})
	}

	return l, nil
}

func parseGrid(s string) (cols, rows int, err error) {
	colsStr, rowsStr, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("layout: invalid grid spec %q", s)
	}
	cols, err = strconv.Atoi(colsStr)
	if err != nil {
		return 0, 0, fmt.Errorf("layout: invalid column count: %w", err)
	}
	rows, err = strconv.Atoi(rowsStr)
	if err != nil {
		return 0, 0, fmt.Errorf("layout: invalid row count: %w", err)
	}
	return cols, rows, nil
}

// legacyV1 mirrors the pre-varint JSON payload. WallThickness is a pointer
// so its mere presence in the payload, even set to zero, is detectable.
type legacyV1 struct {
	Cols          int    `json:"cols"`
	Rows          int    `json:"rows"`
	CellsPerTile  int    `json:"cells_per_tile"`
	WallThickness *int   `json:"wall_thickness,omitempty"`
	Towers        []struct {
		Kind int `json:"kind"`
		Col  int `json:"col"`
		Row  int `json:"row"`
	} `json:"towers"`
}

func decodeV1(payload string) (Layout, error) {
	var v legacyV1
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return Layout{}, fmt.Errorf("layout: invalid legacy payload: %w", err)
	}
	if v.WallThickness != nil {
		return Layout{}, ErrWallThicknessUnsupported
	}

	l := Layout{Cols: v.Cols, Rows: v.Rows, CellsPerTile: v.CellsPerTile}
	for _, t := range v.Towers {
		l.Towers = append(l.Towers, TowerPlacement{
			Kind:   contracts.TowerKind(t.Kind),
			Origin: contracts.Cell{Col: t.Col, Row: t.Row},
		})
	}
	return l, nil
}
