package layout

import (
	"errors"
	"testing"

	"github.com/dshills/tdsim/pkg/contracts"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	l := Layout{
		Cols: 10, Rows: 8, CellsPerTile: 4,
		Towers: []TowerPlacement{
			{Kind: contracts.Basic, Origin: contracts.Cell{Col: 2, Row: 2}},
			{Kind: contracts.Basic, Origin: contracts.Cell{Col: 6, Row: 4}},
		},
	}

	encoded := Encode(l)
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.Cols != l.Cols || decoded.Rows != l.Rows || decoded.CellsPerTile != l.CellsPerTile {
		t.Fatalf("grid mismatch: got %+v, want %+v", decoded, l)
	}
	if len(decoded.Towers) != len(l.Towers) {
		t.Fatalf("tower count mismatch: got %d, want %d", len(decoded.Towers), len(l.Towers))
	}
	for i, tw := range l.Towers {
		if decoded.Towers[i] != tw {
			t.Fatalf("tower %d mismatch: got %+v, want %+v", i, decoded.Towers[i], tw)
		}
	}
}

func TestDecode_V1WallThicknessRejected(t *testing.T) {
	_, err := Decode(`maze:v1:{"cols":5,"rows":5,"cells_per_tile":4,"wall_thickness":2,"towers":[]}`)
	if !errors.Is(err, ErrWallThicknessUnsupported) {
		t.Fatalf("expected ErrWallThicknessUnsupported, got %v", err)
	}
}

func TestDecode_V1Accepted(t *testing.T) {
	l, err := Decode(`maze:v1:{"cols":5,"rows":5,"cells_per_tile":4,"towers":[{"kind":0,"col":1,"row":1}]}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if l.Cols != 5 || l.Rows != 5 || len(l.Towers) != 1 {
		t.Fatalf("unexpected layout: %+v", l)
	}
}

func TestDecode_UnrecognizedFormat(t *testing.T) {
	if _, err := Decode("not-a-layout"); err == nil {
		t.Fatal("expected an error for an unrecognized format")
	}
}
