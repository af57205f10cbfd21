package utils

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Yard boundaries are stored as GeoJSON geometry (Polygon or
// MultiPolygon, lng/lat order as GeoJSON mandates). Progress reports
// tagged with a position are checked against them.

// ValidateBoundary checks that a stored boundary parses and has a
// usable polygon shape. An empty boundary is allowed; yards without
// one simply skip the containment check.
func ValidateBoundary(boundaryJSON []byte) error {
	if len(boundaryJSON) == 0 {
		return nil
	}

	geom, err := geojson.UnmarshalGeometry(boundaryJSON)
	if err != nil {
		return fmt.Errorf("invalid boundary GeoJSON: %w", err)
	}

	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) < 3 {
			return errors.New("boundary polygon needs at least 3 points")
		}
	case orb.MultiPolygon:
		if len(g) == 0 {
			return errors.New("boundary multipolygon is empty")
		}
	default:
		return fmt.Errorf("boundary must be a Polygon or MultiPolygon, got %s", geom.Type)
	}
	return nil
}

// BoundaryContains reports whether the given position lies inside the
// boundary. A yard without a boundary contains everything.
func BoundaryContains(boundaryJSON []byte, lat, lng float64) (bool, error) {
	if len(boundaryJSON) == 0 {
		return true, nil
	}

	geom, err := geojson.UnmarshalGeometry(boundaryJSON)
	if err != nil {
		return false, fmt.Errorf("invalid boundary GeoJSON: %w", err)
	}

	point := orb.Point{lng, lat}
	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point), nil
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point), nil
	default:
		return false, fmt.Errorf("boundary must be a Polygon or MultiPolygon, got %s", geom.Type)
	}
}
