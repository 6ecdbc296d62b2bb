package geo

import (
	"fmt"
	"strconv"

	"github.com/mmcloughlin/geohash"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

const defaultPrecision = 9

// GeohashEncoder encodes a coordinate pair into a geocoded point.
// Deterministic, no side effects.
type GeohashEncoder struct {
	Precision uint
}

func NewGeohashEncoder(precision uint) *GeohashEncoder {
	if precision == 0 {
		precision = defaultPrecision
	}
	return &GeohashEncoder{Precision: precision}
}

func (e *GeohashEncoder) Encode(coordinates [2]string) (domain.Point, error) {
	lat, err := strconv.ParseFloat(coordinates[0], 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("bad latitude %q: %w", coordinates[0], err)
	}
	lng, err := strconv.ParseFloat(coordinates[1], 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("bad longitude %q: %w", coordinates[1], err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Point{}, fmt.Errorf("coordinates out of range: %s, %s", coordinates[0], coordinates[1])
	}

	return domain.Point{
		Hash:        geohash.EncodeWithPrecision(lat, lng, e.Precision),
		Coordinates: coordinates,
	}, nil
}
