package models

// Direction is a compass quadrant relative to the reference point.
type Direction string

const (
	DirectionNE Direction = "NE"
	DirectionSE Direction = "SE"
	DirectionSW Direction = "SW"
	DirectionNW Direction = "NW"
)

// Valid reports whether d is one of the four quadrant labels.
func (d Direction) Valid() bool {
	switch d {
	case DirectionNE, DirectionSE, DirectionSW, DirectionNW:
		return true
	}
	return false
}

// String returns the underlying string value.
func (d Direction) String() string {
	return string(d)
}
