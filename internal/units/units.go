// Package units provides shared constants and conversions for survey geometry
package units

import "math"

// MetersPerNauticalMile is the international nautical mile in meters.
const MetersPerNauticalMile = 1852.0

// NauticalMilesToMeters converts a distance in nautical miles to meters.
func NauticalMilesToMeters(nm float64) float64 {
	return nm * MetersPerNauticalMile
}

// MetersToNauticalMiles converts a distance in meters to nautical miles.
func MetersToNauticalMiles(m float64) float64 {
	return m / MetersPerNauticalMile
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
