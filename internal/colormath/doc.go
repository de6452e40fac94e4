// Package colormath converts between the colour representations used by the
// palette tools and derives readability metrics from them.
//
// Every colour is stored and displayed as a normalized hex string ("#RRGGBB",
// uppercase). RGB, HSL and CMYK values are derived from that hex on demand and
// never cached here.
//
// # Representations
//
//   - Hex: "#RRGGBB", parsed from "#RGB", "RGB", "#RRGGBB" or "RRGGBB" in any case
//   - RGB: R, G, B in 0-255
//   - HSL: H in 0-359 degrees, S and L in 0-100 percent
//   - CMYK: C, M, Y, K in 0-100 percent
//
// All derived numbers are rounded to the nearest integer, with halves rounding up.
//
// # Error Handling
//
// Only functions that accept a hex string can fail. They return an error
// wrapping ErrInvalidColorFormat, so callers can test with errors.Is. Functions
// that take RGB, HSL or CMYK values clamp out-of-range channels and never fail.
//
// # Thread Safety
//
// The package holds no state. All functions are safe for concurrent use.
package colormath
