// Package palette holds the workspace record model: folders group projects,
// projects hold an ordered list of colours.
//
// A Store keeps the records for the lifetime of the server process. Every
// colour is stored with its normalized hex plus the RGB and HSL derived from
// it, so callers never see a colour whose representations disagree.
//
// Input structs are validated before the store touches its maps; a rejected
// input returns a *ValidationError carrying one message per failed rule.
// Lookups of unknown ids return an error wrapping ErrNotFound.
package palette
