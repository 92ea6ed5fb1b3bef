// Package sanitizer provides input normalization for phone numbers received
// from the home page and the JSON API.
//
// All normalization functions are total and idempotent - applying them
// multiple times produces the same result, and no input produces an error.
// Nothing here validates a number against a numbering plan; a normalized
// value is only stripped, never checked.
//
// Normalization includes:
//   - Whitespace: every Unicode white space character and U+FEFF is removed, not collapsed.
//     U+0085 (NEL) is kept, as ECMAScript does not treat it as white space
//   - Trunk prefix: any run of leading '0' characters is removed
package sanitizer
