// Package io provides the external images loaded into the accumulator CPU:
// the program ROM image (a stream of 16-bit instruction words) and the
// data-memory initializer (a text list of ADDRESS VALUE pairs).
package io
