// Package detection finds the columns at which a scanned text line is cut
// into characters.
//
// # Algorithm Overview
//
//  1. Ink columns: every column of the scan window that carries ink inside
//     the window's row band, ascending.
//  2. Candidates: the right edge of each run of consecutive ink columns.
//  3. Fragment filter: a candidate whose trailing columns all carry very
//     little ink sits inside a stray dot or serif, not at the end of a glyph,
//     and is discarded.
//
// The surviving candidates are the boundaries, in ascending order.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Limitations
//
// The heuristics assume a binarized single line with glyphs separated by at
// least one blank column. Touching glyphs produce a single run; callers detect
// those later from the width of the resulting character.
package detection
