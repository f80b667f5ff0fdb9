// Package segment cuts a scanned text line into character images.
//
// # Pipeline
//
//  1. Watermark removal: pixels of the watermark color are blackened, then a
//     3×3 median pass erases the thin line and isolated noise.
//  2. Binarization: pixels brighter than the limit become white, the rest
//     black.
//  3. Boundaries: see package detection.
//  4. Cutting: k boundaries give k+1 rectangles over a fixed row band. The
//     first and last lose their blank outer columns; slices no wider than the
//     merge width are appended to their left neighbour.
//  5. Cropping: each CharacterImage tightens itself to its ink and answers
//     HasMoreThanOneCharacterInside and IsALostFragment.
//
// Segment runs all steps; Refine applies the usual reaction to the two
// advisory flags.
//
// # Degenerate Input
//
// Nothing in the pipeline fails on odd geometry. A crop with no ink keeps its
// untightened pixels and an empty cut yields a zero-sized character, so callers
// check Empty or Width before exporting.
package segment
