// Package model provides the shared data types for the pagestamp library.
//
// It defines geometric primitives ([BBox], [Point], [Matrix]) used by the
// page geometry and detection packages, placement settings for header and
// footer text, and the file item / result types consumed by the batch
// processor and its callers.
//
// All types in this package are plain values with no dependency on any PDF
// library; they are safe to construct in tests and to pass across package
// boundaries.
package model
