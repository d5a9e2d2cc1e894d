// Package vellum is a 2D drawing engine: the document model and editing
// core behind a vector/raster design tool.
//
// # Overview
//
// vellum owns a mutable document of drawable objects (shapes, paths, text,
// images, groups) and applies edits to it through a fixed command
// vocabulary with multi-level undo. Rendering is deliberately out of
// scope: the engine produces geometry and state for a renderer or
// frontend to draw.
//
// # Quick Start
//
//	import "github.com/gogpu/vellum"
//
//	e := vellum.NewEngine()
//
//	// Typed commands...
//	res := e.Do(vellum.AddObject{Kind: "Rectangle"})
//
//	// ...or the JSON wire protocol, same semantics
//	res = e.Execute("add", []byte(`{"kind":"Circle","x":40,"y":40}`))
//
//	e.Undo()
//
// # Commands and History
//
// Every edit is a Command. Mutating commands snapshot the document before
// they run, so undo restores exact prior states; per-call save_undo
// overrides let interactive gestures stream intermediate updates without
// flooding the history. Queries and selection changes never touch the
// history, and neither does the viewport.
//
// # Geometry
//
// Objects are placed by a top-left position, a size and a rotation about
// the box center. Hit-testing, marquee selection, resize and rotate handle
// math live alongside the document and all work in world space. Editable
// bezier paths round-trip through a compact SVG-style string; brush
// strokes are tessellated into dab stamps along a smoothed centerline.
//
// # Coordinate System
//
// Origin at the top-left, X right, Y down, angles in radians.
package vellum

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
