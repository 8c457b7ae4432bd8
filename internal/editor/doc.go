// Package editor holds the form-builder editing core: the drag session state
// machine, the drop (insert/reorder) engine, deletion, the selection model, and
// the Controller that views drive through its On* entry points.
package editor
