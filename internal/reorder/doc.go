// Package reorder implements the multi-select drag move used to rearrange
// extension sources: selected items are gathered at an insertion point
// without disturbing the relative order of anything else.
package reorder
