// Package display abstracts the character-cell surface the progress screen
// draws on. Coordinates are zero-based (row, column); writes outside the
// surface are clipped, never an error.
package display

type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleDim
	StyleError
)

type Display interface {
	// Size reports the current surface dimensions.
	Size() (rows, cols int)
	// Clear blanks the pending frame.
	Clear()
	WriteString(row, col int, s string, style Style)
	WriteRune(row, col int, r rune, style Style)
	// Refresh pushes the pending frame to the surface.
	Refresh() error
	// WaitKey blocks until one key is pressed.
	WaitKey() error
	// Close restores the surface to its original mode.
	Close() error
}
