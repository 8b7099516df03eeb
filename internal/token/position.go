package token

import "fmt"

// Position identifies a location in source text. Lines are 1-based;
// columns are 0-based rune counts from the start of the line.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether p refers to a real location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
