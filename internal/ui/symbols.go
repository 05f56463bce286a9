package ui

// Status symbols printed at the start of a finished spinner line.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolSkipped = "⊘"
	SymbolPending = "○"
)
