// Package monitor implements the kiosk dashboard for a node_exporter target.
//
// The dashboard shows CPU, memory, disk I/O and network throughput as rolling
// braille charts, in the spirit of a small always-on status screen.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the histories, the latest result and UI state
//   - Update: Processes messages (keystrokes, frame ticks, window size)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
// Sampling happens on a separate goroutine owned by the sampler package. The
// model never waits on it:
//
//  1. frameMsg fires every frame interval (default 200ms, 5 fps)
//  2. Update drains every queued result with TryDequeueResult
//  3. Each result is pushed into the History ring buffers
//  4. View() re-renders the charts from the buffers
//
// # History
//
// History keeps one ring buffer per series, pre-filled with zeros so charts
// always span the full width:
//
//   - total CPU percentage (mean across CPUs)
//   - memory used bytes
//   - disk read and written bytes per second (summed across devices)
//   - network received and transmitted bytes per second
//
// # Keyboard Shortcuts
//
// Keybindings are defined in keybindings.go:
//
//	q, Ctrl+C   - Quit
//	u           - Change the metrics URL
//	d, Enter    - Toggle per-CPU and per-device detail
//	Esc         - Close detail, help or URL editor
//	?           - Toggle help overlay
package monitor
