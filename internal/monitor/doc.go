// Package monitor implements the interactive host dashboard.
//
// The dashboard is a full-screen menu. Selecting an entry either shows a
// one-shot information view (system, memory, disk, GPU) or opens a live CPU
// graph that samples once per second until the user backs out.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Session: Holds the explicit dashboard state (menu, mode, active view)
//   - Update: Processes messages (keystrokes, ticks, provider results)
//   - View: Draws the current state into a screen.Buffer and renders it
//
// # Key Components
//
//	MenuState   - Value-type menu navigation with clamped selection
//	Series      - Ring buffer holding the last 60 CPU samples
//	Graph       - Braille line plot with labelled axes
//	Session     - The Bubble Tea model tying the above to a metrics.Provider
//
// # Message Flow
//
// Provider reads never run on the UI goroutine:
//
//  1. Activating an information entry switches to a loading view and starts
//     a read command bounded by the configured timeout
//  2. detailMsg arrives with the formatted view or the error to show
//  3. In graph mode graphTickMsg fires every interval and starts one
//     CPU read; cpuSampleMsg appends the rounded value to the Series
//
// Every screen change bumps a generation counter. Messages from commands
// started for an earlier screen are dropped, so leaving a view cancels it.
// A failed CPU read stops the tick loop and leaves the error on screen.
//
// # Keyboard Shortcuts
//
//	↑/k, ↓/j    - Move selection (clamped at both ends)
//	Home, End   - First / last entry
//	Enter       - Activate entry
//	any key     - Leave an information view
//	q, Esc      - Leave the live graph
//	?           - Toggle full key help
//	Ctrl+C      - Quit from anywhere
package monitor
