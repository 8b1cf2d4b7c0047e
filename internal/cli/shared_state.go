package cli

import "github.com/alexanderramin/clientdesk/internal/listing"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Sort survives view pushes and reloads so returning from a form keeps
	// the user's ordering.
	Sort listing.SortState

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
