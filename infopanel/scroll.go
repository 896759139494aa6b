// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: infopanel/scroll.go
// Summary: Minimal-movement scroll offset tracking, generalized from a
// scrollable-pane widget's "ensure focused row visible" behavior to a
// flat row list.

package infopanel

// scrollState tracks a viewport's offset into a longer row list, moving
// it only as far as needed to keep a target row visible (no re-centering
// on every move).
type scrollState struct {
	offset       int
	contentRows  int
	viewportRows int
}

func newScrollState(viewportRows int) scrollState {
	return scrollState{viewportRows: viewportRows}
}

func (s *scrollState) setContentRows(n int) {
	s.contentRows = n
	s.clamp()
}

// ensureVisible scrolls by the minimum amount so row is within
// [offset, offset+viewportRows).
func (s *scrollState) ensureVisible(row int) {
	if row < s.offset {
		s.offset = row
	} else if row >= s.offset+s.viewportRows {
		s.offset = row - s.viewportRows + 1
	}
	s.clamp()
}

func (s *scrollState) clamp() {
	maxOffset := s.contentRows - s.viewportRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *scrollState) canScrollUp() bool   { return s.offset > 0 }
func (s *scrollState) canScrollDown() bool { return s.offset+s.viewportRows < s.contentRows }
