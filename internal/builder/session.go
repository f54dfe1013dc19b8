// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package builder holds the editing session for a single portfolio draft:
// an in-memory copy of the document that absorbs block and metadata edits
// and is only persisted on an explicit save or publish. Failed saves keep
// the draft intact — local edits are never discarded on error.
package builder

import (
	"context"
	"fmt"
	"time"

	"craftfolio/internal/models"
)

// State is the session's position in the edit/save cycle.
type State int

const (
	// StateEmpty means no document is loaded.
	StateEmpty State = iota
	// StateClean means the draft matches the persisted copy.
	StateClean
	// StateDirty means local mutations are pending a save.
	StateDirty
	// StateSaving means a save is in flight.
	StateSaving
)

// String returns the state name for logs and test failures.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MessageTTL is how long a surfaced error message stays visible before
// Message reports it as dismissed.
const MessageTTL = 5 * time.Second

// Gateway persists drafts. The store-backed implementation lives in this
// package; tests substitute a fake.
type Gateway interface {
	// Save persists the draft and returns the stored document.
	Save(ctx context.Context, doc *models.Portfolio) (*models.Portfolio, error)
	// Publish flips the document to published under the given slug
	// (empty keeps the current one) and returns the stored document.
	Publish(ctx context.Context, doc *models.Portfolio, slug string) (*models.Portfolio, error)
}

// NoSelection is the Selected value when no block is selected.
const NoSelection = -1

// Session is the client-held draft of one portfolio. It is not safe for
// concurrent use: one session edits on behalf of one user at a time.
type Session struct {
	gateway  Gateway
	state    State
	doc      *models.Portfolio
	selected int

	msg   string
	msgAt time.Time
	now   func() time.Time
}

// NewSession creates an empty session backed by the given gateway.
func NewSession(gateway Gateway) *Session {
	return &Session{
		gateway:  gateway,
		state:    StateEmpty,
		selected: NoSelection,
		now:      time.Now,
	}
}

// Load replaces the session's draft with a copy of doc and resets state to
// Clean. The components slice is copied so later edits don't alias the
// caller's document.
func (s *Session) Load(doc *models.Portfolio) {
	draft := *doc
	draft.Components = make([]models.ContentBlock, len(doc.Components))
	copy(draft.Components, doc.Components)
	s.doc = &draft
	s.state = StateClean
	s.selected = NoSelection
	s.msg = ""
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Document returns the in-memory draft, or nil when the session is empty.
func (s *Session) Document() *models.Portfolio {
	return s.doc
}

// Selected returns the index of the currently selected block, or NoSelection.
func (s *Session) Selected() int {
	return s.selected
}

// Select marks the block at index as selected. Out-of-range indices clear
// the selection.
func (s *Session) Select(index int) {
	if s.doc == nil || index < 0 || index >= len(s.doc.Components) {
		s.selected = NoSelection
		return
	}
	s.selected = index
}

// Message returns the most recent save/publish failure, or "" once the
// message has aged past MessageTTL or a later operation succeeded.
func (s *Session) Message() string {
	if s.msg == "" || s.now().Sub(s.msgAt) >= MessageTTL {
		return ""
	}
	return s.msg
}

// AddBlock appends an empty block of the given type and marks the session
// dirty. The new block's order is its array position.
func (s *Session) AddBlock(blockType models.BlockType) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}
	if !blockType.Valid() {
		return fmt.Errorf("%w: unknown block type %q", models.ErrValidation, blockType)
	}
	s.doc.Components = append(s.doc.Components, models.ContentBlock{
		Type:    blockType,
		Content: map[string]any{},
		Order:   len(s.doc.Components),
	})
	s.state = StateDirty
	return nil
}

// UpdateBlockContent replaces the content of the block at index.
func (s *Session) UpdateBlockContent(index int, content map[string]any) error {
	if s.doc == nil || index < 0 || index >= len(s.doc.Components) {
		return fmt.Errorf("%w: block index %d out of range", models.ErrValidation, index)
	}
	s.doc.Components[index].Content = content
	s.state = StateDirty
	return nil
}

// MoveBlock removes the block at from and reinserts it at to, then renumbers
// every block. The selection follows its content: the moved block stays
// selected, and blocks between the two positions shift by one in the
// opposite direction of the move.
func (s *Session) MoveBlock(from, to int) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}
	n := len(s.doc.Components)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d out of range", models.ErrValidation, from, to)
	}
	if from == to {
		return nil
	}

	blocks := s.doc.Components
	moved := blocks[from]
	blocks = append(blocks[:from], blocks[from+1:]...)
	blocks = append(blocks[:to], append([]models.ContentBlock{moved}, blocks[to:]...)...)
	s.doc.Components = blocks
	models.NormalizeOrder(s.doc.Components)

	switch {
	case s.selected == from:
		s.selected = to
	case s.selected > from && s.selected <= to:
		s.selected--
	case s.selected != NoSelection && s.selected < from && s.selected >= to:
		s.selected++
	}

	s.state = StateDirty
	return nil
}

// RemoveBlock deletes the block at index and renumbers the remainder.
// Removing the selected block clears the selection.
func (s *Session) RemoveBlock(index int) error {
	if s.doc == nil || index < 0 || index >= len(s.doc.Components) {
		return fmt.Errorf("%w: block index %d out of range", models.ErrValidation, index)
	}
	s.doc.Components = append(s.doc.Components[:index], s.doc.Components[index+1:]...)
	models.NormalizeOrder(s.doc.Components)

	switch {
	case s.selected == index:
		s.selected = NoSelection
	case s.selected > index:
		s.selected--
	}

	s.state = StateDirty
	return nil
}

// SetTitle changes the draft's title.
func (s *Session) SetTitle(title string) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}
	s.doc.Title = title
	s.state = StateDirty
	return nil
}

// SetSlug changes the draft's slug. Validation and uniqueness are resolved
// at save/publish time.
func (s *Session) SetSlug(slugValue string) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}
	s.doc.Slug = slugValue
	s.state = StateDirty
	return nil
}

// SetTheme changes the draft's theme.
func (s *Session) SetTheme(theme models.Theme) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", models.ErrValidation, theme)
	}
	s.doc.Theme = theme
	s.state = StateDirty
	return nil
}

// Save persists the draft through the gateway. On success the session
// adopts the stored document and becomes Clean; on failure the draft is
// untouched, the session is Dirty, and the error is surfaced via Message.
func (s *Session) Save(ctx context.Context) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}

	s.state = StateSaving
	saved, err := s.gateway.Save(ctx, s.doc)
	if err != nil {
		s.state = StateDirty
		s.fail("Failed to save changes: " + err.Error())
		return err
	}

	s.doc = saved
	s.state = StateClean
	s.msg = ""
	return nil
}

// Publish saves any pending edits first, then asks the gateway to publish
// under slugValue (empty keeps the draft's slug). If the save step fails the
// publish does not proceed. On failure the session stays Dirty so nothing
// is lost; on success the draft reflects the published document.
func (s *Session) Publish(ctx context.Context, slugValue string) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no document loaded", models.ErrValidation)
	}

	if s.state == StateDirty {
		if err := s.Save(ctx); err != nil {
			return err
		}
	}

	published, err := s.gateway.Publish(ctx, s.doc, slugValue)
	if err != nil {
		s.state = StateDirty
		s.fail("Failed to publish: " + err.Error())
		return err
	}

	s.doc = published
	s.state = StateClean
	s.msg = ""
	return nil
}

// fail records an operator-visible message with the current timestamp.
func (s *Session) fail(msg string) {
	s.msg = msg
	s.msgAt = s.now()
}
