package app

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ashmarin/minefield-server/internal/mines"
)

var ErrGenerating = errors.New("minefield is still generating")

// Session owns one minefield for its whole lifetime. All access to the
// field goes through the session lock, so engine operations are never
// interleaved. While generation runs in the background the field is
// nil and only the generator's progress counter is readable.
type Session struct {
	Id        string
	CreatedAt time.Time

	mu     sync.Mutex
	gen    *mines.Generator
	field  *mines.Minefield
	genErr error
	slot   string // save slot backing this game, invalidated on win/loss
}

// Progress reports generation progress without taking the session
// lock; the generator's counter is safe for a concurrent observer.
// Sessions restored from a save have no generator and are complete by
// definition.
func (s *Session) Progress() int {
	if s.gen == nil {
		return 100
	}
	return s.gen.Progress()
}

// With runs fn against the session's minefield. It fails with
// [ErrGenerating] until background generation has published the field
// and with the generation error if generation failed.
func (s *Session) With(fn func(m *mines.Minefield) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.genErr != nil {
		return s.genErr
	}
	if s.field == nil {
		return ErrGenerating
	}
	return fn(s.field)
}

func (s *Session) publish(m *mines.Minefield, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field, s.genErr = m, err
}

func (s *Session) setSlot(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = slot
}

// takeDeadSlot returns the backing save slot exactly once after the
// game has reached a terminal state, so the caller can delete it.
func (s *Session) takeDeadSlot() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.field == nil || s.field.State() == mines.Running || s.slot == "" {
		return "", false
	}
	slot := s.slot
	s.slot = ""
	return slot, true
}

type sessionJSON struct {
	SessionId  string         `json:"session_id"`
	Generating bool           `json:"generating"`
	Progress   int            `json:"progress"`
	Length     int            `json:"length,omitempty"`
	Height     int            `json:"height,omitempty"`
	Density    int            `json:"density,omitempty"`
	NumMines   int            `json:"num_mines,omitempty"`
	NumFlagged int            `json:"num_flagged"`
	HoverX     int            `json:"hover_x"`
	HoverY     int            `json:"hover_y"`
	State      string         `json:"state,omitempty"`
	Grid       mines.GridView `json:"grid,omitempty"`
	CreatedAt  int64          `json:"created_at"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := sessionJSON{
		SessionId: s.Id,
		Progress:  s.Progress(),
		CreatedAt: s.CreatedAt.UnixMilli(),
	}
	if s.field == nil {
		out.Generating = true
		return json.Marshal(out)
	}

	m := s.field
	out.Length = m.Length()
	out.Height = m.Height()
	out.Density = m.Difficulty().Density
	out.NumMines = m.NumMines()
	out.NumFlagged = m.NumFlagged()
	out.HoverX, out.HoverY = m.Hover()
	out.State = m.State().String()
	out.Grid = m.View()
	return json.Marshal(out)
}
