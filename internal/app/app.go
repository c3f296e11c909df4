package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ashmarin/minefield-server/internal/middleware"
	"github.com/ashmarin/minefield-server/internal/mines"
	"github.com/ashmarin/minefield-server/internal/storage"
)

type App struct {
	logger *logrus.Logger
	store  *storage.Store

	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(logger *logrus.Logger, store *storage.Store) *App {
	return &App{
		logger:   logger,
		store:    store,
		sessions: make(map[string]*Session),
	}
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.routes(),
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// startSession registers a session and generates its field in the
// background. The field becomes visible to handlers only once
// generation has fully completed.
func (a *App) startSession(o mines.Option) *Session {
	session := &Session{
		Id:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		gen:       mines.NewGenerator(),
	}
	a.register(session)

	go func() {
		m, err := session.gen.Generate(o, createRand())
		if err != nil {
			a.logger.WithError(err).Error("generation failed")
		}
		session.publish(m, err)
	}()

	return session
}

// restoreSession registers a session around an already-built field,
// remembering the slot it was loaded from.
func (a *App) restoreSession(m *mines.Minefield, slot string) *Session {
	session := &Session{
		Id:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		field:     m,
		slot:      slot,
	}
	a.register(session)
	return session
}

func (a *App) register(s *Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[s.Id] = s
}

func (a *App) session(id string) (*Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[id]
	return s, ok
}

// reapDeadSlot deletes the save slot behind a finished game. Deciding
// when a save stops being valid is this tier's job, not the engine's.
func (a *App) reapDeadSlot(s *Session) {
	slot, ok := s.takeDeadSlot()
	if !ok {
		return
	}
	if err := a.store.Delete(slot); err != nil {
		a.logger.WithError(err).WithField("slot", slot).
			Error("unable to delete dead save slot")
		return
	}
	a.logger.WithField("slot", slot).Debug("deleted dead save slot")
}
