package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/ashmarin/minefield-server/internal/mines"
	"github.com/ashmarin/minefield-server/internal/storage"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Length  int `schema:"length,required"`
	Height  int `schema:"height,required"`
	Density int `schema:"density,required"`
}

type PosParams struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

type SlotParams struct {
	Slot string `schema:"slot,required"`
}

var errBadPoint = errors.New("cell coordinates outside the field")

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func (a *App) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	option := mines.Option{
		Length:  params.Length,
		Height:  params.Height,
		Density: params.Density,
	}
	if err := option.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	a.logger.WithField("option", option.String()).Info("new game")
	session := a.startSession(option)

	w.WriteHeader(http.StatusCreated)
	if _, err := sendJSON(w, session); err != nil {
		a.logger.WithError(err).Error("unable to send session")
	}
}

func (a *App) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		a.logger.WithError(err).Error("unable to send session")
	}
}

func (a *App) handleProgress(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sendJSON(w, map[string]int{"progress": session.Progress()})
}

// mutate runs one engine operation against the session's field and
// replies with the updated session state.
func (a *App) mutate(
	w http.ResponseWriter, r *http.Request, op func(m *mines.Minefield) error,
) {
	session, ok := a.session(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	err := session.With(op)
	switch {
	case errors.Is(err, ErrGenerating):
		w.WriteHeader(http.StatusConflict)
		return
	case errors.Is(err, errBadPoint):
		w.WriteHeader(http.StatusBadRequest)
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("operation failed")
		return
	}
	a.reapDeadSlot(session)
	if _, err := sendJSON(w, session); err != nil {
		a.logger.WithError(err).Error("unable to send session")
	}
}

func decodePos(r *http.Request) (PosParams, error) {
	var pos PosParams
	err := dec.Decode(&pos, r.URL.Query())
	return pos, err
}

func (a *App) handleOpen(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePos(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.mutate(w, r, func(m *mines.Minefield) error {
		if !m.Difficulty().Contains(pos.X, pos.Y) {
			return errBadPoint
		}
		m.OpenCell(pos.X, pos.Y)
		return nil
	})
}

func (a *App) handleFlag(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePos(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.mutate(w, r, func(m *mines.Minefield) error {
		if !m.Difficulty().Contains(pos.X, pos.Y) {
			return errBadPoint
		}
		m.ToggleFlag(pos.X, pos.Y)
		return nil
	})
}

func (a *App) handleHover(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePos(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.mutate(w, r, func(m *mines.Minefield) error {
		if !m.Difficulty().Contains(pos.X, pos.Y) {
			return errBadPoint
		}
		m.SetHover(pos.X, pos.Y)
		return nil
	})
}

func (a *App) handleSave(w http.ResponseWriter, r *http.Request) {
	var params SlotParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, ok := a.session(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	err := session.With(func(m *mines.Minefield) error {
		if m.State() != mines.Running {
			return errors.New("finished game cannot be saved")
		}
		return m.Encode(&buf)
	})
	switch {
	case errors.Is(err, ErrGenerating):
		w.WriteHeader(http.StatusConflict)
		return
	case err != nil:
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(err.Error()))
		return
	}

	if err := a.store.Put(params.Slot, buf.Bytes()); err != nil {
		if errors.Is(err, storage.ErrBadSlot) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			a.logger.WithError(err).Error("unable to store save")
		}
		return
	}
	session.setSlot(params.Slot)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleLoad(w http.ResponseWriter, r *http.Request) {
	var params SlotParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	data, err := a.store.Get(params.Slot)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrBadSlot):
		w.WriteHeader(http.StatusBadRequest)
		return
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to read save")
		return
	}

	m, err := mines.Decode(bytes.NewReader(data))
	if err != nil {
		// The slot exists but does not parse; surface it as corrupt
		// rather than pretending there is no save.
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(err.Error()))
		return
	}

	session := a.restoreSession(m, params.Slot)
	a.logger.WithField("slot", params.Slot).Info("loaded game")

	w.WriteHeader(http.StatusCreated)
	if _, err := sendJSON(w, session); err != nil {
		a.logger.WithError(err).Error("unable to send session")
	}
}

func (a *App) handleListSaves(w http.ResponseWriter, r *http.Request) {
	infos, err := a.store.List()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to list saves")
		return
	}
	sendJSON(w, infos)
}

func (a *App) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	slot := r.PathValue("slot")
	if err := a.store.Delete(slot); err != nil {
		if errors.Is(err, storage.ErrBadSlot) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			a.logger.WithError(err).Error("unable to delete save")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
