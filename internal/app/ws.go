package app

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ashmarin/minefield-server/internal/mines"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get state
	"o": 2, // open x y
	"f": 2, // flag x y
	"h": 2, // hover x y
	"s": 1, // save <slot>
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func (a *App) executeCommand(session *Session, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "o", "f", "h":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		return session.With(func(m *mines.Minefield) error {
			if !m.Difficulty().Contains(x, y) {
				return errBadPoint
			}
			switch parts[0] {
			case "o":
				m.OpenCell(x, y)
			case "f":
				m.ToggleFlag(x, y)
			case "h":
				m.SetHover(x, y)
			}
			return nil
		})
	case "s":
		var buf bytes.Buffer
		err := session.With(func(m *mines.Minefield) error {
			if m.State() != mines.Running {
				return errors.New("finished game cannot be saved")
			}
			return m.Encode(&buf)
		})
		if err != nil {
			return err
		}
		if err := a.store.Put(parts[1], buf.Bytes()); err != nil {
			return fmt.Errorf("unable to store save: %w", err)
		}
		session.setSlot(parts[1])
		return nil
	}
	return errors.New("invalid command")
}

// handleConnectWs serves a session over a websocket. While the field
// is still generating the connection streams progress frames; once it
// is ready, each text message is a newline-separated command batch
// answered with the full session state.
func (a *App) handleConnectWs(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.WithError(err).Error("ws upgrade failed")
		return
	}
	defer c.Close()

	for errors.Is(session.With(func(*mines.Minefield) error { return nil }), ErrGenerating) {
		if err := c.WriteJSON(map[string]int{
			"progress": session.Progress(),
		}); err != nil {
			a.logger.WithError(err).Warn("ws write failed")
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err := c.WriteJSON(session); err != nil {
		a.logger.WithError(err).Warn("ws write failed")
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				a.logger.WithError(err).Warn("ws read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		for _, command := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			if err := a.executeCommand(session, command); err != nil {
				a.logger.WithError(err).WithField("command", command).
					Warn("ws command rejected")
				if err := c.WriteJSON(map[string]string{
					"error": err.Error(),
				}); err != nil {
					return
				}
				break
			}
		}
		a.reapDeadSlot(session)
		if err := c.WriteJSON(session); err != nil {
			a.logger.WithError(err).Warn("ws write failed")
			return
		}
	}
}
