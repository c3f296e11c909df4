package app

import "net/http"

func (a *App) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/game", a.handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", a.handleGetGame)
	mux.HandleFunc("GET /v1/game/{id}/progress", a.handleProgress)
	mux.HandleFunc("POST /v1/game/{id}/open", a.handleOpen)
	mux.HandleFunc("POST /v1/game/{id}/flag", a.handleFlag)
	mux.HandleFunc("POST /v1/game/{id}/hover", a.handleHover)
	mux.HandleFunc("POST /v1/game/{id}/save", a.handleSave)

	mux.HandleFunc("POST /v1/load", a.handleLoad)
	mux.HandleFunc("GET /v1/saves", a.handleListSaves)
	mux.HandleFunc("DELETE /v1/saves/{slot}", a.handleDeleteSave)

	mux.HandleFunc("/v1/game/{id}/connect", a.handleConnectWs)

	return mux
}
