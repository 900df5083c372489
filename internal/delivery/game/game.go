package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go_rules/internal/bootstrap"
	"go_rules/internal/domain/game"
	"go_rules/internal/httpresponse"
	gameuc "go_rules/internal/usecase/game"
	"go_rules/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		hub:    newHub(log),
	}
}

func (g *GameHandler) Router(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Route("/games/{gameID}", func(r chi.Router) {
		r.Get("/", g.HandleGetGame)
		r.Post("/moves", g.HandlePlayMove)
		r.Get("/score", g.HandleScore)
		r.Get("/liberties", g.HandleLiberties)
		r.Get("/legal", g.HandleLegalMoves)
		r.Get("/board", g.HandleBoard)
		r.Post("/finish", g.HandleFinish)
		r.Get("/ws", g.HandleWatchGame)
	})
	r.Post("/analyze", g.HandleAnalyze)
	r.Post("/ko", g.HandleKo)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	state, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, state)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandlePlayMove(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var move game.Move
	if err := utils.DecodeJSONRequest(r, &move); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	state, err := g.gameUC.PlayMove(r.Context(), gameID, move)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.broadcast(gameID, state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	resp, err := g.gameUC.Score(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleLiberties(w http.ResponseWriter, r *http.Request) {
	resp, err := g.gameUC.Liberties(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleLegalMoves(w http.ResponseWriter, r *http.Request) {
	resp, err := g.gameUC.LegalMoves(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleBoard serves the plain text diagram of the position.
func (g *GameHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	text, err := g.gameUC.Render(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (g *GameHandler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	state, err := g.gameUC.FinishGame(r.Context(), gameID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.broadcast(gameID, state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req game.AnalyzeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	resp, err := g.gameUC.Analyze(req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleKo(w http.ResponseWriter, r *http.Request) {
	var req game.KoRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	resp, err := g.gameUC.KoFromBoards(req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleWatchGame streams every update of the game to the websocket and
// plays the moves the client sends over it.
func (g *GameHandler) HandleWatchGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := chi.URLParam(r, "gameID")

	state, err := g.gameUC.GetGame(ctx, gameID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}
	writeMu := g.hub.join(gameID, conn)
	g.log.Infof("watcher joined game %s, %d watching", gameID, g.hub.watchers(gameID))
	defer func() {
		g.hub.leave(gameID, conn)
		_ = conn.Close()
	}()

	send := func(msg any) error {
		return g.hub.send(conn, writeMu, msg)
	}
	if err = send(state); err != nil {
		g.log.Error("write error: ", err)
		return
	}

	for {
		var move game.Move
		if err = conn.ReadJSON(&move); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Error("read error: ", err)
			}
			return
		}

		g.log.Infof("move %s %s received for game %s", move.Color, move.Coordinates, gameID)

		state, err := g.gameUC.PlayMove(ctx, gameID, move)
		if err != nil {
			if werr := send(httpresponse.ErrorResponse{ErrorDescription: err.Error()}); werr != nil {
				return
			}
			continue
		}
		g.hub.broadcast(gameID, state)
	}
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	if gameuc.IsClientError(err) {
		g.log.Debugf("request rejected: %v", err)
	} else {
		g.log.Errorf("request failed: %v", err)
	}
	httpresponse.WriteError(w, err)
}
