package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type StatusResponse struct {
	SessionID       string            `json:"session_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Variant         Variant           `json:"variant"`
	NextPlayer      string            `json:"next_player"`
	Winner          string            `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Status          string            `json:"status"`
	Pieces          []pieceDTO        `json:"pieces"`
	ChainPieceID    int               `json:"chain_piece_id"`
	History         []historyEntryDTO `json:"history"`
	CanUndo         bool              `json:"can_undo"`
	CanRedo         bool              `json:"can_redo"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode            string `json:"mode"`
	Variant         string `json:"variant"`
	HumanColor      string `json:"human_color"`
	RedDifficulty   int    `json:"red_difficulty"`
	BlackDifficulty int    `json:"black_difficulty"`
}

type pieceDTO struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
}

type historyEntryDTO struct {
	Move         Move    `json:"move"`
	Player       string  `json:"player"`
	ElapsedMs    float64 `json:"elapsed_ms"`
	IsAi         bool    `json:"is_ai"`
	TurnComplete bool    `json:"turn_complete"`
}

type historyPayload struct {
	History []historyEntryDTO `json:"history"`
}

type movesPayload struct {
	Moves []Move `json:"moves"`
}

type viewPayload struct {
	Index      int        `json:"index"`
	Pieces     []pieceDTO `json:"pieces"`
	NextPlayer string     `json:"next_player"`
	Status     string     `json:"status"`
}

type resetPayload StatusResponse

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

func main() {
	controller := NewGameController(DefaultGameSettings())
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan GameEvent, 64)
	controller.SetPublisher(func(event GameEvent) {
		select {
		case events <- event:
		default:
		}
	})

	go hub.Run(ctx.Done())
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				switch event.Type {
				case EventGameReset:
					hub.broadcastReset <- resetPayload(controllerStatus(controller))
				default:
					if event.LastMove != nil {
						if entry, ok := controller.LatestHistoryEntry(); ok {
							hub.broadcastHistory <- historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}}
						}
					}
					hub.broadcastStatus <- controllerStatus(controller)
				}
			}
		}
	}()

	// The tick loop is the single place AI searches are started and their
	// results committed.
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				controller.Tick()
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/variants", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]Variant{"variants": Variants()})
	})

	r.Get("/api/moves", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, movesPayload{Moves: controller.LegalMoves()})
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		controller.StartGame(settingsFromDTO(payload.Settings, DefaultGameSettings()))
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Reset(controller.Settings())
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var move Move
		if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, reason := controller.SubmitMove(move)
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": reason})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/undo", func(w http.ResponseWriter, r *http.Request) {
		ok, reason := controller.Undo()
		if !ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": reason})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/redo", func(w http.ResponseWriter, r *http.Request) {
		ok, reason := controller.Redo()
		if !ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": reason})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Post("/api/draw", func(w http.ResponseWriter, r *http.Request) {
		if !controller.AgreeDraw() {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "game not running"})
			return
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/api/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, historyPayload{History: historyToDTO(controller.History())})
	})

	r.Get("/api/history/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
			return
		}
		state, ok := controller.ViewHistoryAt(index)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such history entry"})
			return
		}
		writeJSON(w, http.StatusOK, viewPayload{
			Index:      index,
			Pieces:     piecesToDTO(state),
			NextPlayer: state.ToMove.String(),
			Status:     state.Status.String(),
		})
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Update(*payload.Config)
		}
		if payload.Settings != nil {
			controller.Reset(settingsFromDTO(*payload.Settings, controller.Settings()))
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: settingsToDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerStatus(controller))
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})

	server := &http.Server{Addr: ":8080", Handler: r}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Println("[backend] listening on :8080")
	select {
	case <-sigCtx.Done():
		log.Printf("[backend] shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[backend] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[backend] graceful shutdown failed: %v", err)
	}
	cancel()
}

func serveWS(hub *Hub, controller *GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, id: uuid.NewString(), send: make(chan []byte, 16)}
	hub.Register(client)
	log.Printf("[ws] client %s connected", client.id)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			log.Printf("[ws] client %s disconnected", client.id)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			// Peer moves are untrusted: membership in the local legal set is
			// the only acceptance path. A mismatch is a desync, reported back
			// so the peer can request a full status resync.
			var move Move
			if err := json.Unmarshal(msg.Payload, &move); err != nil {
				client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": "invalid move payload"})})
				continue
			}
			if applied, reason := controller.SubmitMove(move); !applied {
				log.Printf("[ws] client %s move rejected: %s", client.id, reason)
				client.sendJSON(wsMessage{Type: "error", Payload: mustMarshal(map[string]string{"error": reason})})
			}
		}
	}
}

func controllerStatus(controller *GameController) StatusResponse {
	state := controller.State()
	history := controller.History()
	return StatusResponse{
		SessionID:       controller.SessionID(),
		Settings:        settingsToDTO(controller.Settings()),
		Config:          GetConfig(),
		Variant:         controller.Variant(),
		NextPlayer:      state.ToMove.String(),
		Winner:          winnerFromStatus(state.Status),
		BoardSize:       state.Board.Size(),
		Status:          state.Status.String(),
		Pieces:          piecesToDTO(state),
		ChainPieceID:    state.ChainPieceID,
		History:         historyToDTO(history),
		CanUndo:         history.CanUndo(),
		CanRedo:         history.CanRedo(),
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.Variant != "" {
		settings.VariantName = dto.Variant
	}
	if dto.RedDifficulty != 0 {
		settings.RedDifficulty = dto.RedDifficulty
	}
	if dto.BlackDifficulty != 0 {
		settings.BlackDifficulty = dto.BlackDifficulty
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.RedType = PlayerAI
		settings.BlackType = PlayerAI
	case "human_vs_human":
		settings.RedType = PlayerHuman
		settings.BlackType = PlayerHuman
	case "human_vs_ai":
		if dto.HumanColor == "black" {
			settings.RedType = PlayerAI
			settings.BlackType = PlayerHuman
		} else {
			settings.RedType = PlayerHuman
			settings.BlackType = PlayerAI
		}
	}
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	mode := "human_vs_ai"
	humanColor := ""
	switch {
	case settings.RedType == PlayerAI && settings.BlackType == PlayerAI:
		mode = "ai_vs_ai"
	case settings.RedType == PlayerHuman && settings.BlackType == PlayerHuman:
		mode = "human_vs_human"
	case settings.RedType == PlayerHuman:
		humanColor = "red"
	default:
		humanColor = "black"
	}
	return GameSettingsDTO{
		Mode:            mode,
		Variant:         settings.VariantName,
		HumanColor:      humanColor,
		RedDifficulty:   settings.RedDifficulty,
		BlackDifficulty: settings.BlackDifficulty,
	}
}

func piecesToDTO(state GameState) []pieceDTO {
	pieces := make([]pieceDTO, 0, len(state.Pieces))
	for _, piece := range state.Pieces {
		pieces = append(pieces, pieceDTO{
			ID:    piece.ID,
			Color: piece.Color.String(),
			Kind:  piece.Kind.String(),
			Row:   piece.Pos.Row,
			Col:   piece.Pos.Col,
		})
	}
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].ID < pieces[j].ID })
	return pieces
}

func winnerFromStatus(status GameStatus) string {
	switch status {
	case StatusRedWon:
		return "red"
	case StatusBlackWon:
		return "black"
	default:
		return ""
	}
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry))
	}
	return result
}

func historyEntryToDTO(entry HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		Move:         entry.Move,
		Player:       entry.Player.String(),
		ElapsedMs:    entry.ElapsedMs,
		IsAi:         entry.IsAi,
		TurnComplete: entry.TurnComplete,
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
