package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"secrethitler/internal/engine"
	"secrethitler/internal/lobby"
	"secrethitler/internal/metrics"
	"secrethitler/internal/protocol"
)

// Hub owns the single board of this process and relays its redacted state
// to every connected client.
type Hub struct {
	mu         sync.Mutex
	board      *engine.Board
	lobby      *lobby.Lobby
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	done       chan struct{}
	finished   bool

	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHub(board *engine.Board, logger *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		board:      board,
		lobby:      lobby.New(),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    m,
	}
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-ctx.Done():
			return nil
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	h.metrics.ClientsConnected.Inc()
	client.logger.Info("client connected")
	h.sendFullState(client)
	h.sendLobbyUpdate()
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.metrics.ClientsConnected.Dec()
		client.logger.Info("client disconnected")
	}
}

func (h *Hub) registered(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clients[client]
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		h.metrics.ClientsConnected.Dec()
	}
}

// Register hands a new client to the hub. It reports false once the hub
// has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	// A client's last messages can still be queued after it unregistered.
	if !h.registered(msg.Client) {
		msg.Client.logger.Debug("dropping message from departed client", "type", msg.Envelope.Type)
		return
	}
	var err error
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		err = h.handleJoin(msg)
	case protocol.MsgReady:
		err = h.handleReady(msg)
	case protocol.MsgStartGame:
		err = h.handleStartGame()
	case protocol.MsgPeek:
		err = h.handlePeek(msg)
	default:
		err = h.handleGameCommand(msg)
	}
	if err != nil {
		h.reject(msg, err)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) error {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		return err
	}
	rejoined, err := h.lobby.Join(msg.Client.SessionID, join.Name)
	if err != nil {
		return err
	}
	if rejoined {
		h.sendFullState(msg.Client)
		return nil
	}
	if err := h.board.AddPlayer(join.Name); err != nil {
		h.lobby.Leave(msg.Client.SessionID)
		return err
	}
	msg.Client.logger.Info("player joined", "name", join.Name)
	h.sendLobbyUpdate()
	h.broadcastDelta()
	return nil
}

func (h *Hub) handleReady(msg IncomingMessage) error {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		return err
	}
	if err := h.lobby.SetReady(msg.Client.SessionID, ready.Ready); err != nil {
		return err
	}
	h.sendLobbyUpdate()
	return nil
}

func (h *Hub) handleStartGame() error {
	if err := h.lobby.CanStart(); err != nil {
		return err
	}
	if err := h.board.BeginGame(); err != nil {
		return err
	}
	if err := h.lobby.Start(); err != nil {
		return err
	}
	h.metrics.GamesStarted.Inc()
	h.logger.Info("game started", "players", len(h.board.Players()))

	h.board.ExtractUpdates()
	h.sendLobbyUpdate()
	h.broadcastFullState()
	return nil
}

func (h *Hub) handlePeek(msg IncomingMessage) error {
	if !h.board.Started() {
		return errNotStarted
	}
	tiles, err := h.board.PeekThree()
	if err != nil {
		return err
	}
	labels := make([]string, len(tiles))
	for i, t := range tiles {
		labels[i] = t.String()
	}
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPeekResult, protocol.PeekResult{Tiles: labels}))
	h.broadcastDelta()
	return nil
}

var (
	errNotStarted     = errors.New("game not started")
	errUnknownCommand = errors.New("unknown command")
)

// handleGameCommand applies one engine command and broadcasts what it
// changed.
func (h *Hub) handleGameCommand(msg IncomingMessage) error {
	if !h.board.Started() {
		return errNotStarted
	}
	libBefore, fasBefore := h.board.Progress()

	if err := h.applyCommand(msg.Envelope); err != nil {
		return err
	}

	if lib, fas := h.board.Progress(); lib != libBefore || fas != fasBefore {
		h.policyEnacted()
	}
	h.broadcastDelta()
	h.checkGameOver()
	return nil
}

func (h *Hub) applyCommand(env protocol.Envelope) error {
	switch env.Type {
	case protocol.MsgDrawThree:
		return h.board.DrawThree()
	case protocol.MsgDiscard:
		var d protocol.DiscardMsg
		if err := env.Decode(&d); err != nil {
			return err
		}
		tile, ok := engine.ParseTile(d.Tile)
		if !ok {
			return fmt.Errorf("unknown tile kind %q", d.Tile)
		}
		return h.board.DiscardTile(tile)
	case protocol.MsgAdvancePresident:
		return h.board.AdvancePresident()
	case protocol.MsgNominate:
		var target protocol.TargetMsg
		if err := env.Decode(&target); err != nil {
			return err
		}
		return h.board.NominateChancellor(target.Name)
	case protocol.MsgInstallChancellor:
		return h.board.InstallChancellor()
	case protocol.MsgEliminate:
		var target protocol.TargetMsg
		if err := env.Decode(&target); err != nil {
			return err
		}
		return h.board.EliminatePlayer(target.Name)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, env.Type)
	}
}

func (h *Hub) policyEnacted() {
	policy, _ := h.board.LatestPolicy()
	h.metrics.PolicyEnacted(policy.String())
	lib, fas := h.board.Progress()
	h.logger.Info("policy enacted", "policy", policy.String(), "liberal", lib, "fascist", fas)

	if power := h.board.CurrentPresidentialPower(); power != engine.PowerNone {
		var president string
		if p := h.board.President(); p != nil {
			president = p.Name
		}
		h.broadcastAll(protocol.MustEnvelope(protocol.MsgPower, protocol.PowerMsg{
			Power:     power.String(),
			President: president,
		}))
	}
}

func (h *Hub) checkGameOver() {
	winner := h.board.Winner()
	if winner == engine.SideNone || h.finished {
		return
	}
	h.finished = true
	outcome := h.board.Outcome()
	h.metrics.GameFinished(winner.String(), outcome.String())
	h.logger.Info("game over", "winner", winner.String(), "outcome", outcome.String())
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, protocol.GameOver{
		Winner:  winner.String(),
		Outcome: outcome.String(),
	}))
}

// reject reports a failed command to its sender only.
func (h *Hub) reject(msg IncomingMessage, err error) {
	code := errorCode(err)
	h.metrics.CommandRejected(code)
	if engine.KindOf(err) == engine.KindInsufficientTiles {
		h.logger.Error("deck exhausted, game cannot continue", "error", err)
	} else {
		h.playerLogger(msg.Client).Debug("command rejected", "type", msg.Envelope.Type, "error", err)
	}
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{
		Code:    code,
		Message: err.Error(),
	}))
}

// playerLogger tags the client's logger with its seated name, if any.
func (h *Hub) playerLogger(client *Client) *slog.Logger {
	if name, ok := h.lobby.NameOf(client.SessionID); ok {
		return client.logger.With("player", name)
	}
	return client.logger
}

func errorCode(err error) string {
	if kind := engine.KindOf(err); kind != 0 {
		return kind.Code()
	}
	switch {
	case errors.Is(err, errNotStarted):
		return "GAME_NOT_STARTED"
	case errors.Is(err, errUnknownCommand):
		return "UNKNOWN_COMMAND"
	case errors.Is(err, lobby.ErrStarted),
		errors.Is(err, lobby.ErrFull),
		errors.Is(err, lobby.ErrNotSeated),
		errors.Is(err, lobby.ErrNotEnough),
		errors.Is(err, lobby.ErrNotAllReady):
		return "LOBBY"
	default:
		return "BAD_REQUEST"
	}
}

func (h *Hub) sendFullState(client *Client) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgFullState, h.board.FullState()))
}

func (h *Hub) broadcastFullState() {
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgFullState, h.board.FullState()))
}

func (h *Hub) broadcastDelta() {
	updates := h.board.ExtractUpdates()
	if len(updates) == 0 {
		return
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgStateDelta, updates))
}

func (h *Hub) sendLobbyUpdate() {
	seats := h.lobby.Seats()
	lps := make([]protocol.LobbyPlayer, len(seats))
	for i, s := range seats {
		lps[i] = protocol.LobbyPlayer{Name: s.Name, Ready: s.Ready}
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		Players: lps,
		Started: h.board.Started(),
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("broadcast marshal error", "error", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			client.logger.Warn("client buffer full")
		}
	}
}

// sendTo queues env for one client. Clients that already unregistered have
// a closed send channel and are skipped.
func (h *Hub) sendTo(client *Client, env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		client.logger.Error("marshal error", "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
		client.logger.Warn("send buffer full, dropping message", "type", env.Type)
	}
}
