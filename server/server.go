package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tkahng/chopsticks/bot"
	"github.com/tkahng/chopsticks/config"
	"github.com/tkahng/chopsticks/search"
	"github.com/tkahng/chopsticks/sticks"
	"github.com/tkahng/chopsticks/web"
	"github.com/tkahng/chopsticks/websocket"
)

const cleanupInterval = time.Minute

type Option func(gs *GameServer)

// WithBot replaces the minimax opponent.
func WithBot(strategy bot.Strategy) Option {
	return func(gs *GameServer) {
		if strategy != nil {
			gs.bot = strategy
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(gs *GameServer) {
		gs.logger = logger
	}
}

// GameServer lets human players play the bot over a websocket.
type GameServer struct {
	cfg      *config.Config
	bot      bot.Strategy
	sessions *SessionStore
	clients  *websocket.Manager
	mux      *http.ServeMux
	logger   zerolog.Logger

	startTime time.Time
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func (gs *GameServer) Handler() http.Handler {
	return Cors(gs.cfg.AllowedOrigins, gs.mux)
}

func NewGameServer(cfg *config.Config, options ...Option) *GameServer {
	ctx, cancel := context.WithCancel(context.Background())
	gs := &GameServer{
		cfg:       cfg,
		clients:   websocket.NewManager(),
		mux:       http.NewServeMux(),
		logger:    log.Logger,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
	searcher := search.New(
		search.WithDepth(cfg.SearchDepth),
		search.WithParallel(cfg.SearchParallel),
	)
	gs.bot = bot.Minimax(searcher, bot.Random(bot.NewLockedRand(uint64(time.Now().UnixNano()))))
	for _, option := range options {
		option(gs)
	}
	gs.sessions = NewSessionStore(cfg.MaxSessions, cfg.SessionTimeout, gs.newGame, gs.logger)
	return gs
}

func (gs *GameServer) newGame() *sticks.Game {
	return sticks.NewGame(gs.cfg.PlayerName, gs.cfg.BotName)
}

// Start registers the routes and the background cleanup.
func (gs *GameServer) Start() {
	gs.setupRoutes()
	gs.wg.Add(1)
	go gs.cleanupWorker()
	gs.logger.Info().
		Int("maxSessions", gs.cfg.MaxSessions).
		Int("searchDepth", gs.cfg.SearchDepth).
		Int("maxTurns", gs.cfg.MaxTurns).
		Msg("game server started")
}

// Stop closes every connection and waits for background work.
func (gs *GameServer) Stop() {
	gs.cancel()
	gs.wg.Wait()
	gs.clients.Shutdown()
	gs.logger.Info().Msg("game server stopped")
}

func (gs *GameServer) setupRoutes() {
	gs.mux.Handle("/", PlayerID(http.HandlerFunc(web.ServeHTML)))
	gs.mux.Handle("/api/ws", PlayerID(websocket.ServeWS(websocket.Handler{
		Upgrader:  websocket.DefaultUpgrader(gs.cfg.AllowedOrigins),
		OnCreate:  gs.onCreate,
		OnDestroy: gs.onDestroy,
		Handlers:  []websocket.MessageHandler{gs.handleMessage},
	})))
	gs.mux.HandleFunc("/api/stats", gs.handleStats)
	gs.mux.HandleFunc("/api/health", gs.handleHealth)
	gs.mux.Handle("/metrics", promhttp.Handler())
}

func (gs *GameServer) onCreate(ctx context.Context, cancel context.CancelFunc, c websocket.Client) {
	s, err := gs.sessions.Create(c.ID(), PlayerIDFromContext(ctx))
	if err != nil {
		gs.logger.Warn().Err(err).Str("client", c.ID()).Msg("rejecting connection")
		// the client loops have not started yet, so write directly
		_ = c.Conn().WriteJSON(errorMessage(err))
		cancel()
		_ = c.Close()
		return
	}
	gs.clients.RegisterClient(ctx, cancel, c)

	s.mu.Lock()
	msg := gs.stateMessage(s, nil)
	s.mu.Unlock()
	gs.send(c, msg)
}

func (gs *GameServer) onDestroy(c websocket.Client) {
	gs.clients.UnregisterClient(c)
	gs.sessions.Remove(c.ID())
}

func (gs *GameServer) handleMessage(c websocket.Client, payload []byte) {
	s, ok := gs.sessions.Get(c.ID())
	if !ok {
		gs.send(c, errorMessage(sticks.ErrAlreadyFinished))
		return
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		gs.reject(c, errBadRequest)
		return
	}
	replies, err := gs.processMessage(s, msg)
	if err != nil {
		gs.reject(c, err)
		return
	}
	for _, r := range replies {
		gs.send(c, r)
	}
}

func (gs *GameServer) reject(c websocket.Client, err error) {
	code := errorCode(err)
	RejectedMoves.WithLabelValues(code).Inc()
	c.Logger().Debug().Err(err).Str("code", code).Msg("message rejected")
	gs.send(c, errorMessage(err))
}

func (gs *GameServer) send(c websocket.Client, msg outMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		c.Logger().Error().Err(err).Msg("error encoding message")
		return
	}
	if _, err := c.Write(b); err != nil {
		c.Logger().Debug().Err(err).Msg("error sending message")
	}
}

// cleanupWorker periodically closes sessions that have gone idle.
func (gs *GameServer) cleanupWorker() {
	defer gs.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			gs.cleanupStale(now)
		case <-gs.ctx.Done():
			return
		}
	}
}

func (gs *GameServer) cleanupStale(now time.Time) {
	stale := gs.sessions.RemoveStale(now)
	if len(stale) == 0 {
		return
	}
	ids := make(map[string]bool, len(stale))
	for _, id := range stale {
		ids[id] = true
	}
	for _, c := range gs.clients.Clients() {
		if ids[c.ID()] {
			gs.clients.UnregisterClient(c)
		}
	}
}

func (gs *GameServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{
		"activeGames":    gs.sessions.Len(),
		"clients":        gs.clients.Len(),
		"availableSlots": gs.sessions.AvailableSlots(),
		"searchDepth":    gs.cfg.SearchDepth,
		"timestamp":      time.Now().Unix(),
	}
	writeJSON(w, stats)
}

func (gs *GameServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(gs.startTime).String(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}
