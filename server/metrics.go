package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chopsticks_active_sessions",
			Help: "Games currently being played",
		},
	)
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chopsticks_moves_total",
			Help: "Applied moves by side",
		},
		[]string{"side"},
	)
	RejectedMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chopsticks_rejected_messages_total",
			Help: "Client messages answered with an error",
		},
		[]string{"code"},
	)
	GamesEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chopsticks_games_ended_total",
			Help: "Finished games by reason and winner",
		},
		[]string{"reason", "winner"},
	)
)

func init() {
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(Moves)
	prometheus.MustRegister(RejectedMoves)
	prometheus.MustRegister(GamesEnded)
}
