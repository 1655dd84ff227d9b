package web

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const page = `<!DOCTYPE html>
<html>
<head>
    <title>Chopsticks</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .game-board { max-width: 600px; margin: 0 auto; text-align: center; }
        .hands { display: flex; justify-content: center; margin: 20px 0; }
        .hand { margin: 0 20px; padding: 20px; border: 2px solid #333; border-radius: 10px; min-width: 80px; }
        .hand.alive { background-color: #90EE90; }
        .hand.dead { background-color: #FFB6C1; opacity: 0.5; }
        button { padding: 10px 20px; margin: 5px; font-size: 16px; }
        .status { padding: 10px; margin: 10px 0; background-color: #f0f0f0; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="game-board">
        <h1>Chopsticks</h1>
        <div class="status" id="status">Connecting...</div>
        <h3 id="bot-name">Bot</h3>
        <div class="hands">
            <div class="hand" id="player2-left"></div>
            <div class="hand" id="player2-right"></div>
        </div>
        <div id="turn-info"></div>
        <div class="hands">
            <div class="hand" id="player1-left"></div>
            <div class="hand" id="player1-right"></div>
        </div>
        <h3 id="player-name">You</h3>
        <div id="attacks">
            <button data-attack="ll">left &rarr; left</button>
            <button data-attack="lr">left &rarr; right</button>
            <button data-attack="rl">right &rarr; left</button>
            <button data-attack="rr">right &rarr; right</button>
        </div>
        <button id="reset">New game</button>
    </div>

    <script>
        const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
        const ws = new WebSocket(proto + location.host + '/api/ws');
        const status = document.getElementById('status');

        ws.onopen = () => { status.textContent = 'Connected'; };
        ws.onclose = () => { status.textContent = 'Disconnected'; };
        ws.onmessage = (event) => {
            const msg = JSON.parse(event.data);
            switch (msg.type) {
                case 'game_state': render(msg.data); break;
                case 'game_end':
                    status.textContent = msg.data.reason === 'max_turns'
                        ? 'Turn limit reached'
                        : msg.data.winnerName + ' wins!';
                    break;
                case 'error': status.textContent = 'Error: ' + msg.data.message; break;
            }
        };

        function hand(id, count) {
            const el = document.getElementById(id);
            el.textContent = count;
            el.className = 'hand ' + (count > 0 ? 'alive' : 'dead');
        }

        function render(data) {
            const g = data.game;
            hand('player1-left', g.player1.left);
            hand('player1-right', g.player1.right);
            hand('player2-left', g.player2.left);
            hand('player2-right', g.player2.right);
            document.getElementById('player-name').textContent = g.player1.name;
            document.getElementById('bot-name').textContent = g.player2.name;
            document.getElementById('turn-info').textContent =
                'Turn ' + g.turn + ' of ' + data.maxTurns + (data.botMove ? ' (bot played ' + data.botMove + ')' : '');
            document.querySelectorAll('#attacks button').forEach((b) => {
                b.disabled = g.finished || !g.legalMoves.includes(b.dataset.attack);
            });
            if (!g.finished) status.textContent = 'Your move';
        }

        document.querySelectorAll('#attacks button').forEach((b) => {
            b.onclick = () => ws.send(JSON.stringify({ type: 'attack', data: { attack: b.dataset.attack } }));
        });
        document.getElementById('reset').onclick = () => ws.send(JSON.stringify({ type: 'reset' }));
    </script>
</body>
</html>
`

// ServeHTML serves the browser client.
func ServeHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		log.Error().Err(err).Msg("error writing page")
	}
}
