package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/auth"
	"go.uber.org/zap"
)

// graphql-transport-ws protocol message types.
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{
	Subprotocols: []string{"graphql-transport-ws"},
	CheckOrigin:  func(r *http.Request) bool { return true },
}

// wsConn serializes writes to one websocket client and tracks its active
// subscriptions so they can be cancelled individually or all at once.
type wsConn struct {
	conn  *websocket.Conn
	mu    sync.Mutex
	subs  map[string]context.CancelFunc
	ident *auth.Identity
}

func (c *wsConn) send(msg wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *wsConn) addSub(id string, cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[id] = cancel
}

func (c *wsConn) cancelSub(id string) {
	c.mu.Lock()
	cancel := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *wsConn) cancelAll() {
	c.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(c.subs))
	for _, cancel := range c.subs {
		cancels = append(cancels, cancel)
	}
	c.subs = make(map[string]context.CancelFunc)
	c.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &wsConn{conn: conn, subs: make(map[string]context.CancelFunc)}
	defer func() {
		c.cancelAll()
		conn.Close()
	}()

	// Identity may arrive on the upgrade request; connection_init can also
	// carry a token in its payload.
	ident, err := s.verifier.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		c.send(wsMessage{Type: msgError, Payload: errorPayload("invalid authorization token")})
		return
	}
	c.ident = ident

	acked := false
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case msgConnectionInit:
			if token := initToken(msg.Payload); token != "" {
				ident, err := s.verifier.FromHeader(token)
				if err != nil {
					c.send(wsMessage{Type: msgError, Payload: errorPayload("invalid authorization token")})
					return
				}
				c.ident = ident
			}
			acked = true
			c.send(wsMessage{Type: msgConnectionAck})

		case msgPing:
			c.send(wsMessage{Type: msgPong})

		case msgSubscribe:
			if !acked {
				c.send(wsMessage{Type: msgError, ID: msg.ID, Payload: errorPayload("connection not initialised")})
				continue
			}
			s.startSubscription(r.Context(), c, msg)

		case msgComplete:
			c.cancelSub(msg.ID)
		}
	}
}

func (s *Server) startSubscription(parent context.Context, c *wsConn, msg wsMessage) {
	var req graphQLRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.send(wsMessage{Type: msgError, ID: msg.ID, Payload: errorPayload("invalid subscribe payload")})
		return
	}

	ctx, cancel := context.WithCancel(parent)
	c.addSub(msg.ID, cancel)

	ctx = s.requestContext(ctx, c.ident)
	results := graphql.Subscribe(graphql.Params{
		Schema:         s.schema.Graph(),
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	go func() {
		defer c.cancelSub(msg.ID)
		for result := range results {
			payload, err := json.Marshal(result)
			if err != nil {
				s.logger.Error("marshalling subscription result", zap.Error(err))
				return
			}
			if err := c.send(wsMessage{Type: msgNext, ID: msg.ID, Payload: payload}); err != nil {
				return
			}
		}
		c.send(wsMessage{Type: msgComplete, ID: msg.ID})
	}()
}

// initToken pulls a bearer token out of a connection_init payload.
func initToken(payload json.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	var p struct {
		Authorization string `json:"Authorization"`
		Token         string `json:"token"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	if p.Authorization != "" {
		return p.Authorization
	}
	if p.Token == "" {
		return ""
	}
	if strings.HasPrefix(p.Token, "Bearer ") {
		return p.Token
	}
	return "Bearer " + p.Token
}

func errorPayload(message string) json.RawMessage {
	raw, _ := json.Marshal([]map[string]string{{"message": message}})
	return raw
}
