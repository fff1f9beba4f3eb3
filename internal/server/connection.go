package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JoelDorrington/hexglobe/grid"
	"github.com/JoelDorrington/hexglobe/internal/network"
	"github.com/JoelDorrington/hexglobe/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (set after authentication)
	player *models.Player

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, 256),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()

	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypePing:
		c.handlePing()

	case network.MsgTypeSelect:
		c.handleSelect(msg.Payload)

	case network.MsgTypePath:
		c.handlePath(msg.Payload)

	case network.MsgTypeSpawn:
		c.handleSpawn(msg.Payload)

	case network.MsgTypePlaceUnit:
		c.handlePlaceUnit(msg.Payload)

	case network.MsgTypeMoveUnit:
		c.handleMoveUnit(msg.Payload)

	case network.MsgTypeAllegiance:
		c.handleAllegiance(msg.Payload)

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// requireJoined verifies the connection is authenticated before a game
// command is applied.
func (c *Connection) requireJoined() bool {
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return false
	}
	return true
}

// handleJoin handles player join requests
func (c *Connection) handleJoin() {
	if !c.requireJoined() {
		return
	}

	c.player.Connected = true
	c.player.ConnectedAt = time.Now()
	c.player.SessionID = c.server.session.ID

	if err := c.server.session.AddPlayer(c.player, c); err != nil {
		log.Printf("Failed to add player to session: %v", err)
		c.SendError("join_failed", "Failed to join session")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID:      c.player.ID,
			Username:      c.player.Username,
			AllegianceID:  c.player.AllegianceID,
			SessionID:     c.server.session.ID,
			SessionStatus: c.server.session.GetStatus(),
			World:         c.server.session.WorldInfo(),
		},
	})

	c.server.session.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypePlayerJoined,
		Payload: network.PlayerJoinedPayload{
			PlayerID:     c.player.ID,
			Username:     c.player.Username,
			AllegianceID: c.player.AllegianceID,
		},
	})
}

// handleLeave handles player leave requests
func (c *Connection) handleLeave() {
	if c.player != nil {
		c.server.session.RemovePlayer(c.player.ID)

		c.server.session.BroadcastMessage(&network.ServerMessage{
			Type: network.MsgTypePlayerLeft,
			Payload: network.PlayerLeftPayload{
				PlayerID: c.player.ID,
				Username: c.player.Username,
			},
		})
	}
}

// handleSelect resolves a view direction to a cell and returns its state.
func (c *Connection) handleSelect(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.SelectPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_select", "Invalid select payload")
		return
	}

	var result network.SelectResultPayload
	c.server.session.Do(func(w *World) {
		dir := grid.Vec3{X: req.Direction[0], Y: req.Direction[1], Z: req.Direction[2]}
		if node, ok := w.Lookup.Find(dir); ok {
			result.Found = true
			result.Cell = w.CellState(node)
		}
	})

	c.SendMessage(&network.ServerMessage{Type: network.MsgTypeSelectResult, Payload: result})
}

// handlePath answers a shortest-path query between two tiles.
func (c *Connection) handlePath(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.PathPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_path", "Invalid path payload")
		return
	}

	var result network.PathResultPayload
	c.server.session.Do(func(w *World) {
		from, okFrom := w.ResolveTile(req.From)
		to, okTo := w.ResolveTile(req.To)
		if !okFrom || !okTo {
			return
		}
		result.Tiles, result.Cost, result.Found = w.FindPath(from, to)
	})

	c.SendMessage(&network.ServerMessage{Type: network.MsgTypePathResult, Payload: result})
}

// handleSpawn applies a population spawn command.
func (c *Connection) handleSpawn(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.SpawnPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_spawn", "Invalid spawn payload")
		return
	}

	c.applyCellCommand("spawn_rejected", req.Tile, func(w *World, node int32) bool {
		return w.Cells.TrySpawnPopulation(node, req.Amount)
	})
}

// handlePlaceUnit applies a unit placement command.
func (c *Connection) handlePlaceUnit(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.PlaceUnitPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_place_unit", "Invalid place_unit payload")
		return
	}

	c.applyCellCommand("place_rejected", req.Tile, func(w *World, node int32) bool {
		return w.Cells.TryPlaceUnit(node, req.UnitID)
	})
}

// handleMoveUnit applies a unit move command and broadcasts both cells.
func (c *Connection) handleMoveUnit(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.MoveUnitPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_move_unit", "Invalid move_unit payload")
		return
	}

	var ok bool
	var cells []network.CellState
	c.server.session.Do(func(w *World) {
		from, okFrom := w.ResolveTile(req.From)
		to, okTo := w.ResolveTile(req.To)
		if !okFrom || !okTo {
			return
		}
		if ok = w.Cells.TryMoveUnit(from, to, req.UnitID); ok {
			cells = append(cells, w.CellState(from), w.CellState(to))
		}
	})

	if !ok {
		c.SendError("move_rejected", "Unit move was rejected")
		return
	}
	for _, cell := range cells {
		c.server.session.BroadcastMessage(&network.ServerMessage{
			Type:    network.MsgTypeCellState,
			Payload: cell,
		})
	}
}

// handleAllegiance claims a tile for the sender's allegiance.
func (c *Connection) handleAllegiance(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.AllegiancePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_allegiance", "Invalid allegiance payload")
		return
	}

	allegiance := c.player.AllegianceID
	c.applyCellCommand("allegiance_rejected", req.Tile, func(w *World, node int32) bool {
		return w.Cells.TryChangeAllegiance(node, allegiance)
	})
}

// applyCellCommand resolves the tile, runs the mutation on the command
// loop and, on success, broadcasts the cell's new state. Rejections are
// reported only to the sender.
func (c *Connection) applyCellCommand(rejectCode string, tile int64, apply func(w *World, node int32) bool) {
	var ok bool
	var cell network.CellState
	c.server.session.Do(func(w *World) {
		node, found := w.ResolveTile(tile)
		if !found {
			return
		}
		if ok = apply(w, node); ok {
			cell = w.CellState(node)
		}
	})

	if !ok {
		c.SendError(rejectCode, "Command was rejected")
		return
	}
	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type:    network.MsgTypeCellState,
		Payload: cell,
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	if c.authenticated && c.player != nil {
		c.handleLeave()
	}

	close(c.send)
	c.ws.Close()
}
