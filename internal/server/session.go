package server

import (
	"log"
	"sync"
	"time"

	"github.com/JoelDorrington/hexglobe/internal/config"
	"github.com/JoelDorrington/hexglobe/internal/network"
	"github.com/JoelDorrington/hexglobe/pkg/models"
)

// Session represents a game session. All reads and writes of the world's
// mutable state execute on the session's run loop, fed by a serialized
// command queue: that loop is the single writer the state store
// requires, so handlers never touch World fields directly.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players     map[string]*models.Player // playerID -> Player
	connections map[string]*Connection    // playerID -> Connection
	mu          sync.RWMutex

	// Authoritative game state, owned by the run loop
	world    *World
	commands chan func(*World)

	status         network.SessionStatus
	nextAllegiance int32

	config *config.Config
	done   chan struct{}
}

// NewSession creates a new game session and starts its command loop.
func NewSession(id string, cfg *config.Config) (*Session, error) {
	log.Printf("Creating session: %s", id)

	world, err := NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]*Connection),
		world:       world,
		commands:    make(chan func(*World), 256),
		config:      cfg,
		done:        make(chan struct{}),
		status: network.SessionStatus{
			State:      "running",
			MaxPlayers: cfg.Session.MaxPlayers,
		},
	}

	go session.run()

	log.Printf("Session %s created with %d cells", id, world.Topo.NodeCount())
	return session, nil
}

// run is the authoritative loop: it alone applies queued commands to the
// world and advances the server tick.
func (s *Session) run() {
	interval := time.Second / time.Duration(s.config.Server.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-s.commands:
			cmd(s.world)

		case <-ticker.C:
			s.mu.Lock()
			s.status.ServerTick++
			s.mu.Unlock()

		case <-s.done:
			return
		}
	}
}

// Do runs fn on the command loop and blocks until it has executed.
// Returns false if the session has stopped.
func (s *Session) Do(fn func(*World)) bool {
	doneCh := make(chan struct{})
	wrapped := func(w *World) {
		fn(w)
		close(doneCh)
	}
	select {
	case s.commands <- wrapped:
	case <-s.done:
		return false
	}
	select {
	case <-doneCh:
		return true
	case <-s.done:
		return false
	}
}

// Stop terminates the command loop.
func (s *Session) Stop() {
	close(s.done)
}

// WorldInfo describes the current topology build.
func (s *Session) WorldInfo() network.WorldInfo {
	// Topology fields are immutable, safe to read from any goroutine.
	return network.WorldInfo{
		NodeCount: s.world.Topo.NodeCount(),
		Checksum:  s.world.Topo.Checksum(),
	}
}

// AddPlayer adds a player to the session and assigns its allegiance id.
func (s *Session) AddPlayer(player *models.Player, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.players[player.ID]; ok {
		player.AllegianceID = existing.AllegianceID
	} else {
		player.AllegianceID = s.nextAllegiance
		s.nextAllegiance++
	}

	s.players[player.ID] = player
	s.connections[player.ID] = conn
	s.status.PlayerCount = len(s.players)

	log.Printf("Player %s (%s) joined session %s as allegiance %d",
		player.Username, player.ID, s.ID, player.AllegianceID)
	return nil
}

// RemovePlayer removes a player from the session
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, exists := s.players[playerID]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
		delete(s.players, playerID)
		delete(s.connections, playerID)
		s.status.PlayerCount = len(s.players)
	}
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified connection
func (s *Session) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}

// GetStatus returns the current session status
func (s *Session) GetStatus() network.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Uptime = int64(time.Since(s.CreatedAt).Seconds())
	return status
}
