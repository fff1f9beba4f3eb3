package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin       = "join"
	MsgTypeLeave      = "leave"
	MsgTypePing       = "ping"
	MsgTypeSelect     = "select"
	MsgTypePath       = "path"
	MsgTypeSpawn      = "spawn"
	MsgTypePlaceUnit  = "place_unit"
	MsgTypeMoveUnit   = "move_unit"
	MsgTypeAllegiance = "allegiance"
)

// Message types - Server → Client
const (
	MsgTypeWelcome      = "welcome"
	MsgTypePlayerJoined = "player_joined"
	MsgTypePlayerLeft   = "player_left"
	MsgTypeSelectResult = "select_result"
	MsgTypePathResult   = "path_result"
	MsgTypeCellState    = "cell_state"
	MsgTypeError        = "error"
	MsgTypePong         = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// SelectPayload asks which cell a view ray points at.
type SelectPayload struct {
	Direction [3]float64 `json:"direction"`
}

// PathPayload requests a shortest path between two tiles.
type PathPayload struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// SpawnPayload adds population to a tile.
type SpawnPayload struct {
	Tile   int64   `json:"tile"`
	Amount float64 `json:"amount"`
}

// PlaceUnitPayload puts a unit onto an empty tile.
type PlaceUnitPayload struct {
	Tile   int64 `json:"tile"`
	UnitID int32 `json:"unit_id"`
}

// MoveUnitPayload moves a unit between tiles.
type MoveUnitPayload struct {
	From   int64 `json:"from"`
	To     int64 `json:"to"`
	UnitID int32 `json:"unit_id"`
}

// AllegiancePayload claims a tile for the sending player's allegiance.
type AllegiancePayload struct {
	Tile int64 `json:"tile"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID      string        `json:"player_id"`
	Username      string        `json:"username"`
	AllegianceID  int32         `json:"allegiance_id"`
	SessionID     string        `json:"session_id"`
	SessionStatus SessionStatus `json:"session_status"`
	World         WorldInfo     `json:"world"`
}

// WorldInfo describes the built topology so clients can verify they
// generated the same globe.
type WorldInfo struct {
	NodeCount int    `json:"node_count"`
	Checksum  uint64 `json:"checksum,string"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID     string `json:"player_id"`
	Username     string `json:"username"`
	AllegianceID int32  `json:"allegiance_id"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// CellState is one cell's gameplay state as seen by clients. Tile is the
// opaque id; Node the dense index valid for this topology build.
type CellState struct {
	Tile       int64   `json:"tile"`
	Node       int32   `json:"node"`
	Population float64 `json:"population"`
	MaxPop     int32   `json:"max_pop"`
	Allegiance int32   `json:"allegiance"`
	HasUnit    bool    `json:"has_unit"`
	UnitID     int32   `json:"unit_id"`
}

// SelectResultPayload answers a select query.
type SelectResultPayload struct {
	Found bool      `json:"found"`
	Cell  CellState `json:"cell,omitempty"`
}

// PathResultPayload answers a path query with tile ids, start and goal
// inclusive.
type PathResultPayload struct {
	Found bool    `json:"found"`
	Cost  float64 `json:"cost"`
	Tiles []int64 `json:"tiles"`
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State       string `json:"state"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	ServerTick  int64  `json:"server_tick"`
	Uptime      int64  `json:"uptime"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
