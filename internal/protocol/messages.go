package protocol

// HelloMsg opens a session.
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AgentName       string `json:"agent_name"`
}

// WelcomeMsg acknowledges a HELLO; the session is initialized but the agent
// is not yet placed in the world.
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	AgentID         string      `json:"agent_id"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	TickRateHz int   `json:"tick_rate_hz"`
	Seed       int64 `json:"seed"`
}

// JoinedMsg signals the agent is fully in the world and commands are accepted.
type JoinedMsg struct {
	Type    string `json:"type"`
	AgentID string `json:"agent_id"`
	Pos     [3]int `json:"pos"`
}

// CommandMsg fires a console command at the world.
type CommandMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Text            string `json:"text"`
}

// QueryMsg requests a block lookup. Seq correlates the BLOCK reply.
// Property, when set, asks for a single named block-state property.
type QueryMsg struct {
	Type     string `json:"type"`
	Seq      uint64 `json:"seq"`
	Pos      [3]int `json:"pos"`
	Property string `json:"property,omitempty"`
}

// BlockMsg answers a QUERY.
type BlockMsg struct {
	Type    string            `json:"type"`
	Seq     uint64            `json:"seq"`
	Present bool              `json:"present"`
	Block   string            `json:"block,omitempty"`
	States  map[string]string `json:"states,omitempty"`
}

// ChatMsg is an inbound chat line from the world.
type ChatMsg struct {
	Type string `json:"type"`
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

// ErrorMsg reports a command or query failure.
type ErrorMsg struct {
	Type    string `json:"type"`
	Seq     uint64 `json:"seq,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
