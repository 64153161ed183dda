package push

// Tipos de evento trafegados no canal websocket
const (
	EventConnectionEstablished = "connection_established"
	EventAuthenticate          = "authenticate"
	EventAuthenticated         = "authenticated"
	EventRequestUmblerData     = "request_umbler_data"
	EventUmblerData            = "umbler_data"
	EventSubscribeUpdates      = "subscribe_updates"
	EventUnsubscribeUpdates    = "unsubscribe_updates"
	EventUmblerUpdate          = "umbler_update"
	EventError                 = "error"
)

// RoomUpdates é a sala onde os eventos de ingestão são entregues
const RoomUpdates = "updates"

// Event é o envelope das mensagens enviadas aos clientes
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// inboundEvent é o envelope das mensagens recebidas dos clientes. O token do
// authenticate é aceito tanto no topo quanto dentro de data.
type inboundEvent struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
	Data  struct {
		Token string `json:"token,omitempty"`
	} `json:"data,omitempty"`
}

func (e *inboundEvent) token() string {
	if e.Token != "" {
		return e.Token
	}
	return e.Data.Token
}
