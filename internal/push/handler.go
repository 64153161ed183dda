package push

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// O painel roda em origem própria; o controle de acesso fica no evento
	// authenticate, não na origem
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler aceita conexões websocket em /ws e registra o cliente no hub.
// A conexão nasce não autenticada; operações sensíveis exigem o evento
// authenticate.
func Handler(hub *Hub, validator TokenValidator, provider UmblerDataProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("push: websocket upgrade failed")
			return
		}

		client := newClient(hub, conn, validator, provider)
		hub.register(client)

		go client.writePump()
		go client.readPump()

		client.sendEvent(&Event{
			Type: EventConnectionEstablished,
			Data: map[string]any{"client_id": client.ID},
		})

		logrus.WithField("client_id", client.ID).Info("push: client connected")
	})
}
