package websocket

import (
	"github.com/rs/zerolog/log"
)

// directMessage is a message addressed to one user's connections.
type directMessage struct {
	userID  string
	payload []byte
}

// replyMessage is a message addressed to a single connection.
type replyMessage struct {
	client  *Client
	payload []byte
}

// Hub maintains the set of active clients and routes messages to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// A map of user IDs to the set of clients connected as that user.
	subscriptions map[string]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	direct chan directMessage
	reply  chan replyMessage
	done   chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		direct:        make(chan directMessage, 64),
		reply:         make(chan replyMessage, 64),
		done:          make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Str("user_id", client.UserID).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.direct:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					log.Warn().Str("user_id", msg.userID).Msg("Dropping slow websocket client")
					h.drop(client)
				}
			}
		case msg := <-h.reply:
			if _, ok := h.clients[msg.client]; !ok {
				continue
			}
			select {
			case msg.client.Send <- msg.payload:
			default:
				h.drop(msg.client)
			}
		}
	}
}

// Stop ends Run and closes every client's send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Join registers a client. It is a no-op once the hub has stopped.
func (h *Hub) Join(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Leave unregisters a client and closes its Send channel.
func (h *Hub) Leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Reply queues a message for one client only.
func (h *Hub) Reply(client *Client, message []byte) {
	select {
	case h.reply <- replyMessage{client: client, payload: message}:
	case <-h.done:
	}
}

// Notify sends an action message to every connection of userID.
// It satisfies services.Notifier.
func (h *Hub) Notify(userID, action string, payload interface{}) {
	h.SendTo(userID, NewMessage(action, payload))
}

// SendTo queues raw bytes for every connection of userID.
func (h *Hub) SendTo(userID string, message []byte) {
	select {
	case h.direct <- directMessage{userID: userID, payload: message}:
	case <-h.done:
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	h.removeSubscription(client)
	close(client.Send)
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
