package notification

import (
	"context"
	"fmt"
	"time"

	"residence/constants"
	"residence/services/logger"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Message is what a Dispatcher delivers. Email and Phone are contact hints for
// the delivery backend; a backend may ignore either.
type Message struct {
	Template  string `json:"template"`
	UserID    uint   `json:"userId"`
	BookingID uint   `json:"bookingId,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Body      string `json:"body"`
}

// Dispatcher sends a message to a tenant.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// Broadcaster is the subset of *melody.Melody used here.
type Broadcaster interface {
	Broadcast(msg []byte) error
}

var _ Broadcaster = (*melody.Melody)(nil)

type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

func broadcast(b Broadcaster, kind string, data interface{}) error {
	if b == nil {
		return fmt.Errorf("broadcaster is nil")
	}
	payload, err := json.Marshal(envelope{Type: kind, Data: data, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return b.Broadcast(payload)
}

// MelodyDispatcher pushes messages to every connected websocket client.
type MelodyDispatcher struct {
	b Broadcaster
}

func NewMelodyDispatcher(b Broadcaster) *MelodyDispatcher {
	return &MelodyDispatcher{b: b}
}

func (d *MelodyDispatcher) Dispatch(_ context.Context, msg Message) error {
	return broadcast(d.b, "notification", msg)
}

// LogDispatcher only writes messages to the log.
type LogDispatcher struct {
	logger logger.Logger
}

func NewLogDispatcher(l logger.Logger) *LogDispatcher {
	return &LogDispatcher{logger: l}
}

func (d *LogDispatcher) Dispatch(_ context.Context, msg Message) error {
	d.logger.Info("notification %s to user %d (%s %s): %s", msg.Template, msg.UserID, msg.Email, msg.Phone, msg.Body)
	return nil
}

// MultiDispatcher hands a message to every dispatcher and returns the first error.
type MultiDispatcher []Dispatcher

func (m MultiDispatcher) Dispatch(ctx context.Context, msg Message) error {
	var first error
	for _, d := range m {
		if err := d.Dispatch(ctx, msg); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// StatusBroadcaster announces room status changes over the websocket hub.
type StatusBroadcaster struct {
	b      Broadcaster
	logger logger.Logger
}

func NewStatusBroadcaster(b Broadcaster, l logger.Logger) *StatusBroadcaster {
	if l == nil {
		l = logger.Nop()
	}
	return &StatusBroadcaster{b: b, logger: l}
}

type roomStatusEvent struct {
	RoomID uint   `json:"roomId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (s *StatusBroadcaster) RoomStatusChanged(_ context.Context, roomID uint, from, to constants.RoomStatus) {
	ev := roomStatusEvent{RoomID: roomID, From: from.String(), To: to.String()}
	if err := broadcast(s.b, "room_status", ev); err != nil {
		s.logger.Warn("broadcast room %d status failed: %v", roomID, err)
	}
}
