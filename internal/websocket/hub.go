package websocket

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"flashcard-service/internal/constants"
	"flashcard-service/internal/game"
	"flashcard-service/internal/models"
	"flashcard-service/pkg/messaging"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type TopicSource interface {
	Subscribe(ctx context.Context, topicID string) (<-chan []game.VocabularyItem, <-chan error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, queueName string, payload any) error
}

type ClientMessage struct {
	Client  *Client
	Command Command
	Err     error
}

type playerSession struct {
	client  *Client
	game    *game.Session
	cancel  context.CancelFunc
	loaded  bool
	loadErr error
	status  string
}

// Hub is the single event loop of the service. Client frames, topic updates,
// countdown ticks and feedback delays all run on the goroutine executing Run,
// so a game.Session is only ever touched from there.
type Hub struct {
	Register      chan *Client
	Unregister    chan *Client
	HandleMessage chan *ClientMessage
	deferred      chan func()

	sessions  map[*Client]*playerSession
	topics    TopicSource
	publisher EventPublisher
	cfg       game.Config
	newRand   func() game.Rand

	done     chan struct{}
	stopOnce sync.Once
}

type HubOption func(*Hub)

func WithPublisher(p EventPublisher) HubOption {
	return func(h *Hub) { h.publisher = p }
}

func WithRand(newRand func() game.Rand) HubOption {
	return func(h *Hub) { h.newRand = newRand }
}

func NewHub(topics TopicSource, cfg game.Config, opts ...HubOption) *Hub {
	h := &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		HandleMessage: make(chan *ClientMessage),
		deferred:      make(chan func(), 64),
		sessions:      make(map[*Client]*playerSession),
		topics:        topics,
		cfg:           cfg,
		newRand: func() game.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case msg := <-h.HandleMessage:
			h.handleClientMessage(msg)

		case f := <-h.deferred:
			f()

		case <-h.done:
			for client := range h.sessions {
				h.unregisterClient(client)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Join hands a connected client to the hub. It reports false once the hub
// has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) dispatch(msg *ClientMessage) bool {
	select {
	case h.HandleMessage <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) post(f func()) {
	select {
	case h.deferred <- f:
	case <-h.done:
	}
}

// AfterFunc implements game.Scheduler on top of the hub loop.
func (h *Hub) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, func() { h.post(f) })
	return t.Stop
}

func (h *Hub) registerClient(client *Client) {
	ctx, cancel := context.WithCancel(context.Background())
	ps := &playerSession{
		client: client,
		cancel: cancel,
		status: constants.SessionStatusConnected,
	}
	ps.game = game.NewSession(h.cfg, h.newRand(), h, func(ev game.Event) {
		h.handleEvent(ps, ev)
	})
	h.sessions[client] = ps

	log.Info().
		Str("session_id", client.SessionID).
		Str("user_id", client.UserID).
		Str("topic_id", client.TopicID).
		Msg("Client registered")

	client.SendMessage(MessageTypeConnected, ConnectedPayload{
		SessionID: client.SessionID,
		UserID:    client.UserID,
		TopicID:   client.TopicID,
		Status:    ps.status,
	})

	updates, errs := h.topics.Subscribe(ctx, client.TopicID)
	go h.forward(ps, updates, errs)
}

// forward moves subscription results onto the hub goroutine.
func (h *Hub) forward(ps *playerSession, updates <-chan []game.VocabularyItem, errs <-chan error) {
	for updates != nil || errs != nil {
		select {
		case items, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			h.post(func() { h.topicLoaded(ps, items) })
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			h.post(func() { h.loadFailed(ps, err) })
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	ps, ok := h.sessions[client]
	if !ok {
		return
	}
	delete(h.sessions, client)
	ps.cancel()
	ps.game.Stop()
	close(client.Send)

	log.Info().Str("session_id", client.SessionID).Str("status", ps.status).Msg("Client unregistered")
}

func (h *Hub) active(ps *playerSession) bool {
	return h.sessions[ps.client] == ps
}

func (h *Hub) topicLoaded(ps *playerSession, items []game.VocabularyItem) {
	if !h.active(ps) {
		return
	}
	wasRunning := ps.game.Running()
	ps.game.Load(items)
	ps.loaded = true
	ps.loadErr = nil
	ps.status = constants.SessionStatusLoaded

	log.Debug().
		Str("session_id", ps.client.SessionID).
		Int("word_count", len(items)).
		Bool("reset", wasRunning).
		Msg("Topic loaded")
	ps.client.SendMessage(MessageTypeTopicLoaded, TopicLoadedPayload{WordCount: len(items)})
}

func (h *Hub) loadFailed(ps *playerSession, err error) {
	if !h.active(ps) {
		return
	}
	ps.loadErr = err
	log.Error().Err(err).
		Str("session_id", ps.client.SessionID).
		Str("topic_id", ps.client.TopicID).
		Msg("Failed to load topic")
	ps.client.SendError(constants.ErrorCodeDataLoad, err.Error())
}

func (h *Hub) handleClientMessage(msg *ClientMessage) {
	ps, ok := h.sessions[msg.Client]
	if !ok {
		return
	}
	client := msg.Client
	if msg.Err != nil {
		client.SendError(constants.ErrorCodeInvalidMessage, msg.Err.Error())
		return
	}

	var err error
	switch msg.Command.Type {
	case MessageTypeStart:
		h.handleStart(ps)
		return
	case MessageTypeSelectOption:
		err = ps.game.SelectOption(msg.Command.Option)
	case MessageTypeSubmitAnswer:
		err = ps.game.SubmitAnswer(msg.Command.Answer)
	case MessageTypeSelectLeft:
		err = ps.game.SelectLeft(msg.Command.Index)
	case MessageTypeSelectRight:
		err = ps.game.SelectRight(msg.Command.Index)
	case MessageTypeState:
		client.SendMessage(MessageTypeState, newStatePayload(ps.game.State()))
	case MessageTypePing:
		client.SendMessage(MessageTypePong, nil)
	}

	if err != nil {
		client.SendError(actionErrorCode(err), err.Error())
	}
}

func actionErrorCode(err error) string {
	if errors.Is(err, game.ErrNotStarted) {
		return constants.ErrorCodeNotReady
	}
	return constants.ErrorCodeInvalidAction
}

func (h *Hub) handleStart(ps *playerSession) {
	client := ps.client
	switch {
	case ps.loadErr != nil:
		client.SendError(constants.ErrorCodeDataLoad, ps.loadErr.Error())
		return
	case !ps.loaded:
		client.SendError(constants.ErrorCodeNotReady, "topic is still loading")
		return
	}

	if err := ps.game.Start(); err != nil {
		client.SendError(constants.ErrorCodeNotReady, err.Error())
	}
}

func (h *Hub) handleEvent(ps *playerSession, ev game.Event) {
	client := ps.client
	msg := eventMessage(ev)
	client.SendMessage(msg.Type, msg.Payload)

	switch ev := ev.(type) {
	case game.StartedEvent:
		ps.status = constants.SessionStatusPlaying
		log.Info().
			Str("session_id", client.SessionID).
			Str("topic_id", client.TopicID).
			Int("word_count", ev.WordCount).
			Msg("Game started")
		h.publish(messaging.QueueSessionStarted, models.SessionEvent{
			SessionID:  client.SessionID,
			UserID:     client.UserID,
			TopicID:    client.TopicID,
			WordCount:  ev.WordCount,
			OccurredAt: time.Now().UTC(),
		})

	case game.GameOverEvent:
		ps.status = constants.SessionStatusFinished
		summary := SummaryModel(ev.Summary)
		log.Info().
			Str("session_id", client.SessionID).
			Str("outcome", summary.Outcome).
			Int("final_score", summary.FinalScore).
			Msg("Game over")
		h.publish(messaging.QueueSessionFinished, models.SessionEvent{
			SessionID:  client.SessionID,
			UserID:     client.UserID,
			TopicID:    client.TopicID,
			WordCount:  ps.game.State().WordCount,
			OccurredAt: time.Now().UTC(),
			Summary:    &summary,
		})
	}
}

func (h *Hub) publish(queue string, event models.SessionEvent) {
	if h.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.publisher.PublishJSON(ctx, queue, event); err != nil {
			log.Warn().Err(err).Str("queue", queue).Str("session_id", event.SessionID).Msg("Failed to publish session event")
		}
	}()
}
