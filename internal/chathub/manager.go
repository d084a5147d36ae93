package chathub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"
)

var ErrHubStopped = errors.New("hub stopped")

// Envelope is an inbound frame tagged with the session that sent it. A
// Disconnect envelope closes the session after every frame it queued
// before.
type Envelope struct {
	Client     Client
	Msg        models.Inbound
	Disconnect bool
}

// IdentityVerifier turns a provider token into an identity.
type IdentityVerifier interface {
	Verify(token string) (models.Identity, error)
}

// Notifier is told about every new report. Calls run in their own goroutine.
type Notifier interface {
	NotifyNewReport(report models.Report)
}

// Options configures a ManagerService. Zero values fall back to permissive
// defaults and an offline mirror.
type Options struct {
	Mirror   *storage.Mirror
	Guard    Guard
	Policy   StatusPolicy
	Verifier IdentityVerifier
	Notifier Notifier
	Log      *slog.Logger
	Now      func() time.Time
}

// ManagerService is the relay's event loop. Every session, table and room
// mutation happens on the goroutine running Run, one event at a time, so
// none of that state is locked.
type ManagerService struct {
	Clients map[string]Client
	Tables  *Tables
	Rooms   *Rooms

	IncomingCh chan Envelope
	RegisterCh chan Client
	commandCh  chan func()
	done       chan struct{}

	mirror   *storage.Mirror
	guard    Guard
	policy   StatusPolicy
	verifier IdentityVerifier
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time

	sessions atomic.Int64
}

func NewManagerService(tables *Tables, opts Options) *ManagerService {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Mirror == nil {
		opts.Mirror = storage.NewOfflineMirror(opts.Log)
	}
	if opts.Guard == nil {
		opts.Guard = AllowAll{}
	}
	if opts.Policy == nil {
		opts.Policy = AnyTransition{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ManagerService{
		Clients:    make(map[string]Client),
		Tables:     tables,
		Rooms:      NewRooms(),
		IncomingCh: make(chan Envelope, config.HubInboxBuffer),
		RegisterCh: make(chan Client),
		commandCh:  make(chan func()),
		done:       make(chan struct{}),
		mirror:     opts.Mirror,
		guard:      opts.Guard,
		policy:     opts.Policy,
		verifier:   opts.Verifier,
		notifier:   opts.Notifier,
		log:        opts.Log,
		now:        opts.Now,
	}
}

// Run processes events until ctx is cancelled, then closes every session.
func (m *ManagerService) Run(ctx context.Context) {
	defer close(m.done)
	m.log.Info("Chat hub started", "offline", m.mirror.Offline())

	for {
		select {
		case <-ctx.Done():
			for _, c := range m.Clients {
				m.RemoveClient(c)
			}
			m.log.Info("Chat hub stopped")
			return
		case c := <-m.RegisterCh:
			m.AddClient(c)
		case env := <-m.IncomingCh:
			if env.Disconnect {
				m.RemoveClient(env.Client)
				continue
			}
			m.HandleInbound(env.Client, env.Msg)
		case fn := <-m.commandCh:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (m *ManagerService) Done() <-chan struct{} {
	return m.done
}

// SessionCount is safe to call from any goroutine.
func (m *ManagerService) SessionCount() int {
	return int(m.sessions.Load())
}

// Offline reports whether persistence is disabled for this process.
func (m *ManagerService) Offline() bool {
	return m.mirror.Offline()
}

// Do runs fn on the hub goroutine and waits for it to finish.
func (m *ManagerService) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	select {
	case m.commandCh <- func() { fn(); close(finished) }:
	case <-m.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleInbound dispatches one frame. Frames from sessions that are no longer
// registered are dropped.
func (m *ManagerService) HandleInbound(c Client, msg models.Inbound) {
	if _, ok := m.Clients[c.GetSessionID()]; !ok {
		return
	}
	if err := m.guard.Allow(c, msg.Event); err != nil {
		m.log.Warn("Command rejected", "session", c.GetSessionID(), "event", msg.Event, "error", err)
		m.send(c, models.Outbound{Event: models.EventCommandRejected, Data: models.ErrorPayload{Event: msg.Event, Error: err.Error()}})
		return
	}

	switch msg.Event {
	case models.EventAuthenticate:
		var p models.AuthenticatePayload
		if m.decode(c, msg, &p) {
			m.authenticate(c, p)
		}
	case models.EventSubmitReport:
		var p models.Report
		if m.decode(c, msg, &p) {
			m.submitReport(c, p)
		}
	case models.EventUpdateReport:
		var p models.UpdateReportPayload
		if m.decode(c, msg, &p) {
			m.updateReport(c, p)
		}
	case models.EventJoinReportChat:
		var p models.JoinChatPayload
		if m.decode(c, msg, &p) {
			m.joinChat(c, p.ReportID)
		}
	case models.EventLeaveReportChat:
		m.Rooms.Leave(c)
	case models.EventReportChatMessage:
		var p models.ChatMessagePayload
		if m.decode(c, msg, &p) {
			m.sendChatMessage(p)
		}
	default:
		m.log.Debug("Unknown event ignored", "session", c.GetSessionID(), "event", msg.Event)
	}
}

// decode unmarshals the frame payload into v. A missing payload decodes as
// an empty object; a malformed one is reported to the sender only.
func (m *ManagerService) decode(c Client, msg models.Inbound, v any) bool {
	if len(msg.Data) == 0 {
		return true
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		m.log.Warn("Malformed payload", "session", c.GetSessionID(), "event", msg.Event, "error", err)
		m.send(c, models.Outbound{Event: models.EventCommandRejected, Data: models.ErrorPayload{Event: msg.Event, Error: "malformed payload"}})
		return false
	}
	return true
}

// send queues evt for one session. A session whose buffer is full is dropped.
func (m *ManagerService) send(c Client, evt models.Outbound) {
	if _, ok := m.Clients[c.GetSessionID()]; !ok {
		return
	}
	select {
	case c.GetSendChannel() <- evt:
	default:
		m.log.Warn("Send buffer full, dropping session", "session", c.GetSessionID())
		m.RemoveClient(c)
	}
}

// broadcast sends evt to every connected session and mirrors it externally.
func (m *ManagerService) broadcast(evt models.Outbound) {
	for _, c := range m.Clients {
		m.send(c, evt)
	}
	m.mirror.Publish(evt)
}
