package tmpchat

import "time"

// clientState is one of the four states §4.3 names. clientStateDisconnected
// is terminal.
type clientState int

const (
	clientStateConnectedInit clientState = iota
	clientStateUsrNotSet
	clientStateUsrSet
	clientStateDisconnected
)

// socketConn is the subset of *Conn the driver needs, so tests can drive the
// state machine against a fake without an actual websocket.
type socketConn interface {
	Socket
	RecvFrame(deadline time.Time, origin Origin) (Frame, []byte, error)
	Close() error
}

// driver runs the per-client state machine of §4.3. One is created per
// accepted socket; it owns that socket's timers and is the sole mutator of
// Registry entries concerning its own socket (§2). Built with the same
// shape as the teacher's per-connection goroutine in Listener.Accept, but
// expressed as an explicit clientState-keyed handler table instead of the
// teacher's read-loop switch, matching §9's "per-state handler table".
type driver struct {
	conn     socketConn
	registry *Registry
	queue    chan<- []byte
	cfg      *Config
	logger   Logger
	metrics  Metrics

	state clientState
	name  string

	// notSetElapsed is the cumulative wall time already spent waiting in
	// CONNECTED_USR_NOTSET across retries caused by name conflicts (§4.3:
	// "cumulative across retries ... not reset by a rejected SET_USR").
	notSetElapsed time.Duration
}

// newDriver builds a driver in its initial state.
func newDriver(conn socketConn, registry *Registry, queue chan<- []byte, cfg *Config, logger Logger, metrics Metrics) *driver {
	return &driver{
		conn:     conn,
		registry: registry,
		queue:    queue,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		state:    clientStateConnectedInit,
	}
}

type stateHandler func(d *driver) clientState

// stateHandlers is the table §9 calls for: one handler per row of §4.3,
// keyed by the state it handles, built once at package init — the same
// registration shape as the teacher's scheme-keyed factories map
// (RegisterFactory/lookupFactory in aznet.go), re-purposed for states
// instead of transport schemes.
var stateHandlers = map[clientState]stateHandler{
	clientStateConnectedInit: handleConnectedInit,
	clientStateUsrNotSet:     handleUsrNotSet,
	clientStateUsrSet:        handleUsrSet,
}

// run drives the state machine to completion and closes the socket. It
// never returns until the driver reaches clientStateDisconnected, matching
// the original's "_connection_handler" loop.
func (d *driver) run() {
	for d.state != clientStateDisconnected {
		next, ok := stateHandlers[d.state]
		if !ok {
			// Unreachable with the table above; defensive rather than panicking
			// mid-connection.
			break
		}
		d.state = next(d)
	}
	_ = d.conn.Close()
}

// sendBestEffort writes f and discards any error: every server-initiated
// termination is either preceded by a best-effort DISCONNECT or signalled by
// socket closure (§7). A send failure during a DISCONNECT delivery must not
// block or alter the transition that is already decided.
func (d *driver) sendBestEffort(f Frame) {
	_ = d.conn.WriteFrame(f)
}

var disconnectFrame = MustBuild(KindDisconnect, "", "")
var stateUpg1Frame = MustBuild(KindStateUpg1, "", "")

func handleConnectedInit(d *driver) clientState {
	if d.registry.Occupancy() >= d.cfg.maxClients {
		d.metrics.IncrementRejectedFull()
		d.logger.Printf("session: rejecting connection, at capacity (%d)", d.cfg.maxClients)
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected
	}

	if err := d.conn.WriteFrame(stateUpg1Frame); err != nil {
		// Admit only happens once STATE_UPG_1 has been sent: if that send
		// fails the client never crossed into USR_NOTSET on the wire, so
		// there is nothing to admit or release.
		return clientStateDisconnected
	}

	d.registry.Admit()
	d.metrics.IncrementAdmitted()
	return clientStateUsrNotSet
}

func handleUsrNotSet(d *driver) clientState {
	budget := d.cfg.notSetTimeout - d.notSetElapsed
	if budget <= 0 {
		budget = 0
	}
	start := time.Now()
	frame, _, err := d.conn.RecvFrame(start.Add(budget), Client)
	d.notSetElapsed += time.Since(start)

	if err != nil {
		// Covers idle timeout, socket closure, and parse errors alike — all
		// three get the same release plus best-effort DISCONNECT here (on a
		// closed socket the send simply fails), and a parse error is
		// deliberately indistinguishable from "unexpected kind" (§9).
		d.registry.Release()
		d.metrics.IncrementReleased()
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected
	}

	switch frame.Kind {
	case KindSetUsr:
		if !d.registry.TryBind(d.conn, frame.Name) {
			d.metrics.IncrementConflict()
			conflict, _ := Build(KindSetUsrConflict, frame.Name, "")
			d.sendBestEffort(conflict)
			return clientStateUsrNotSet
		}

		d.name = frame.Name
		d.metrics.IncrementBound()
		d.logger.Printf("session: %s registered", frame.Name)
		upg2, _ := Build(KindStateUpg2, frame.Name, "")
		if err := d.conn.WriteFrame(upg2); err != nil {
			d.registry.Unbind(d.conn)
			return clientStateDisconnected
		}
		return clientStateUsrSet

	case KindExitChat:
		d.registry.Release()
		d.metrics.IncrementReleased()
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected

	default:
		d.registry.Release()
		d.metrics.IncrementReleased()
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected
	}
}

func handleUsrSet(d *driver) clientState {
	deadline := time.Now().Add(d.cfg.setTimeout)
	frame, raw, err := d.conn.RecvFrame(deadline, Client)
	if err != nil {
		d.registry.Unbind(d.conn)
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected
	}

	switch frame.Kind {
	case KindChatMssg:
		d.metrics.IncrementChatFrames()
		d.enqueue(raw)
		return clientStateUsrSet

	case KindExitChat:
		d.registry.Unbind(d.conn)
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected

	default:
		d.registry.Unbind(d.conn)
		d.sendBestEffort(disconnectFrame)
		return clientStateDisconnected
	}
}

// enqueue places a raw CHAT_MSSG frame on the broadcast queue. The queue is
// a bounded channel (§3); a full buffer blocks this goroutine, which is
// transparent to the state machine since the driver simply remains
// suspended in CONNECTED_USR_SET while blocked (§5).
func (d *driver) enqueue(raw []byte) {
	d.queue <- raw
}
