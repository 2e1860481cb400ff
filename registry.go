package tmpchat

import (
	"sort"
	"sync"
)

// Socket is the minimal surface the Registry needs from a connection to key
// its bookkeeping and to let the Broadcaster write to it. *Conn (transport.go)
// implements it; tests can supply a fake.
type Socket interface {
	// WriteFrame builds and sends a server-originated frame.
	WriteFrame(f Frame) error
	// WriteRaw sends raw wire bytes unchanged. Used by the Broadcaster to
	// forward a CHAT_MSSG exactly as received (§4.4 "forwarded verbatim"),
	// rather than re-encoding it through a parsed Frame.
	WriteRaw(data []byte) error
}

// Registry is the process-wide record coupling live sockets, registered
// names, and the occupancy count (§3, §4.1). The zero value is not usable;
// build one with NewRegistry. All mutation goes through a single mutex, never
// held across I/O, matching the teacher's discipline around Listener.conns.
type Registry struct {
	mu        sync.Mutex
	bySocket  map[Socket]string
	names     map[string]Socket
	occupancy int
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bySocket: make(map[Socket]string),
		names:    make(map[string]Socket),
	}
}

// Admit increments occupancy. Must be called exactly once per client
// crossing CONNECTED_INIT → CONNECTED_USR_NOTSET.
func (r *Registry) Admit() {
	r.mu.Lock()
	r.occupancy++
	r.mu.Unlock()
}

// Release decrements occupancy. Called exactly once when a client leaves
// CONNECTED_USR_NOTSET for DISCONNECTED without ever binding a name.
func (r *Registry) Release() {
	r.mu.Lock()
	if r.occupancy > 0 {
		r.occupancy--
	}
	r.mu.Unlock()
}

// NameTaken reports whether name is currently registered.
func (r *Registry) NameTaken(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.names[name]
	return ok
}

// Bind inserts the (socket, name) mapping. The caller must have established,
// under the same critical section semantics Bind itself provides via
// TryBind, that the name was free; Bind alone does not re-check and will
// silently overwrite on a racing caller, which is why the state machine
// always goes through TryBind instead.
func (r *Registry) Bind(socket Socket, name string) {
	r.mu.Lock()
	r.bySocket[socket] = name
	r.names[name] = socket
	r.mu.Unlock()
}

// TryBind performs the name_taken check and the bind as a single atomic
// section (§5: "MUST be performed under the same atomic section to avoid two
// clients simultaneously claiming the same name"). Returns false without
// mutating anything if the name was already taken.
func (r *Registry) TryBind(socket Socket, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.names[name]; taken {
		return false
	}
	r.bySocket[socket] = name
	r.names[name] = socket
	return true
}

// Unbind removes the mapping entry and its name, and decrements occupancy in
// the same step — it is the combined unbind+release §4.1 describes for
// CONNECTED_USR_SET departures. The caller must ensure the socket is bound.
func (r *Registry) Unbind(socket Socket) {
	r.mu.Lock()
	name, ok := r.bySocket[socket]
	if ok {
		delete(r.bySocket, socket)
		delete(r.names, name)
	}
	if r.occupancy > 0 {
		r.occupancy--
	}
	r.mu.Unlock()
}

// SnapshotSockets returns a point-in-time view of currently registered
// sockets for the Broadcaster. The caller must not hold the registry locked
// while ranging over the result — this copy exists so it doesn't have to.
func (r *Registry) SnapshotSockets() []Socket {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Socket, 0, len(r.bySocket))
	for s := range r.bySocket {
		out = append(out, s)
	}
	return out
}

// Names returns a sorted, point-in-time view of registered names, for the
// periodic occupancy printer (§6 Operational output).
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Occupancy returns the current occupancy count.
func (r *Registry) Occupancy() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancy
}
