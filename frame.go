package tmpchat

import "strings"

// Kind is the enumerated tag of a Frame. The valid set depends on Origin.
type Kind string

const (
	KindSetUsr         Kind = "SET_USR"
	KindChatMssg       Kind = "CHAT_MSSG"
	KindExitChat       Kind = "EXIT_CHAT"
	KindStateUpg1      Kind = "STATE_UPG_1"
	KindStateUpg2      Kind = "STATE_UPG_2"
	KindSetUsrConflict Kind = "SET_USR_CONFLICT"
	KindDisconnect     Kind = "DISCONNECT"
)

// Origin distinguishes the two frame vocabularies on the wire: a CLIENT frame
// travels client→server, a SERVER frame travels server→client.
type Origin int

const (
	Client Origin = iota
	Server
)

var clientKinds = map[Kind]bool{
	KindSetUsr:   true,
	KindChatMssg: true,
	KindExitChat: true,
}

var serverKinds = map[Kind]bool{
	KindStateUpg1:      true,
	KindStateUpg2:      true,
	KindChatMssg:       true,
	KindSetUsrConflict: true,
	KindDisconnect:     true,
}

const (
	kindFieldWidth = 32
	nameFieldWidth = 20
	headerSize     = 6 + kindFieldWidth + 3 + nameFieldWidth + 3 // 64
)

const (
	marker1 = "tmp://"
	marker2 = "::/"
)

// Frame is an immutable envelope value. Name and Body use "" to mean
// "absent" — the wire format can't distinguish an absent field from an
// empty one, so neither can this type. Construct with Build rather than a
// struct literal so the per-kind rules in §4.2 are enforced.
type Frame struct {
	Kind Kind
	Name string
	Body string
}

func requiresName(k Kind) bool {
	switch k {
	case KindChatMssg, KindSetUsr, KindStateUpg2, KindSetUsrConflict:
		return true
	default:
		return false
	}
}

func forbidsName(k Kind) bool {
	switch k {
	case KindExitChat, KindStateUpg1, KindDisconnect:
		return true
	default:
		return false
	}
}

func requiresBody(k Kind) bool {
	return k == KindChatMssg
}

func forbidsBody(k Kind) bool {
	return k != KindChatMssg
}

// Build constructs a Frame from a kind and optional name/body, validating the
// per-kind rules of §4.2. Name is trimmed before the length check.
func Build(kind Kind, name, body string) (Frame, error) {
	name = strings.TrimSpace(name)

	if requiresName(kind) && name == "" {
		return Frame{}, ErrNameRequired
	}
	if forbidsName(kind) && name != "" {
		return Frame{}, ErrNameRequired
	}
	if len(name) > nameFieldWidth {
		return Frame{}, ErrNameTooLong
	}
	if requiresBody(kind) && body == "" {
		return Frame{}, ErrBodyRequired
	}
	if forbidsBody(kind) {
		body = ""
	}

	return Frame{Kind: kind, Name: name, Body: body}, nil
}

// MustBuild panics if Build fails. Intended for server-side construction of
// frames whose validity is a compile-time invariant (e.g. KindStateUpg1).
func MustBuild(kind Kind, name, body string) Frame {
	f, err := Build(kind, name, body)
	if err != nil {
		panic("tmpchat: " + err.Error())
	}
	return f
}

// Encode renders the frame to its wire representation.
func (f Frame) Encode() string {
	var b strings.Builder
	b.Grow(headerSize + len(f.Body))
	b.WriteString(marker1)
	b.WriteString(padRight(string(f.Kind), kindFieldWidth))
	b.WriteString(marker2)
	b.WriteString(padRight(f.Name, nameFieldWidth))
	b.WriteString(marker2)
	b.WriteString(f.Body)
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Parse decodes a raw wire message, validating structural markers and
// per-kind rules for the stated origin. Failures are reported as the
// sentinel errors in errors.go (ErrFrameTooShort, ErrFrameMalformed,
// ErrUnknownKind, ...); the state machine does not inspect which one it got
// and treats every Parse error exactly like an "unexpected kind" (§9).
func Parse(raw string, origin Origin) (Frame, error) {
	if len(raw) < headerSize {
		return Frame{}, ErrFrameTooShort
	}
	if raw[0:6] != marker1 {
		return Frame{}, ErrFrameMalformed
	}
	if raw[38:41] != marker2 {
		return Frame{}, ErrFrameMalformed
	}
	if raw[61:64] != marker2 {
		return Frame{}, ErrFrameMalformed
	}

	kind := Kind(strings.TrimSpace(raw[6:38]))

	vocabulary := serverKinds
	if origin == Client {
		vocabulary = clientKinds
	}
	if !vocabulary[kind] {
		return Frame{}, ErrUnknownKind
	}

	name := strings.TrimSpace(raw[41:61])
	body := raw[64:]
	if forbidsBody(kind) {
		body = ""
	}

	if requiresName(kind) && name == "" {
		return Frame{}, ErrNameRequired
	}
	if forbidsName(kind) && name != "" {
		return Frame{}, ErrUnknownKind
	}
	if requiresBody(kind) && body == "" {
		return Frame{}, ErrBodyRequired
	}

	return Frame{Kind: kind, Name: name, Body: body}, nil
}
