package tmpchat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEncodeParseRoundTrip(t *testing.T) {
	f, err := Build(KindChatMssg, "alice", "hello there")
	require.NoError(t, err)

	wire := f.Encode()
	require.Len(t, wire, headerSize+len("hello there"))

	got, err := Parse(wire, Client)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestEncodeFixedOffsets(t *testing.T) {
	f := MustBuild(KindSetUsr, "bob", "")
	wire := f.Encode()

	assert.Equal(t, marker1, wire[0:6])
	assert.Equal(t, marker2, wire[38:41])
	assert.Equal(t, marker2, wire[61:64])
	assert.Equal(t, "SET_USR", strings.TrimSpace(wire[6:38]))
	assert.Equal(t, "bob", strings.TrimSpace(wire[41:61]))
}

func TestBuildRejectsMissingName(t *testing.T) {
	_, err := Build(KindSetUsr, "", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestBuildRejectsNameOnNamelessKind(t *testing.T) {
	_, err := Build(KindExitChat, "someone", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestBuildRejectsNameTooLong(t *testing.T) {
	_, err := Build(KindSetUsr, strings.Repeat("a", nameFieldWidth+1), "")
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestBuildAcceptsNameAtExactWidth(t *testing.T) {
	name := strings.Repeat("a", nameFieldWidth)
	f, err := Build(KindSetUsr, name, "")
	require.NoError(t, err)
	assert.Equal(t, name, f.Name)
}

func TestBuildRejectsMissingBody(t *testing.T) {
	_, err := Build(KindChatMssg, "alice", "")
	assert.ErrorIs(t, err, ErrBodyRequired)
}

func TestBuildDropsBodyOnBodylessKind(t *testing.T) {
	f, err := Build(KindSetUsr, "alice", "ignored")
	require.NoError(t, err)
	assert.Empty(t, f.Body)
}

func TestParseRejectsShortFrame(t *testing.T) {
	_, err := Parse("tmp://short", Client)
	assert.ErrorIs(t, err, ErrFrameTooShort)
}

func TestParseRejectsMalformedMarkers(t *testing.T) {
	f := MustBuild(KindExitChat, "", "")
	wire := f.Encode()
	broken := "xxxxxx" + wire[6:]
	_, err := Parse(broken, Client)
	assert.ErrorIs(t, err, ErrFrameMalformed)
}

func TestParseRejectsKindFromWrongOrigin(t *testing.T) {
	f := MustBuild(KindStateUpg1, "", "")
	wire := f.Encode()
	_, err := Parse(wire, Client)
	assert.ErrorIs(t, err, ErrUnknownKind)

	f2 := MustBuild(KindExitChat, "", "")
	_, err = Parse(f2.Encode(), Server)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseChatMssgForwardsBodyVerbatim(t *testing.T) {
	f := MustBuild(KindChatMssg, "alice", "line with  double  spaces")
	got, err := Parse(f.Encode(), Client)
	require.NoError(t, err)
	assert.Equal(t, "line with  double  spaces", got.Body)
}
