package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableRecorder struct {
	inits    int
	cleanups int
	requests []uint32
	events   []uint32
	code     int
}

func (r *tableRecorder) handlers() Handlers {
	return Handlers{
		Init: func() { r.inits++ },
		Request: func(id uint32, payload []byte) int {
			r.requests = append(r.requests, id)
			return r.code
		},
		Response: func(id uint32, payload []byte) int {
			return r.code
		},
		Event: func(id uint32, payload []byte) int {
			r.events = append(r.events, id)
			return r.code
		},
		Cleanup: func() { r.cleanups++ },
	}
}

func TestHandleBeforeInit(t *testing.T) {
	d := New()
	_, err := d.Handle(&Message{Kind: KindRequest, ID: 1})
	assert.Equal(t, ErrNotInitialized, err)
	assert.Equal(t, ErrNotInitialized, d.Send(&Message{Kind: KindRequest}))
}

func TestHandleNilMessage(t *testing.T) {
	d := New()
	d.Init(Handlers{})
	_, err := d.Handle(nil)
	assert.Equal(t, ErrNotInitialized, err)
	assert.Equal(t, ErrNotInitialized, d.Send(nil))
}

func TestInitIdempotent(t *testing.T) {
	rec := &tableRecorder{}
	d := New()
	d.Init(rec.handlers())
	d.Init(rec.handlers())
	assert.Equal(t, 1, rec.inits)
	assert.True(t, d.Initialized())
}

func TestHandleRoutesByKind(t *testing.T) {
	rec := &tableRecorder{code: 7}
	d := New()
	d.Init(rec.handlers())

	code, err := d.Handle(&Message{Kind: KindRequest, ID: 10})
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	code, err = d.Handle(&Message{Kind: KindResponse, ID: 11})
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	code, err = d.Handle(&Message{Kind: KindEvent, ID: 12})
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	assert.Equal(t, []uint32{10}, rec.requests)
	assert.Equal(t, []uint32{12}, rec.events)
}

func TestHandleUnrecognizedKind(t *testing.T) {
	rec := &tableRecorder{}
	d := New()
	d.Init(rec.handlers())

	for _, kind := range []Kind{KindUnknown, Kind(42)} {
		_, err := d.Handle(&Message{Kind: kind, ID: 1})
		require.Error(t, err)
		ue, ok := err.(*UnrecognizedKindError)
		require.True(t, ok)
		assert.Equal(t, kind, ue.Kind)
	}
	assert.Empty(t, rec.requests)
	assert.Empty(t, rec.events)
}

func TestNilHandlerEntriesSucceed(t *testing.T) {
	d := New()
	d.Init(Handlers{})
	code, err := d.Handle(&Message{Kind: KindRequest, ID: 1})
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestCleanupWithoutInit(t *testing.T) {
	d := New()
	d.Cleanup()
	assert.False(t, d.Initialized())
	_, err := d.Handle(&Message{Kind: KindRequest})
	assert.Equal(t, ErrNotInitialized, err)
}

func TestCleanupThenReinit(t *testing.T) {
	rec := &tableRecorder{}
	d := New()
	d.Init(rec.handlers())
	d.Cleanup()
	assert.Equal(t, 1, rec.cleanups)
	assert.False(t, d.Initialized())

	_, err := d.Handle(&Message{Kind: KindRequest})
	assert.Equal(t, ErrNotInitialized, err)

	d.Init(rec.handlers())
	_, err = d.Handle(&Message{Kind: KindRequest, ID: 2})
	assert.NoError(t, err)
}

type transportRecorder struct {
	sent []*Message
	err  error
}

func (t *transportRecorder) Transmit(msg *Message) error {
	t.sent = append(t.sent, msg)
	return t.err
}

func TestSendWithoutTransportSucceeds(t *testing.T) {
	d := New()
	d.Init(Handlers{})
	assert.NoError(t, d.Send(&Message{Kind: KindRequest, ID: 1, Payload: make([]byte, 16)}))
}

func TestSendUsesTransport(t *testing.T) {
	tr := &transportRecorder{}
	d := New()
	d.Transport = tr
	d.Init(Handlers{})

	msg := &Message{Kind: KindEvent, ID: 9}
	require.NoError(t, d.Send(msg))
	require.Len(t, tr.sent, 1)
	assert.Equal(t, msg, tr.sent[0])

	tr.err = errors.New("link down")
	assert.Equal(t, tr.err, d.Send(msg))
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindUnknown, KindRequest, KindResponse, KindEvent} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	_, err := ParseKind("bogus")
	assert.Error(t, err)
}
