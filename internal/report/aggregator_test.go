package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(from string, unread bool, body string, atts ...Attachment) Message {
	return Message{From: from, Unread: unread, Body: body, Attachments: atts}
}

// assertConservation checks the invariants that must hold after every
// applied thread, not only at run end.
func assertConservation(t *testing.T, a *Aggregates) {
	t.Helper()

	var senderMsgs, senderBytes, domainMsgs, domainBytes int64
	for _, k := range a.SenderKeys() {
		s, _ := a.Sender(k)
		senderMsgs += s.Messages
		senderBytes += s.ApproxSizeBytes
	}
	for _, k := range a.DomainKeys() {
		d, _ := a.Domain(k)
		domainMsgs += d.Messages
		domainBytes += d.ApproxSizeBytes
	}

	assert.Equal(t, a.Totals.Messages, senderMsgs, "sender message conservation")
	assert.Equal(t, a.Totals.Messages, domainMsgs, "domain message conservation")
	assert.Equal(t, a.Totals.ApproxSizeBytes, senderBytes, "sender size conservation")
	assert.Equal(t, a.Totals.ApproxSizeBytes, domainBytes, "domain size conservation")
}

func TestApplyThreadConservationAfterEveryThread(t *testing.T) {
	threads := []*Thread{
		{ID: "1", Messages: []Message{
			msg("a@x.com", true, "hello"),
			msg("b@y.com", false, "", Attachment{Size: 2048}),
		}},
		{ID: "2", Labels: []string{"Work"}, Messages: []Message{
			msg("a@x.com", false, "body body body"),
		}},
		{ID: "3", Messages: []Message{
			msg("not an address", false, "xx"),
			msg("c@x.com", true, "", Attachment{Size: 10}, Attachment{Size: 20}),
		}},
	}

	agg := NewAggregates()
	for i, th := range threads {
		agg.ApplyThread(th)
		t.Run(fmt.Sprintf("after thread %d", i+1), func(t *testing.T) {
			assertConservation(t, agg)
		})
	}
}

func TestApplyThreadSenderDedup(t *testing.T) {
	// Three messages, all one sender: the sender's thread count moves by 1.
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("a@x.com", false, "one"),
		msg("A@X.com", false, "two"),
		msg("Alice <a@x.com>", false, "three"),
	}})

	s, ok := agg.Sender("a@x.com")
	require.True(t, ok)
	assert.Equal(t, int64(1), s.Threads)
	assert.Equal(t, int64(3), s.Messages)
}

func TestApplyThreadDomainDedup(t *testing.T) {
	// Two distinct senders on one domain: the domain's thread count moves by 1.
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("a@x.com", false, "one"),
		msg("b@x.com", false, "two"),
	}})

	d, ok := agg.Domain("x.com")
	require.True(t, ok)
	assert.Equal(t, int64(1), d.Threads)
	assert.Equal(t, int64(2), d.Messages)

	a, _ := agg.Sender("a@x.com")
	b, _ := agg.Sender("b@x.com")
	assert.Equal(t, int64(1), a.Threads)
	assert.Equal(t, int64(1), b.Threads)
}

func TestApplyThreadAttachmentPrecedence(t *testing.T) {
	// A zero-byte attachment still disqualifies the body fallback.
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("a@x.com", false, "this body is long", Attachment{Size: 0}),
	}})

	assert.Equal(t, int64(0), agg.Totals.ApproxSizeBytes)
	assert.Equal(t, int64(1), agg.Totals.ThreadsWithAttachments)

	s, _ := agg.Sender("a@x.com")
	assert.Equal(t, int64(0), s.ApproxSizeBytes)
	assert.Equal(t, int64(1), s.WithAttachments)

	d, _ := agg.Domain("x.com")
	assert.Equal(t, int64(1), d.WithAttachments)
}

func TestApplyThreadUnknownSenderSentinel(t *testing.T) {
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Messages: []Message{
		msg("Mailer Daemon", true, "bounce"),
	}})

	s, ok := agg.Sender(UnknownEmail)
	require.True(t, ok)
	assert.Equal(t, int64(1), s.Messages)
	assert.Equal(t, int64(1), s.Unread)

	d, ok := agg.Domain(UnknownDomain)
	require.True(t, ok)
	assert.Equal(t, int64(1), d.Threads)
	assertConservation(t, agg)
}

func TestApplyThreadEmptyThread(t *testing.T) {
	// A thread with no messages still counts as scanned and labeled.
	agg := NewAggregates()
	agg.ApplyThread(&Thread{Labels: []string{"Odd"}})

	assert.Equal(t, int64(1), agg.Totals.Threads)
	assert.Equal(t, int64(0), agg.Totals.Messages)
	assert.Equal(t, int64(0), agg.Totals.UnreadThreads)

	l, ok := agg.Label("Odd")
	require.True(t, ok)
	assert.Equal(t, int64(1), l.Threads)
	assert.Equal(t, int64(0), l.UnreadThreads)
}

// TestApplyThreadEndToEnd is the two-thread scenario covering every
// counting rule at once.
func TestApplyThreadEndToEnd(t *testing.T) {
	threadA := &Thread{
		ID:     "A",
		Labels: []string{"Promo"},
		Messages: []Message{
			msg("x@a.com", true, "ignored", Attachment{Size: 100}),
		},
	}
	threadB := &Thread{
		ID: "B",
		Messages: []Message{
			msg("x@a.com", false, "12345678901234567890123456789012345678901234567890"),                     // 50 bytes
			msg("x@a.com", false, "1234567890123456789012345678901234567890123456789012345678901234567890"), // 70 bytes
		},
	}

	agg := NewAggregates()
	agg.ApplyThread(threadA)
	assertConservation(t, agg)
	agg.ApplyThread(threadB)
	assertConservation(t, agg)

	assert.Equal(t, Totals{
		Threads:                2,
		Messages:               3,
		UnreadThreads:          1,
		UnreadMessages:         1,
		ThreadsWithAttachments: 1,
		ApproxSizeBytes:        220,
	}, agg.Totals)

	s, ok := agg.Sender("x@a.com")
	require.True(t, ok)
	assert.Equal(t, SenderStats{
		Threads:         2,
		Messages:        3,
		Unread:          1,
		WithAttachments: 1,
		ApproxSizeBytes: 220,
	}, s)

	d, ok := agg.Domain("a.com")
	require.True(t, ok)
	assert.Equal(t, int64(2), d.Threads)
	assert.Equal(t, int64(220), d.ApproxSizeBytes)

	l, ok := agg.Label("Promo")
	require.True(t, ok)
	assert.Equal(t, LabelStats{Threads: 1, UnreadThreads: 1}, l)
}
