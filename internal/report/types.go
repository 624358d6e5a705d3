package report

import "time"

// Sentinel values used when a From header has no parseable address.
// Unparseable senders are aggregated under these keys rather than dropped,
// so conservation invariants still hold.
const (
	UnknownEmail  = "unknown@unknown"
	UnknownDomain = "unknown"
)

// Attachment is a single non-inline attachment of a message.
type Attachment struct {
	Filename string
	MimeType string
	Size     int64
}

// Message is one email within a thread. Body is only consulted for size
// accounting when the message has no attachments.
type Message struct {
	From        string // raw From header, normalized during aggregation
	Unread      bool
	Body        string
	Attachments []Attachment // inline images already excluded by the source
	Date        time.Time
}

// Thread is an ordered sequence of messages plus thread-level labels.
// Threads are transient: supplied by a Source and consumed once.
type Thread struct {
	ID       string
	Labels   []string
	Messages []Message
}

// Unread reports whether the thread contains any unread message.
func (t *Thread) Unread() bool {
	for i := range t.Messages {
		if t.Messages[i].Unread {
			return true
		}
	}
	return false
}

// Totals holds the overall counters for one run. All fields are
// monotonically non-decreasing while threads are applied.
type Totals struct {
	Threads                int64
	Messages               int64
	UnreadThreads          int64
	UnreadMessages         int64
	ThreadsWithAttachments int64
	ApproxSizeBytes        int64
}

// SenderStats is the per-sender (and per-domain) rollup record.
type SenderStats struct {
	Threads         int64
	Messages        int64
	Unread          int64
	WithAttachments int64
	ApproxSizeBytes int64
}

// LabelStats is the per-label rollup record.
type LabelStats struct {
	Threads       int64
	UnreadThreads int64
}

// Aggregates is the mutable state of one report run. It is created empty,
// mutated only by ApplyThread, read by the renderer, and discarded at run
// end. Nothing persists across runs.
type Aggregates struct {
	Totals Totals

	bySender *rollup[SenderStats]
	byDomain *rollup[SenderStats]
	byLabel  *rollup[LabelStats]
}

// NewAggregates returns empty aggregates for a fresh run.
func NewAggregates() *Aggregates {
	return &Aggregates{
		bySender: newRollup[SenderStats](),
		byDomain: newRollup[SenderStats](),
		byLabel:  newRollup[LabelStats](),
	}
}

// Sender returns the rollup record for a normalized sender email.
func (a *Aggregates) Sender(email string) (SenderStats, bool) {
	return a.bySender.lookup(email)
}

// Domain returns the rollup record for a normalized domain.
func (a *Aggregates) Domain(domain string) (SenderStats, bool) {
	return a.byDomain.lookup(domain)
}

// Label returns the rollup record for a label name.
func (a *Aggregates) Label(name string) (LabelStats, bool) {
	return a.byLabel.lookup(name)
}

// SenderKeys returns sender emails in first-seen order.
func (a *Aggregates) SenderKeys() []string { return a.bySender.keys() }

// DomainKeys returns domains in first-seen order.
func (a *Aggregates) DomainKeys() []string { return a.byDomain.keys() }

// LabelKeys returns label names in first-seen order.
func (a *Aggregates) LabelKeys() []string { return a.byLabel.keys() }
