// Package report implements the aggregation engine that turns a paginated
// stream of Gmail threads into multi-dimensional usage metrics.
//
// The engine is strictly sequential: a Driver pulls pages from a Source,
// folds each thread into an Aggregates value via ApplyThread, and a
// Renderer reads the final state into four tables (Overview, By Sender,
// By Domain, By Label) written through a Sink.
//
// Counting happens at two granularities. Message-level counters (messages,
// unread, withAttachments, size) are bumped once per message. Thread-level
// counters are bumped at most once per thread per key: a thread with three
// messages from the same sender adds 1 to that sender's thread count, not 3.
//
// Message sizes are approximate: the sum of attachment byte lengths when a
// message has attachments, otherwise the plain-text body length. True
// MIME/wire size is never computed.
package report
