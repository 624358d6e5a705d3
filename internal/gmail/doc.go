// Package gmail adapts the Gmail API to the report engine's Source
// contract.
//
// The engine asks for pages by (offset, pageSize) while the Gmail API
// paginates with opaque tokens, so ThreadSource keeps a sequential cursor:
// offsets must be requested in order, each fetch advancing the cursor by
// one page. Threads are fetched in full and converted to the report model:
// UNREAD labels drive unread flags, user labels become thread labels, and
// MIME parts are walked for non-inline attachments and a plain-text body.
//
// Retry and rate limiting are not handled here; fetch errors propagate to
// the driver, which treats them as fatal for the run.
package gmail
