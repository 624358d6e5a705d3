package gmail

import (
	"encoding/base64"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/beholder20/gmail-analysis/internal/report"
)

const unreadLabelID = "UNREAD"

// convertThread maps a full Gmail thread onto the report model. Thread
// labels are the user labels of its messages, by name, in first-seen
// order; system labels like INBOX or UNREAD are not reported as labels.
func (s *ThreadSource) convertThread(t *gmail.Thread) *report.Thread {
	out := &report.Thread{ID: t.Id}

	seenLabels := make(map[string]bool)
	for _, m := range t.Messages {
		out.Messages = append(out.Messages, s.convertMessage(m))

		for _, id := range m.LabelIds {
			name, ok := s.labels[id]
			if !ok || seenLabels[name] {
				continue
			}
			seenLabels[name] = true
			out.Labels = append(out.Labels, name)
		}
	}
	return out
}

func (s *ThreadSource) convertMessage(m *gmail.Message) report.Message {
	msg := report.Message{
		From:   headerValue(m.Payload, "From"),
		Unread: hasLabel(m.LabelIds, unreadLabelID),
		Date:   time.UnixMilli(m.InternalDate),
	}
	s.observeDate(msg.Date)

	var plain, html string
	walkParts(m.Payload, func(p *gmail.MessagePart) {
		if att, ok := attachmentOf(p); ok {
			msg.Attachments = append(msg.Attachments, att)
			return
		}
		switch p.MimeType {
		case "text/plain":
			if plain == "" && p.Body != nil {
				plain = decodeBody(p.Body.Data)
			}
		case "text/html":
			if html == "" && p.Body != nil {
				html = decodeBody(p.Body.Data)
			}
		}
	})

	// Plain text preferred, HTML as fallback, snippet as last resort. The
	// body is only a size proxy for attachment-less messages.
	switch {
	case plain != "":
		msg.Body = plain
	case html != "":
		msg.Body = html
	default:
		msg.Body = m.Snippet
	}
	return msg
}

// attachmentOf reports whether a part is a countable attachment. Inline
// images (image parts referenced from the HTML body via Content-ID or an
// inline disposition) are excluded by policy.
func attachmentOf(p *gmail.MessagePart) (report.Attachment, bool) {
	if p.Filename == "" || p.Body == nil || p.Body.AttachmentId == "" {
		return report.Attachment{}, false
	}
	if strings.HasPrefix(p.MimeType, "image/") && isInline(p) {
		return report.Attachment{}, false
	}
	return report.Attachment{
		Filename: p.Filename,
		MimeType: p.MimeType,
		Size:     p.Body.Size,
	}, true
}

func isInline(p *gmail.MessagePart) bool {
	for _, h := range p.Headers {
		switch strings.ToLower(h.Name) {
		case "content-disposition":
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(h.Value)), "inline") {
				return true
			}
		case "content-id":
			if h.Value != "" {
				return true
			}
		}
	}
	return false
}

// walkParts visits a message part and all nested parts, depth first.
func walkParts(p *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if p == nil {
		return
	}
	fn(p)
	for _, child := range p.Parts {
		walkParts(child, fn)
	}
}

func headerValue(p *gmail.MessagePart, name string) string {
	if p == nil {
		return ""
	}
	for _, h := range p.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func hasLabel(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

// decodeBody decodes Gmail's base64url body data. The API returns unpadded
// base64url; padded and standard encodings are tried as fallbacks.
func decodeBody(data string) string {
	if data == "" {
		return ""
	}
	for _, enc := range []*base64.Encoding{base64.RawURLEncoding, base64.URLEncoding, base64.StdEncoding} {
		if b, err := enc.DecodeString(data); err == nil {
			return string(b)
		}
	}
	return ""
}
