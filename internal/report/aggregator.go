package report

// ApplyThread folds one thread into the aggregates. After every call the
// conservation invariants hold: Totals.Messages equals the sum of
// per-sender messages and the sum of per-domain messages, and likewise for
// ApproxSizeBytes.
func (a *Aggregates) ApplyThread(t *Thread) {
	a.Totals.Threads++
	threadUnread := t.Unread()
	if threadUnread {
		a.Totals.UnreadThreads++
	}

	// Message-level pass: counters only. Sizes are collected here but
	// applied in a separate pass below so each message's size is added in
	// exactly one place.
	type messageSize struct {
		email  string
		domain string
		size   int64
	}
	sizes := make([]messageSize, 0, len(t.Messages))

	var unreadMessages int64
	threadHasAttachment := false
	seenSenders := make(map[string]bool)
	var uniqueSenders []string

	for i := range t.Messages {
		m := &t.Messages[i]
		addr := NormalizeAddress(m.From)

		// One attachment, even a zero-byte one, disqualifies the body
		// fallback for this message.
		hasAttachment := len(m.Attachments) > 0
		var size int64
		if hasAttachment {
			for _, att := range m.Attachments {
				size += att.Size
			}
			threadHasAttachment = true
		} else {
			size = int64(len(m.Body))
		}

		a.bySender.get(addr.Email).bumpMessage(m.Unread, hasAttachment)
		a.byDomain.get(addr.Domain).bumpMessage(m.Unread, hasAttachment)

		if m.Unread {
			unreadMessages++
		}
		sizes = append(sizes, messageSize{email: addr.Email, domain: addr.Domain, size: size})

		if !seenSenders[addr.Email] {
			seenSenders[addr.Email] = true
			uniqueSenders = append(uniqueSenders, addr.Email)
		}
	}

	a.Totals.Messages += int64(len(t.Messages))
	a.Totals.UnreadMessages += unreadMessages
	if threadHasAttachment {
		a.Totals.ThreadsWithAttachments++
	}

	// Size pass: each message's size goes once into the totals and once
	// into its sender's and domain's rollup.
	for _, s := range sizes {
		a.Totals.ApproxSizeBytes += s.size
		a.bySender.get(s.email).bumpSize(s.size)
		a.byDomain.get(s.domain).bumpSize(s.size)
	}

	// Thread-level pass: at most +1 per unique sender, and +1 per unique
	// domain derived from those senders, no matter how many messages each
	// contributed.
	seenDomains := make(map[string]bool)
	for _, email := range uniqueSenders {
		a.bySender.get(email).bumpThread()
		domain := domainOf(email)
		if !seenDomains[domain] {
			seenDomains[domain] = true
			a.byDomain.get(domain).bumpThread()
		}
	}

	// Label pass, independent of messages.
	for _, label := range t.Labels {
		a.byLabel.get(label).bumpThread(threadUnread)
	}
}
