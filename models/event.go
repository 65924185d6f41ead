package models

// EventKind identifies what an inbound webhook event represents
type EventKind string

const (
	EventKindChallenge  EventKind = "challenge"
	EventKindMessage    EventKind = "message"
	EventKindFileShared EventKind = "file_shared"
	EventKindOther      EventKind = "other"
)

// AttachmentKind declares how an attachment was advertised by the platform
type AttachmentKind string

const (
	AttachmentKindImage   AttachmentKind = "image"
	AttachmentKindUnknown AttachmentKind = "unknown"
)

// AttachmentRef is an opaque reference to a remote file shared on the platform.
// The ID is resolved to a download URL through the messaging-platform client.
type AttachmentRef struct {
	ID   string
	Kind AttachmentKind
}

// InboundEvent is a decoded, already-deduplicated webhook event.
// The webhook boundary owns retry/challenge handling; by the time an
// InboundEvent reaches the dispatcher those have been dealt with.
type InboundEvent struct {
	Kind         EventKind
	ChannelID    string
	SenderID     string
	IsFromBot    bool
	Text         string
	Attachments  []AttachmentRef
	RawTimestamp string
	EventID      string
}

// FirstImageAttachment returns the first attachment advertised as an image
func (e InboundEvent) FirstImageAttachment() (AttachmentRef, bool) {
	for _, att := range e.Attachments {
		if att.Kind == AttachmentKindImage {
			return att, true
		}
	}
	return AttachmentRef{}, false
}
