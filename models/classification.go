package models

import "github.com/samber/mo"

// ClassificationAction is the classifier's verdict for an inbound event
type ClassificationAction string

const (
	ActionIgnore     ClassificationAction = "ignore"
	ActionTextReply  ClassificationAction = "text_reply"
	ActionImageReply ClassificationAction = "image_reply"
)

// Classification carries the classifier verdict plus the inputs the
// context assembler needs. Attachment is present only for ActionImageReply.
type Classification struct {
	Action     ClassificationAction
	Prompt     string
	Attachment mo.Option[AttachmentRef]
}
