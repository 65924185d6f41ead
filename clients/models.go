package clients

import "strings"

// SlackHistoryMessage is one message from a channel's recent history
type SlackHistoryMessage struct {
	SenderID  string
	IsBot     bool
	Text      string
	Timestamp string
}

// SlackFileInfo describes a shared file and where to download it from
type SlackFileInfo struct {
	ID          string
	Mimetype    string
	DownloadURL string
}

// IsImage reports whether the file was declared as an image by the platform
func (f SlackFileInfo) IsImage() bool {
	return strings.HasPrefix(f.Mimetype, "image/")
}

// SlackAuthTestResponse identifies the bot behind the configured token
type SlackAuthTestResponse struct {
	UserID string
	BotID  string
	TeamID string
}

// OAuthV2Response represents our custom OAuth response with only needed fields
type OAuthV2Response struct {
	TeamID      string
	TeamName    string
	AccessToken string
}
