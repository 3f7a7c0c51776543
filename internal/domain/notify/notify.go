// Package notify defines the chat delivery contract. Application services
// render text and hand it to a Notifier; the infra layer decides where it
// goes (Discord webhook, optional Telegram mirror).
package notify

import "context"

// Embed is an optional structured block attached to a message.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Color       int    `json:"color,omitempty"`
}

// AllowedMentions controls which mention tokens in the content may actually
// ping. A zero value suppresses everything: Parse is serialized as an empty
// list so @everyone/@role/@user tokens stay inert unless allowlisted.
type AllowedMentions struct {
	Parse []string `json:"parse"`
	Users []string `json:"users,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Message is one outbound chat message.
type Message struct {
	Content  string
	Embeds   []Embed
	Mentions AllowedMentions
}

// Notifier sends a message to a chat channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// ChunkEmbeds splits embeds into groups of at most size, the per-call limit
// enforced by the chat platform.
func ChunkEmbeds(embeds []Embed, size int) [][]Embed {
	if size <= 0 || len(embeds) == 0 {
		return nil
	}
	var chunks [][]Embed
	for i := 0; i < len(embeds); i += size {
		end := i + size
		if end > len(embeds) {
			end = len(embeds)
		}
		chunks = append(chunks, embeds[i:end])
	}
	return chunks
}
