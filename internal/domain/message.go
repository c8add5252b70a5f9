package domain

import "time"

type SenderRole string

const (
	RoleUser  SenderRole = "user"
	RoleAdmin SenderRole = "admin"
)

func (r SenderRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Counterpart returns the role on the other side of a conversation
func (r SenderRole) Counterpart() SenderRole {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

type Message struct {
	Sender    SenderRole `json:"sender"`
	Body      string     `json:"body"`
	Timestamp time.Time  `json:"timestamp"`
	Read      bool       `json:"read"`
}

// Conversation is the message thread embedded in every request. A message is
// unread for the role that did not send it until that role views the thread.
type Conversation struct {
	Messages []Message `json:"messages"`
}

// Append adds an unread message from sender
func (c *Conversation) Append(sender SenderRole, body string, at time.Time) Message {
	m := Message{Sender: sender, Body: body, Timestamp: at}
	c.Messages = append(c.Messages, m)
	return m
}

// MarkReadBy marks every message sent by the viewer's counterpart as read and
// returns how many changed. The viewer's own messages are never touched.
func (c *Conversation) MarkReadBy(viewer SenderRole) int {
	changed := 0
	for i := range c.Messages {
		if c.Messages[i].Sender != viewer && !c.Messages[i].Read {
			c.Messages[i].Read = true
			changed++
		}
	}
	return changed
}

// UnreadFor counts messages the viewer has not seen yet
func (c *Conversation) UnreadFor(viewer SenderRole) int {
	n := 0
	for _, m := range c.Messages {
		if m.Sender != viewer && !m.Read {
			n++
		}
	}
	return n
}
