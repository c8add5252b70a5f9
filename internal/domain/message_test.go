package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversation_UnreadIsSymmetric(t *testing.T) {
	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	var c Conversation

	c.Append(RoleUser, "Is the car available earlier?", at)
	c.Append(RoleUser, "Hello?", at.Add(time.Minute))
	c.Append(RoleAdmin, "Yes, from 9am.", at.Add(2*time.Minute))

	assert.Equal(t, 2, c.UnreadFor(RoleAdmin))
	assert.Equal(t, 1, c.UnreadFor(RoleUser))

	t.Run("Sender never marks own messages", func(t *testing.T) {
		assert.Equal(t, 1, c.MarkReadBy(RoleUser))
		assert.Equal(t, 0, c.UnreadFor(RoleUser))
		assert.Equal(t, 2, c.UnreadFor(RoleAdmin))
		assert.False(t, c.Messages[0].Read)
	})

	t.Run("Recipient view clears its side", func(t *testing.T) {
		assert.Equal(t, 2, c.MarkReadBy(RoleAdmin))
		assert.Equal(t, 0, c.UnreadFor(RoleAdmin))
		assert.Equal(t, 0, c.MarkReadBy(RoleAdmin))
	})
}

func TestSenderRole(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.False(t, SenderRole("owner").Valid())
	assert.Equal(t, RoleAdmin, RoleUser.Counterpart())
	assert.Equal(t, RoleUser, RoleAdmin.Counterpart())
}
