package lists

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tote/internal/listapi"
)

func TestMessage(t *testing.T) {
	network := &listapi.APIError{Status: 0, Message: "dial tcp: connection refused"}
	server := &listapi.APIError{Status: 500, Message: "database is down"}

	tests := []struct {
		op   string
		err  error
		want string
	}{
		{OpCreateList, network, "Failed to create list: network unavailable"},
		{OpDeleteItem, server, "Failed to delete item: database is down"},
		{OpDeleteItem, fmt.Errorf("wrapped: %w", server), "Failed to delete item: wrapped: database is down"},
		{"mystery_op", errors.New("boom"), "Failed to mystery op: boom"},
		{OpShareList, &listapi.APIError{Status: 409}, "This user is already added to the list or the username doesn't exist."},
		{OpShareList, &listapi.APIError{Status: 404}, "User not found. Please check the username and try again."},
		{OpShareList, &listapi.APIError{Status: 400}, "Invalid username. Please enter a valid Telegram username."},
		{OpShareList, &listapi.APIError{Status: 403}, "You don't have permission to share this list."},
		{OpShareList, &listapi.APIError{Status: 500, Message: "quota exceeded"}, "quota exceeded"},
		{OpShareList, &listapi.APIError{Status: 502, Message: "HTTP 502: Bad Gateway"}, "Failed to share list. Please try again."},
		{OpShareList, network, "Failed to share list. Please try again."},
		{OpToggleItem, nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.op, tt.err), "%s: %v", tt.op, tt.err)
	}
}

func TestEntityLocks_ReleaseAndCancel(t *testing.T) {
	var locks entityLocks
	release, err := locks.acquire(context.Background(), "list:1", defaultKey)
	require.NoError(t, err)
	assert.Equal(t, 2, locks.size())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(ctx, "list:2", "list:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, locks.size(), "failed acquire must not leak list:2")

	release()
	assert.Equal(t, 0, locks.size())

	release, err = locks.acquire(context.Background(), "list:1")
	require.NoError(t, err)
	release()
}
