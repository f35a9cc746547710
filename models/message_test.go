package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendMessageRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SendMessageRequest
		wantErr bool
	}{
		{"valid group", SendMessageRequest{Kind: "group", WorkspaceID: "ws-1", Content: "selam"}, false},
		{"valid direct", SendMessageRequest{Kind: "direct", Recipient: "b@x.com", Content: "selam"}, false},
		{"group without workspace", SendMessageRequest{Kind: "group", Content: "selam"}, true},
		{"direct without recipient", SendMessageRequest{Kind: "direct", Content: "selam"}, true},
		{"unknown kind", SendMessageRequest{Kind: "broadcast", Content: "selam"}, true},
		{"empty content", SendMessageRequest{Kind: "group", WorkspaceID: "ws-1", Content: "   "}, true},
		{"content too long", SendMessageRequest{Kind: "group", WorkspaceID: "ws-1", Content: strings.Repeat("a", 2001)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSendMessageRequestNormalizesRecipient(t *testing.T) {
	req := SendMessageRequest{Kind: "direct", Recipient: " B@X.com ", Content: "selam"}

	assert.NoError(t, req.Validate())
	assert.Equal(t, "b@x.com", req.Recipient)
}

func TestRecordFocusRequestValidate(t *testing.T) {
	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, (&RecordFocusRequest{DurationSeconds: 1500, StartedAt: started}).Validate())
	assert.Error(t, (&RecordFocusRequest{DurationSeconds: 0, StartedAt: started}).Validate())
	assert.Error(t, (&RecordFocusRequest{DurationSeconds: 13 * 60 * 60, StartedAt: started}).Validate())
	assert.Error(t, (&RecordFocusRequest{DurationSeconds: 1500}).Validate())
}
