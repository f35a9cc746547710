package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr bool
	}{
		{
			name: "workspace görevi",
			req:  CreateTaskRequest{WorkspaceID: "ws-1", Title: "rapor yaz"},
		},
		{
			name: "kişisel görev - workspace boş olabilir",
			req:  CreateTaskRequest{Title: "çiçekleri sula"},
		},
		{
			name:    "başlık zorunlu",
			req:     CreateTaskRequest{WorkspaceID: "ws-1", Title: "   "},
			wantErr: true,
		},
		{
			name:    "başlık çok uzun",
			req:     CreateTaskRequest{Title: strings.Repeat("a", 201)},
			wantErr: true,
		},
		{
			name:    "geçersiz öncelik",
			req:     CreateTaskRequest{Title: "görev", Priority: "urgent"},
			wantErr: true,
		},
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

func TestCreateTaskRequestDefaultsPriority(t *testing.T) {
	req := CreateTaskRequest{Title: "görev"}
	require.NoError(t, req.Validate())
	assert.Equal(t, PriorityMedium, req.Priority)
}
