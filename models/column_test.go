package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateColumnRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateColumnRequest
		wantErr bool
	}{
		{
			name: "geçerli",
			req:  CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak", Color: "#ff0000"},
		},
		{
			name:    "workspace zorunlu",
			req:     CreateColumnRequest{Title: "Yapılacak"},
			wantErr: true,
		},
		{
			name:    "başlık zorunlu",
			req:     CreateColumnRequest{WorkspaceID: "ws-1", Title: " "},
			wantErr: true,
		},
		{
			name:    "renk # ile başlamalı",
			req:     CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak", Color: "ff0000"},
			wantErr: true,
		},
		{
			name:    "renk hex olmalı",
			req:     CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak", Color: "#zzzzzz"},
			wantErr: true,
		},
		{
			name:    "kısa renk kabul edilmez",
			req:     CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak", Color: "#fff"},
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

func TestCreateColumnRequestColorDefaultsAndNormalizes(t *testing.T) {
	req := CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak"}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultColumnColor, req.Color)

	req = CreateColumnRequest{WorkspaceID: "ws-1", Title: "Yapılacak", Color: " #FFEB3B "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "#ffeb3b", req.Color)
}

func TestUpdateColumnRequestValidatesColor(t *testing.T) {
	bad := "kırmızı"
	req := UpdateColumnRequest{Color: &bad}
	assert.Error(t, req.Validate())

	good := "#00FF00"
	req = UpdateColumnRequest{Color: &good}
	require.NoError(t, req.Validate())
	assert.Equal(t, "#00ff00", *req.Color)
}
