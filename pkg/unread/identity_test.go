package unread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/pkg"
)

func TestDirectIDSymmetry(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{"already sorted", "u@x.com", "v@x.com", "u@x.com_v@x.com"},
		{"reversed", "v@x.com", "u@x.com", "u@x.com_v@x.com"},
		{"mixed case", "V@X.com", "u@x.com", "u@x.com_v@x.com"},
		{"surrounding whitespace", " u@x.com ", "v@x.com", "u@x.com_v@x.com"},
		{"same user both sides", "u@x.com", "u@x.com", "u@x.com_u@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DirectID(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Simetri: parametre sırası sonucu değiştirmemeli.
			swapped, err := DirectID(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, got, swapped)
		})
	}
}

func TestDirectIDInvalidParticipant(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"empty first", "", "v@x.com"},
		{"empty second", "u@x.com", ""},
		{"both empty", "", ""},
		{"whitespace only", "   ", "v@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DirectID(tt.a, tt.b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkg.ErrInvalidParticipant))
		})
	}
}

func TestGroupID(t *testing.T) {
	got, err := GroupID("ws-1")
	require.NoError(t, err)
	assert.Equal(t, "ws-1", got, "group identity is the workspace id itself")

	_, err = GroupID("  ")
	assert.True(t, errors.Is(err, pkg.ErrInvalidParticipant))
}

func TestResolve(t *testing.T) {
	got, err := Resolve(KindGroup, "ws-1", "ignored", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "ws-1", got)

	got, err = Resolve(KindDirect, "ws-1", "b@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com_b@x.com", got)

	_, err = Resolve(Kind("voice"), "ws-1", "", "")
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}
