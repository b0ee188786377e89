package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	gen := UUID()

	id := gen.New("resume")
	require.True(t, strings.HasPrefix(id, "resume-"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "resume-"))
	assert.NoError(t, err)

	assert.NotEqual(t, id, gen.New("resume"))
}

func TestPositional(t *testing.T) {
	gen := Positional()
	assert.Equal(t, "custom-item-3", gen.New("custom-item-3"))
	assert.Equal(t, "custom-item-3", gen.New("custom-item-3"))
}

func TestSequence(t *testing.T) {
	gen := Sequence()

	tests := []struct {
		prefix string
		want   string
	}{
		{"work", "work-1"},
		{"work", "work-2"},
		{"award", "award-1"},
		{"work", "work-3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gen.New(tt.prefix))
	}
}

func TestGeneratorFunc(t *testing.T) {
	gen := GeneratorFunc(func(prefix string) string { return "x-" + prefix })
	assert.Equal(t, "x-profile", gen.New("profile"))
}
