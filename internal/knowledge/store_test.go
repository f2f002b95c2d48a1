package knowledge

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestAnswerScoring(t *testing.T) {
	entries := []Entry{
		{"which areas do you cover", "Edmonton and Grande Prairie."},
		{"fleet", "Premium SUVs."},
	}

	// Containment in either direction answers.
	a, ok := bestAnswer("fleet", entries)
	require.True(t, ok)
	assert.Equal(t, "Premium SUVs.", a)

	a, ok = bestAnswer("tell me about your fleet please", entries)
	require.True(t, ok)
	assert.Equal(t, "Premium SUVs.", a)

	// Token overlap alone scores at most 2: close, but never enough to
	// answer on its own.
	_, ok = bestAnswer("areas do you serve", entries)
	assert.False(t, ok)

	_, ok = bestAnswer("do you sell sandwiches", entries)
	assert.False(t, ok)
}

func TestMemoryStoreLearnAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a, ok, err := s.Lookup(ctx, "pricing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, a, "Rates vary")

	require.NoError(t, s.Learn(ctx, "do you allow pets", "Yes, leashed or crated pets are welcome."))
	a, ok, err = s.Lookup(ctx, "do you allow pets")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, a, "pets are welcome")
}

func TestMemoryStoreLearnIsAppendIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Learn(ctx, "Do You Allow Pets", "first answer"))
	require.NoError(t, s.Learn(ctx, "do you allow pets", "second answer"))

	a, ok, err := s.Lookup(ctx, "do you allow pets")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first answer", a, "existing question keeps its answer")
}

func TestMemoryStoreLearnGuards(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Learn(ctx, "long one", strings.Repeat("x", 601)))
	_, ok, err := s.Lookup(ctx, "long one")
	require.NoError(t, err)
	assert.False(t, ok, "oversized answers are not learned")

	require.NoError(t, s.Learn(ctx, "", "answer"))
	require.NoError(t, s.Learn(ctx, "question", ""))
	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(Seed))
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Learn(ctx, "do you allow pets", "yes"))
	require.NoError(t, s.Reset(ctx))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, len(Seed))
	_, ok, err := s.Lookup(ctx, "do you allow pets")
	require.NoError(t, err)
	assert.False(t, ok)
}
