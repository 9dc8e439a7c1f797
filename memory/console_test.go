package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleRejectsBlank(t *testing.T) {
	called := false
	c := &Console{OnSubmitDecoding: func(string) { called = true }}
	c.SetExpected(Welcome)

	_, err := c.Submit("  ")
	assert.ErrorIs(t, err, ErrEmptyTranslation)
	assert.False(t, called)
}

func TestConsoleVerdictIsDeterministic(t *testing.T) {
	var attempts []string
	c := &Console{OnSubmitDecoding: func(s string) { attempts = append(attempts, s) }}
	c.SetExpected(New("Found a message in a bottle!", Positive, epoch))

	for i := 0; i < 5; i++ {
		v, err := c.Submit("found a  MESSAGE in a bottle!")
		require.NoError(t, err)
		assert.True(t, v.Correct)
		assert.Equal(t, "found a message in a bottle!", v.Expected)
	}

	v, err := c.Submit("found a message in a bottle")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, "found a message in a bottle", v.Got)
	assert.Len(t, attempts, 6)
}

func TestConsoleFallsBackToMorse(t *testing.T) {
	c := &Console{}
	c.SetExpected(Memory{Morse: "... --- ... / ... --- ..."})

	v, err := c.Submit("SOS SOS")
	require.NoError(t, err)
	assert.True(t, v.Correct)
}

func TestConsoleWithoutAnswerNeverMatches(t *testing.T) {
	c := &Console{}
	v, err := c.Submit("###")
	require.NoError(t, err)
	assert.False(t, v.Correct)
}

func TestConsoleVerdictCarriesCheckedMemory(t *testing.T) {
	first := New("first light", Positive, epoch)
	second := New("second light", Negative, epoch)
	c := &Console{}
	c.SetExpected(first)
	// The memory on air changes while the attempt is being handled.
	c.OnSubmitDecoding = func(string) { c.SetExpected(second) }

	v, err := c.Submit("second light")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, second, v.Memory)

	c.SetExpected(first)
	v, err = c.Submit("first light")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, second, v.Memory, "the verdict names the memory it was checked against")
}
