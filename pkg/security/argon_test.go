package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundtrip(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("Abc12345")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("Abc12345", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong-password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonUniqueSalts(t *testing.T) {
	a := NewArgon()

	first, err := a.GenerateFromPassword("Abc12345")
	require.NoError(t, err)

	second, err := a.GenerateFromPassword("Abc12345")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgonEmptyPassword(t *testing.T) {
	a := NewArgon()

	_, err := a.GenerateFromPassword("")
	assert.Error(t, err)
}

func TestArgonVerifyBadFormat(t *testing.T) {
	a := NewArgon()

	_, err := a.VerifyPasswd("whatever", "not-a-phc-string")
	assert.Error(t, err)
}

func TestArgonVerifyOldParameters(t *testing.T) {
	old := &ArgonHash{
		Memory:      32 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	encoded, err := old.GenerateFromPassword("Abc12345")
	require.NoError(t, err)

	// Current parameters differ, the embedded ones must win
	ok, err := NewArgon().VerifyPasswd("Abc12345", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
