package persist

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/duernstein/selfcheckout/log2"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type word struct{ s string }

func (w *word) MarshalBinary() ([]byte, error) { return []byte(w.s), nil }
func (w *word) UnmarshalBinary(b []byte) error {
	if len(b) == 0 {
		return errors.NotValidf("empty")
	}
	w.s = string(b)
	return nil
}

func TestPersistRoundtrip(t *testing.T) {
	t.Parallel()

	root, err := ioutil.TempDir("", "selfcheckout-persist")
	require.NoError(t, err)
	defer os.RemoveAll(root)
	log := log2.NewTest(t, log2.LDebug)

	var p1 Persist
	w1 := &word{s: "default"}
	require.NoError(t, p1.Init("lang", w1, root, log))
	assert.True(t, p1.Enabled())
	require.NoError(t, p1.Load())
	assert.Equal(t, "default", w1.s, "nothing stored yet")
	w1.s = "en"
	require.NoError(t, p1.Store())

	var p2 Persist
	w2 := &word{}
	require.NoError(t, p2.Init("lang", w2, root, log))
	require.NoError(t, p2.Load())
	assert.Equal(t, "en", w2.s)
}

func TestPersistDisabled(t *testing.T) {
	t.Parallel()

	var p Persist
	w := &word{s: "de"}
	require.NoError(t, p.Init("lang", w, "", log2.NewTest(t, log2.LDebug)))
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Load())
	assert.NoError(t, p.Store())
	assert.Equal(t, "de", w.s)
}

func TestPersistUninitialized(t *testing.T) {
	t.Parallel()

	var p Persist
	assert.Panics(t, func() { _ = p.Load() })
}
