package flow

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDoors = []Door{1, 2}

func TestTransitionTable(t *testing.T) {
	t.Parallel()

	type key struct {
		from Screen
		a    Action
	}
	legal := map[key]Screen{
		{ScreenLanding, ActionContinue}:         ScreenDoorSelect,
		{ScreenDoorSelect, ActionSelectDoor}:    ScreenPayment,
		{ScreenDoorSelect, ActionBackToLanding}: ScreenLanding,
		{ScreenPayment, ActionBackToDoorSelect}: ScreenDoorSelect,
		{ScreenPayment, ActionPaymentSucceeded}: ScreenSuccess,
		{ScreenSuccess, ActionReset}:            ScreenLanding,
	}
	for _, from := range AllScreens {
		for _, a := range AllActions {
			from, a := from, a
			t.Run(from.String()+"/"+a.String(), func(t *testing.T) {
				c := NewController(testDoors)
				c.screen = from
				if from == ScreenPayment || from == ScreenSuccess {
					c.door = 2
				}
				expect, ok := legal[key{from, a}]
				result := c.Do(a, 1)
				assert.Equal(t, ok, result)
				if ok {
					assert.Equal(t, expect, c.Screen())
				} else {
					assert.Equal(t, from, c.Screen(), "illegal action must be no-op")
				}
			})
		}
	}
}

func TestHappyPath(t *testing.T) {
	t.Parallel()

	c := NewController(testDoors)
	require.Equal(t, ScreenLanding, c.Screen())
	require.True(t, c.ContinueFromLanding())
	require.Equal(t, DoorNone, c.Door())
	require.True(t, c.SelectDoor(2))
	assert.Equal(t, ScreenPayment, c.Screen())
	assert.Equal(t, Door(2), c.Door())
	require.True(t, c.PaymentSucceeded())
	assert.Equal(t, ScreenSuccess, c.Screen())
	assert.Equal(t, Door(2), c.Door())
	require.True(t, c.Reset())
	assert.Equal(t, ScreenLanding, c.Screen())
	assert.Equal(t, DoorNone, c.Door())
}

func TestSelectDoorInvalid(t *testing.T) {
	t.Parallel()

	c := NewController(testDoors)
	c.ContinueFromLanding()
	assert.False(t, c.SelectDoor(DoorNone))
	assert.False(t, c.SelectDoor(3))
	assert.Equal(t, ScreenDoorSelect, c.Screen())
	assert.Equal(t, DoorNone, c.Door())
}

func TestBackToDoorSelectClearsDoor(t *testing.T) {
	t.Parallel()

	c := NewController(testDoors)
	c.ContinueFromLanding()
	c.SelectDoor(1)
	require.True(t, c.BackToDoorSelect())
	assert.Equal(t, DoorNone, c.Door())
	require.True(t, c.SelectDoor(2))
	assert.Equal(t, Door(2), c.Door())
}

// Random action sequences keep screen valid and door set iff Payment or Success.
func TestRandomWalkConsistent(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	c := NewController(testDoors)
	for i := 0; i < 10000; i++ {
		a := AllActions[rnd.Intn(len(AllActions))]
		d := Door(rnd.Intn(4))
		c.Do(a, d)
		s := c.Screen()
		require.True(t, s.Valid(), "step=%d %s", i, c.String())
		hasDoor := c.Door() != DoorNone
		require.Equal(t, s == ScreenPayment || s == ScreenSuccess, hasDoor, "step=%d %s", i, c.String())
		if hasDoor {
			require.True(t, c.DoorAllowed(c.Door()))
		}
	}
}

func TestResetFromAnyDoor(t *testing.T) {
	t.Parallel()

	for _, d := range testDoors {
		c := NewController(testDoors)
		c.ContinueFromLanding()
		c.SelectDoor(d)
		c.PaymentSucceeded()
		require.True(t, c.Reset())
		assert.Equal(t, ScreenLanding, c.Screen())
		assert.Equal(t, DoorNone, c.Door())
	}
}
