package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_CurrentIsNilWithoutSession(t *testing.T) {
	o := NewObserver()
	assert.Nil(t, o.Current())
}

func TestObserver_SetNotifiesOnce(t *testing.T) {
	o := NewObserver()

	var got []*Identity
	o.Subscribe(func(identity *Identity) {
		got = append(got, identity)
	})

	id := Identity{UID: uuid.New(), Email: "ada@example.com"}
	o.Set(id)

	require.Len(t, got, 1)
	require.NotNil(t, got[0])
	assert.Equal(t, id.UID, got[0].UID)

	current := o.Current()
	require.NotNil(t, current)
	assert.Equal(t, id.Email, current.Email)
}

func TestObserver_SetSameIdentityDoesNotNotify(t *testing.T) {
	o := NewObserver()

	calls := 0
	o.Subscribe(func(*Identity) { calls++ })

	id := Identity{UID: uuid.New(), Email: "ada@example.com"}
	o.Set(id)
	o.Set(id)

	assert.Equal(t, 1, calls)
}

func TestObserver_SetDifferentIdentityNotifies(t *testing.T) {
	o := NewObserver()

	calls := 0
	o.Subscribe(func(*Identity) { calls++ })

	o.Set(Identity{UID: uuid.New()})
	o.Set(Identity{UID: uuid.New()})

	assert.Equal(t, 2, calls)
}

func TestObserver_ClearNotifiesWithNil(t *testing.T) {
	o := NewObserver()

	var got []*Identity
	o.Subscribe(func(identity *Identity) {
		got = append(got, identity)
	})

	o.Set(Identity{UID: uuid.New()})
	o.Clear()

	require.Len(t, got, 2)
	assert.Nil(t, got[1])
	assert.Nil(t, o.Current())
}

func TestObserver_ClearWithoutSessionDoesNotNotify(t *testing.T) {
	o := NewObserver()

	calls := 0
	o.Subscribe(func(*Identity) { calls++ })

	o.Clear()

	assert.Equal(t, 0, calls)
}
