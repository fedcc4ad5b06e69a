package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

func TestSessionHub_PublishAndUnsubscribe(t *testing.T) {
	hub := NewSessionHub()
	ann := &models.Identity{Email: "ann@example.com"}
	first, second := &recorder{}, &recorder{}

	stopFirst := hub.Subscribe("t1", ann, time.Time{}, first.listen)
	hub.Subscribe("t1", ann, time.Time{}, second.listen)
	assert.Equal(t, 2, hub.Subscribers("t1"))

	stopFirst()
	stopFirst()
	assert.Equal(t, 1, hub.Subscribers("t1"))

	hub.Publish("t1", nil)
	hub.Publish("t1", ann)

	assert.Equal(t, []*models.Identity{ann}, first.snapshot())
	assert.Equal(t, []*models.Identity{ann, nil}, second.snapshot())
	assert.Zero(t, hub.Subscribers("t1"))
}

func TestSessionHub_EndsAtExpiry(t *testing.T) {
	hub := NewSessionHub()
	rec := &recorder{}

	hub.Subscribe("t2", &models.Identity{Name: "Ann"}, time.Now().Add(20*time.Millisecond), rec.listen)

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Nil(t, rec.snapshot()[1])
	assert.Zero(t, hub.Subscribers("t2"))
}

func TestSessionHub_SignedOutSubscriber(t *testing.T) {
	hub := NewSessionHub()
	rec := &recorder{}

	hub.Subscribe("t3", nil, time.Now().Add(time.Hour), rec.listen)

	assert.Equal(t, []*models.Identity{nil}, rec.snapshot())
	assert.Zero(t, hub.Subscribers("t3"))
}

func TestSessionHub_TransitionDuringFirstDelivery(t *testing.T) {
	hub := NewSessionHub()
	ann := &models.Identity{Email: "ann@example.com"}
	rec := &recorder{}

	done := make(chan struct{})
	first := true
	listener := func(id *models.Identity) {
		if first {
			first = false
			go func() {
				hub.Publish("t4", nil)
				close(done)
			}()
			// the publish above has to wait for this call to return
			time.Sleep(20 * time.Millisecond)
		}
		rec.listen(id)
	}

	hub.Subscribe("t4", ann, time.Time{}, listener)
	<-done

	assert.Equal(t, []*models.Identity{ann, nil}, rec.snapshot())
	assert.Zero(t, hub.Subscribers("t4"))
}

func TestSessionHub_EndsOnce(t *testing.T) {
	hub := NewSessionHub()
	rec := &recorder{}

	hub.Subscribe("t5", &models.Identity{Name: "Ann"}, time.Now().Add(10*time.Millisecond), rec.listen)
	hub.Publish("t5", nil)
	time.Sleep(30 * time.Millisecond)

	assert.Len(t, rec.snapshot(), 2)
}
