package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		change Change
		want   bool
	}{
		{
			name:   "empty filter matches any change",
			filter: Filter{},
			change: Change{Topic: TopicEventAdded, Entity: EntityKindEvent, EntityID: "e-1"},
			want:   true,
		},
		{
			name:   "topic filter matches",
			filter: Filter{Topics: []Topic{TopicEventAdded}},
			change: Change{Topic: TopicEventAdded, Entity: EntityKindEvent},
			want:   true,
		},
		{
			name:   "topic filter rejects non-matching",
			filter: Filter{Topics: []Topic{TopicEventAdded}},
			change: Change{Topic: TopicTrackDeleted, Entity: EntityKindTrack},
			want:   false,
		},
		{
			name:   "multiple topics match any",
			filter: Filter{Topics: []Topic{TopicEventAdded, TopicEventDeleted}},
			change: Change{Topic: TopicEventDeleted, Entity: EntityKindEvent},
			want:   true,
		},
		{
			name:   "entity kind filter matches",
			filter: Filter{Entities: []EntityKind{EntityKindTrack}},
			change: Change{Topic: TopicTrackAdded, Entity: EntityKindTrack},
			want:   true,
		},
		{
			name:   "entity kind filter rejects non-matching",
			filter: Filter{Entities: []EntityKind{EntityKindTrack}},
			change: Change{Topic: TopicEventAdded, Entity: EntityKindEvent},
			want:   false,
		},
		{
			name:   "entity ID filter matches",
			filter: Filter{EntityID: "e-1"},
			change: Change{Topic: TopicEventUpdated, Entity: EntityKindEvent, EntityID: "e-1"},
			want:   true,
		},
		{
			name:   "entity ID filter rejects non-matching",
			filter: Filter{EntityID: "e-1"},
			change: Change{Topic: TopicEventUpdated, Entity: EntityKindEvent, EntityID: "e-2"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.Matches(tt.change))
		})
	}
}

func TestPublisher_SubscribeAndPublish(t *testing.T) {
	p := NewInMemoryPublisher()

	var got []Change
	err := p.Subscribe("view", Filter{Topics: []Topic{TopicDataChanged}}, func(change Change) {
		got = append(got, change)
	})
	require.NoError(t, err)
	require.Equal(t, 1, p.SubscriberCount())

	p.Publish(Change{Topic: TopicDataChanged, Entity: EntityKindEvent, Action: ActionAdd, EntityID: "e-1"})
	p.Publish(Change{Topic: TopicEventAdded, Entity: EntityKindEvent, Action: ActionAdd, EntityID: "e-1"})

	require.Len(t, got, 1)
	require.Equal(t, "e-1", got[0].EntityID)
	require.Equal(t, ActionAdd, got[0].Action)
}

func TestPublisher_PublishIsSynchronous(t *testing.T) {
	p := NewInMemoryPublisher()

	delivered := false
	require.NoError(t, p.Subscribe("sync", Filter{}, func(Change) {
		delivered = true
	}))

	p.Publish(Change{Topic: TopicDataChanged})
	require.True(t, delivered, "handler must run before Publish returns")
}

func TestPublisher_EachHandlerInvokedOnce(t *testing.T) {
	p := NewInMemoryPublisher()

	counts := map[string]int{}
	for _, id := range []string{"a", "b", "c"} {
		id := id
		require.NoError(t, p.Subscribe(id, Filter{}, func(Change) {
			counts[id]++
		}))
	}

	p.Publish(Change{Topic: TopicDataChanged})

	for _, id := range []string{"a", "b", "c"} {
		require.Equal(t, 1, counts[id])
	}
}

func TestPublisher_SubscribeErrors(t *testing.T) {
	p := NewInMemoryPublisher()

	require.ErrorIs(t, p.Subscribe("", Filter{}, func(Change) {}), ErrInvalidSubscriptionID)
	require.ErrorIs(t, p.Subscribe("x", Filter{}, nil), ErrNilHandler)

	require.NoError(t, p.Subscribe("x", Filter{}, func(Change) {}))
	require.ErrorIs(t, p.Subscribe("x", Filter{}, func(Change) {}), ErrSubscriptionExists)
}

func TestPublisher_Unsubscribe(t *testing.T) {
	p := NewInMemoryPublisher()

	calls := 0
	require.NoError(t, p.Subscribe("view", Filter{}, func(Change) { calls++ }))
	p.Publish(Change{Topic: TopicDataChanged})

	require.NoError(t, p.Unsubscribe("view"))
	require.ErrorIs(t, p.Unsubscribe("view"), ErrSubscriptionNotFound)

	p.Publish(Change{Topic: TopicDataChanged})
	require.Equal(t, 1, calls)
}
