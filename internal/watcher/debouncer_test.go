package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	// Given: a debouncer with short window
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	// When: a single event is added
	d.Add(FileEvent{Path: "Eldara.uproject", Operation: OpModify, Timestamp: time.Now()})

	// Then: the event passes through after the debounce window
	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, "Eldara.uproject", events[0].Path)
		assert.Equal(t, OpModify, events[0].Operation)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_BurstCoalescesIntoOneBatch(t *testing.T) {
	// Given: a debouncer
	d := NewDebouncer(80 * time.Millisecond)
	defer d.Stop()

	// When: an editor writes two files several times in quick succession
	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Path: "Source/Eldara/Eldara.Build.cs", Operation: OpModify})
		d.Add(FileEvent{Path: "Config/DefaultEngine.ini", Operation: OpModify})
		time.Sleep(10 * time.Millisecond)
	}

	// Then: a single batch carries one event per path, sorted
	select {
	case events := <-d.Output():
		require.Len(t, events, 2)
		assert.Equal(t, "Config/DefaultEngine.ini", events[0].Path)
		assert.Equal(t, "Source/Eldara/Eldara.Build.cs", events[1].Path)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_CreateThenDelete_NoEvent(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "Eldara.uproject", Operation: OpCreate})
	d.Add(FileEvent{Path: "Eldara.uproject", Operation: OpDelete})

	select {
	case events := <-d.Output():
		t.Fatalf("expected no batch, got %v", events)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name     string
		prev     Operation
		next     Operation
		want     Operation
		wantKeep bool
	}{
		{"create then modify", OpCreate, OpModify, OpCreate, true},
		{"create then delete", OpCreate, OpDelete, 0, false},
		{"delete then create", OpDelete, OpCreate, OpModify, true},
		{"modify then delete", OpModify, OpDelete, OpDelete, true},
		{"modify then modify", OpModify, OpModify, OpModify, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, keep := coalesce(
				FileEvent{Path: "f", Operation: tt.prev},
				FileEvent{Path: "f", Operation: tt.next},
			)

			assert.Equal(t, tt.wantKeep, keep)
			if keep {
				assert.Equal(t, tt.want, merged.Operation)
			}
		})
	}
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(time.Second)
	d.Add(FileEvent{Path: "f", Operation: OpModify})

	d.Stop()
	d.Stop()
	d.Add(FileEvent{Path: "g", Operation: OpModify})

	_, ok := <-d.Output()
	assert.False(t, ok, "output should be closed")
}
