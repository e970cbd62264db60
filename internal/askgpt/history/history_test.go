package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/longkey1/askgpt/internal/askgpt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(ts time.Time, content string) askgpt.HistoricMessage {
	return askgpt.HistoricMessage{Timestamp: ts, Message: askgpt.UserMessage(content)}
}

func contents(entries []askgpt.HistoricMessage) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message.Content)
	}
	return out
}

func TestRecent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	tests := []struct {
		name    string
		entries []askgpt.HistoricMessage
		want    []string
	}{
		{
			name:    "empty history",
			entries: nil,
			want:    []string{},
		},
		{
			name: "boundary is inclusive",
			entries: []askgpt.HistoricMessage{
				entryAt(now.Add(-15*time.Minute), "exactly"),
				entryAt(now.Add(-15*time.Minute-time.Nanosecond), "just past"),
			},
			want: []string{"exactly"},
		},
		{
			name: "order is preserved",
			entries: []askgpt.HistoricMessage{
				entryAt(now.Add(-time.Hour), "old"),
				entryAt(now.Add(-10*time.Minute), "a"),
				entryAt(now.Add(-20*time.Minute), "stale"),
				entryAt(now.Add(-5*time.Minute), "b"),
				entryAt(now, "c"),
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "future timestamps are kept",
			entries: []askgpt.HistoricMessage{
				entryAt(now.Add(time.Minute), "skewed"),
			},
			want: []string{"skewed"},
		},
		{
			name: "offsets are compared as instants",
			entries: []askgpt.HistoricMessage{
				entryAt(now.Add(-14*time.Minute).In(time.FixedZone("", 9*60*60)), "tokyo"),
				entryAt(now.Add(-16*time.Minute).In(time.FixedZone("", -5*60*60)), "new york"),
			},
			want: []string{"tokyo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recent(tt.entries, now, window)
			assert.Equal(t, tt.want, contents(got))
		})
	}
}

func TestAppend_Retention(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var log []askgpt.HistoricMessage
	added := 0

	for run := 0; run < 80; run++ {
		user := entryAt(start.Add(time.Duration(added)*time.Second), fmt.Sprintf("m%03d", added))
		added++
		reply := entryAt(start.Add(time.Duration(added)*time.Second), fmt.Sprintf("m%03d", added))
		added++

		log = Append(log, DefaultLimit, user, reply)
		require.LessOrEqual(t, len(log), DefaultLimit)
	}

	require.Len(t, log, DefaultLimit)
	for i, e := range log {
		assert.Equal(t, fmt.Sprintf("m%03d", added-DefaultLimit+i), e.Message.Content)
	}
}

func TestAppend_DoesNotModifyInput(t *testing.T) {
	now := time.Now()
	entries := []askgpt.HistoricMessage{entryAt(now, "a"), entryAt(now, "b"), entryAt(now, "c")}

	got := Append(entries[:2], 2, entryAt(now, "d"))

	assert.Equal(t, []string{"b", "d"}, contents(got))
	assert.Equal(t, []string{"a", "b", "c"}, contents(entries))
}

func TestAppend_UnderLimit(t *testing.T) {
	now := time.Now()
	got := Append(nil, DefaultLimit, entryAt(now, "q"), entryAt(now, "a"))
	assert.Equal(t, []string{"q", "a"}, contents(got))
}
