package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptions(tasks []*Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description)
	}
	return out
}

func isSorted(tasks []*Task, order Order) bool {
	for i := 1; i < len(tasks); i++ {
		if order(tasks[i-1], tasks[i]) > 0 {
			return false
		}
	}
	return true
}

func TestListAddSortsByDefaultOrder(t *testing.T) {
	l := NewList()
	inputs := []struct {
		desc     string
		p        Priority
		reminder bool
	}{
		{"walk dog", High, false},
		{"buy milk", Low, false},
		{"read", Medium, true},
		{"buy milk", Low, true},
		{"answer mail", High, true},
	}
	for i, in := range inputs {
		l.Add(in.desc, in.p, in.reminder, "")
		require.Equal(t, i+1, l.Len())
		require.True(t, isSorted(l.All(), DefaultOrder))
	}

	got := l.All()
	assert.Equal(t, []string{"buy milk", "buy milk", "read", "answer mail", "walk dog"}, descriptions(got))
	assert.True(t, got[0].ReminderSet, "reminder task sorts before its twin")
	assert.False(t, got[1].ReminderSet)
}

func TestDescriptionBeatsReminder(t *testing.T) {
	l := NewList()
	l.Add("B", High, false, "")
	l.Add("A", High, true, "01/01/2025")

	assert.Equal(t, []string{"A", "B"}, descriptions(l.All()))
}

func TestReminderTieBreak(t *testing.T) {
	l := NewList()
	l.Add("X", Low, false, "")
	l.Add("X", Low, true, "")

	got := l.All()
	require.Len(t, got, 2)
	assert.True(t, got[0].ReminderSet)
	assert.False(t, got[1].ReminderSet)
}

func TestDefaultOrderIsTotalPreorder(t *testing.T) {
	var tasks []*Task
	for _, p := range Priorities {
		for _, d := range []string{"a", "b"} {
			for _, r := range []bool{false, true} {
				tasks = append(tasks, NewTask(d, p, r, ""))
			}
		}
	}
	for _, a := range tasks {
		for _, b := range tasks {
			ab, ba := DefaultOrder(a, b), DefaultOrder(b, a)
			switch {
			case ab < 0:
				assert.Positive(t, ba)
			case ab > 0:
				assert.Negative(t, ba)
			default:
				assert.Zero(t, ba)
				assert.Equal(t, a.Priority, b.Priority)
				assert.Equal(t, a.Description, b.Description)
				assert.Equal(t, a.ReminderSet, b.ReminderSet)
			}
		}
	}
}

func TestSortIsIdempotent(t *testing.T) {
	l := NewList()
	l.Add("c", Medium, false, "")
	l.Add("a", High, true, "")
	l.Add("b", Low, false, "")
	before := l.All()

	l.SortBy(DefaultOrder)
	assert.Equal(t, before, l.All())
}

func TestDeleteAt(t *testing.T) {
	l := NewList()
	l.Add("a", Low, false, "")
	l.Add("b", Medium, false, "")
	l.Add("c", High, false, "")

	t.Run("out of range is a no-op", func(t *testing.T) {
		before := l.All()
		for _, i := range []int{-1, 3, 100} {
			l.DeleteAt(i)
			after := l.All()
			require.Len(t, after, len(before))
			for k := range before {
				assert.Same(t, before[k], after[k])
			}
		}
	})

	t.Run("in range removes", func(t *testing.T) {
		l.DeleteAt(1)
		assert.Equal(t, []string{"a", "c"}, descriptions(l.All()))
	})
}

func TestEditAt(t *testing.T) {
	l := NewList()
	l.Add("a", Low, false, "")
	l.Add("b", Medium, false, "")

	l.EditAt(0, "z", High, true, "09/09/2029")
	got := l.All()
	assert.Equal(t, []string{"b", "z"}, descriptions(got))
	assert.Equal(t, "09/09/2029", got[1].DueDate)

	before := l.All()
	l.EditAt(2, "ignored", Low, false, "")
	l.EditAt(-1, "ignored", Low, false, "")
	assert.Equal(t, before, l.All())
	assert.Equal(t, []string{"b", "z"}, descriptions(l.All()))
}

func TestCompleteFirst(t *testing.T) {
	l := NewList()
	assert.NotPanics(t, l.CompleteFirst)
	assert.Zero(t, l.Len())

	l.Add("later", High, false, "")
	l.Add("sooner", Low, false, "")
	l.CompleteFirst()
	assert.Equal(t, []string{"later"}, descriptions(l.All()))
}

func TestCompleteFirstFollowsCurrentOrder(t *testing.T) {
	l := NewList()
	l.Add("b", Low, false, "")
	l.Add("a", High, false, "")
	l.SortBy(ByDescription)

	l.CompleteFirst()
	assert.Equal(t, []string{"b"}, descriptions(l.All()))
}

func TestSortByCustomOrderUntilNextMutation(t *testing.T) {
	l := NewList()
	l.Add("b", Low, false, "")
	l.Add("a", High, false, "")

	l.SortBy(ByDescription)
	assert.Equal(t, []string{"a", "b"}, descriptions(l.All()))

	l.Add("c", Medium, false, "")
	assert.Equal(t, []string{"b", "c", "a"}, descriptions(l.All()))
}

func TestFilterDoesNotMutate(t *testing.T) {
	l := NewList()
	l.Add("a", High, false, "")
	l.Add("b", Low, true, "01/01/2030")
	l.Add("c", High, true, "")
	before := l.All()

	assert.Equal(t, []string{"a", "c"}, descriptions(l.Filter(WithPriority(High))))
	assert.Equal(t, []string{"b", "c"}, descriptions(l.Filter(WithReminder)))
	assert.Equal(t, []string{"b"}, descriptions(l.Filter(DueOn("01/01/2030"))))
	assert.Empty(t, l.Filter(WithPriority(Medium)))

	assert.Equal(t, before, l.All())
}

func TestAtAndSnapshot(t *testing.T) {
	l := NewList()
	assert.Nil(t, l.At(0))
	assert.NotNil(t, l.All())
	assert.Empty(t, l.All())
	l.Add("a", Low, false, "")
	assert.Equal(t, "a", l.At(0).Description)

	snap := l.All()
	snap[0] = nil
	assert.NotNil(t, l.At(0))
}

func TestAllNeverNilAfterEmptying(t *testing.T) {
	l := NewList()
	l.Add("a", Low, false, "")
	l.CompleteFirst()
	assert.NotNil(t, l.All())
	assert.Empty(t, l.All())
}
