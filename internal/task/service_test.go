package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/todolor/internal/cipher"
	"github.com/roach88/todolor/internal/store"
	"github.com/roach88/todolor/internal/testutil"
)

const testNow = int64(1_700_000_000_000)

func newTestService(t *testing.T) (*Service, *store.Store, *testutil.FixedClock) {
	t.Helper()
	st := testutil.NewStore(t)
	clock := testutil.NewFixedClockMillis(testNow)
	return New(st, clock), st, clock
}

func mustAdd(t *testing.T, svc *Service, task Task) int {
	t.Helper()
	id, err := svc.Add(task)
	require.NoError(t, err)
	return id
}

func TestService_AddAndGetAll(t *testing.T) {
	svc, _, _ := newTestService(t)

	id := mustAdd(t, svc, Task{Title: "Buy milk"})
	assert.Equal(t, 0, id)

	tasks, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []Task{{ID: 0, Title: "Buy milk"}}, tasks)
}

func TestService_AddIgnoresID(t *testing.T) {
	svc, _, _ := newTestService(t)

	mustAdd(t, svc, Task{Title: "a"})
	id := mustAdd(t, svc, Task{ID: 40, Title: "b"})
	assert.Equal(t, 1, id)
}

func TestService_AddRejectsCompleted(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.Add(Task{Title: "a", Completed: testutil.Ptr(testNow)})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	records, err := st.GetAll(Type)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestService_AddRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Add(Task{Description: "no title"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestService_Edit(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "a", Description: "old"})

	id, err := svc.Edit(Changes{ID: 0, Title: testutil.Ptr("b"), Deadline: testutil.Ptr(int64(42))})
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	tasks, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []Task{{ID: 0, Title: "b", Description: "old", Deadline: testutil.Ptr(int64(42))}}, tasks)
}

func TestService_EditErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "a"})

	tests := []struct {
		name    string
		changes Changes
		check   func(error) bool
	}{
		{"completed", Changes{ID: 0, Completed: testutil.Ptr(testNow)}, IsValidationError},
		{"empty_title", Changes{ID: 0, Title: testutil.Ptr("")}, IsValidationError},
		{"empty_description", Changes{ID: 0, Description: testutil.Ptr("")}, IsValidationError},
		{"unknown_id", Changes{ID: 9, Title: testutil.Ptr("x")}, IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Edit(tt.changes)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestService_EditPreservesUnknownFields(t *testing.T) {
	svc, st, _ := newTestService(t)
	_, err := st.Add(Type, store.Record{"title": "a", "priority": "high"})
	require.NoError(t, err)

	_, err = svc.Edit(Changes{ID: 0, Title: testutil.Ptr("b")})
	require.NoError(t, err)

	records, err := st.GetAll(Type)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "high", records[0]["priority"])
	assert.Equal(t, "b", records[0]["title"])
}

func TestService_Complete(t *testing.T) {
	svc, _, clock := newTestService(t)
	mustAdd(t, svc, Task{Title: "a", Deadline: testutil.Ptr(testNow - 1000)})
	mustAdd(t, svc, Task{Title: "b"})

	overdue, err := svc.GetOverdue()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, ids(overdue))

	clock.Advance(time.Second)
	id, err := svc.Complete(0)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	due, err := svc.GetDue()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(due))

	overdue, err = svc.GetOverdue()
	require.NoError(t, err)
	assert.Empty(t, overdue)

	done, err := svc.GetCompleted()
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 0, done[0].ID)
	assert.Equal(t, testNow+1000, *done[0].Completed)
}

func TestService_CompleteErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "a"})

	_, err := svc.Complete(5)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = svc.Complete(0)
	require.NoError(t, err)

	_, err = svc.Complete(0)
	require.Error(t, err)
	assert.True(t, IsAlreadyCompleted(err))
}

func TestService_Delete(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "a"})
	mustAdd(t, svc, Task{Title: "b"})

	require.NoError(t, svc.Delete(0))

	tasks, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(tasks))

	err = svc.Delete(0)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, store.IsNotFound(err))
}

func TestService_GetDueOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "A", Deadline: testutil.Ptr(int64(100))})
	mustAdd(t, svc, Task{Title: "B", Deadline: testutil.Ptr(int64(50))})
	mustAdd(t, svc, Task{Title: "C"})
	mustAdd(t, svc, Task{Title: "D"})

	due, err := svc.GetDue()
	require.NoError(t, err)

	titles := make([]string, len(due))
	for i, d := range due {
		titles[i] = d.Title
	}
	assert.Equal(t, []string{"B", "A"}, titles[:2])
	assert.ElementsMatch(t, []string{"C", "D"}, titles[2:])
}

func TestService_GetOverdueFilter(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "past", Deadline: testutil.Ptr(testNow - 10)})
	mustAdd(t, svc, Task{Title: "now", Deadline: testutil.Ptr(testNow)})
	mustAdd(t, svc, Task{Title: "future", Deadline: testutil.Ptr(testNow + 10)})
	mustAdd(t, svc, Task{Title: "none"})
	mustAdd(t, svc, Task{Title: "older", Deadline: testutil.Ptr(testNow - 20)})
	_, err := svc.Complete(mustAdd(t, svc, Task{Title: "done", Deadline: testutil.Ptr(testNow - 30)}))
	require.NoError(t, err)

	overdue, err := svc.GetOverdue()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 0}, ids(overdue))
}

func TestService_GetCompletedOrder(t *testing.T) {
	svc, _, clock := newTestService(t)
	for _, title := range []string{"a", "b", "c"} {
		mustAdd(t, svc, Task{Title: title})
	}

	for _, id := range []int{1, 0, 2} {
		clock.Advance(time.Minute)
		_, err := svc.Complete(id)
		require.NoError(t, err)
	}

	done, err := svc.GetCompleted()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, ids(done))
}

func TestService_CorruptedRecordFailsFast(t *testing.T) {
	svc, st, _ := newTestService(t)
	mustAdd(t, svc, Task{Title: "ok"})
	_, err := st.Add(Type, store.Record{"note": "no title"})
	require.NoError(t, err)

	for name, call := range map[string]func() ([]Task, error){
		"GetAll":       svc.GetAll,
		"GetDue":       svc.GetDue,
		"GetOverdue":   svc.GetOverdue,
		"GetCompleted": svc.GetCompleted,
	} {
		t.Run(name, func(t *testing.T) {
			tasks, err := call()
			require.Error(t, err)
			assert.True(t, IsCorrupted(err))
			assert.Nil(t, tasks)
		})
	}
}

func TestService_NonObjectElementIsCorrupted(t *testing.T) {
	svc, st, _ := newTestService(t)
	path := filepath.Join(st.Dir(), Type)
	plain := append([]byte{0x00, 0x00}, `[{"id":0,"title":"a"},"stray"]`...)
	require.NoError(t, os.WriteFile(path, cipher.Encode(plain), 0o644))

	_, err := svc.GetAll()
	require.Error(t, err)
	assert.True(t, IsCorrupted(err))
	assert.False(t, store.IsFormatError(err))
}

func TestService_FormatErrorPropagates(t *testing.T) {
	svc, st, _ := newTestService(t)
	path := filepath.Join(st.Dir(), Type)
	require.NoError(t, os.WriteFile(path, cipher.Encode([]byte{0x00}), 0o644))

	_, err := svc.GetAll()
	require.Error(t, err)
	assert.True(t, store.IsFormatError(err))
}

func TestNew_DefaultClock(t *testing.T) {
	svc := New(testutil.NewStore(t), nil)
	assert.IsType(t, SystemClock{}, svc.clock)
}
