package recordsvc

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourses(t *testing.T, m Client) {
	t.Helper()
	res, err := m.Create(context.Background(), Courses, []Record{
		{"name": "Physics", "credits": int64(4), "semester": "Fall 2026"},
		{"name": "Algebra", "credits": int64(3), "semester": "Fall 2026"},
		{"name": "Biology", "credits": int64(2), "semester": "Spring 2027"},
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Succeeded(), 3)
}

func names(rs []Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestMemoryCreateAssignsSequentialIDs(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)

	res, err := m.GetByID(context.Background(), Courses, 2, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Algebra", res.Data["name"])
	assert.Equal(t, int64(2), res.Data[FieldID])
}

func TestMemoryListWhereOrderPage(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)
	ctx := context.Background()

	res, err := m.List(ctx, Courses, ListParams{OrderBy: []Order{{Field: "name"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra", "Biology", "Physics"}, names(res.Data))

	res, err = m.List(ctx, Courses, ListParams{
		Where:   []Where{{Field: "semester", Operator: EqualTo, Values: []any{"Fall 2026"}}},
		OrderBy: []Order{{Field: "credits", Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics", "Algebra"}, names(res.Data))

	res, err = m.List(ctx, Courses, ListParams{
		Where: []Where{{Field: "credits", Operator: GreaterThanOrEqualTo, Values: []any{3}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = m.List(ctx, Courses, ListParams{
		Where: []Where{{Field: "name", Operator: Contains, Values: []any{"OLO"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology"}, names(res.Data))

	res, err = m.List(ctx, Courses, ListParams{
		Where:   []Where{{Field: FieldID, Operator: In, Values: []any{int64(1), int64(3)}}},
		OrderBy: []Order{{Field: "name"}},
		Limit:   1, Offset: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"Physics"}, names(res.Data))
}

func TestMemoryFieldsProjection(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)

	res, err := m.List(context.Background(), Courses, ListParams{Fields: []string{"name"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, Record{FieldID: int64(1), "name": "Physics"}, res.Data[0])
}

func TestMemoryUpdateMergesAndReportsMissing(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)
	ctx := context.Background()

	res, err := m.Update(ctx, Courses, []Record{
		{FieldID: int64(1), "credits": int64(5)},
		{FieldID: int64(42), "credits": int64(1)},
		{"credits": int64(1)},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.True(t, res.Results[0].Success)
	assert.Equal(t, "Physics", res.Results[0].Data["name"])
	assert.Equal(t, int64(5), res.Results[0].Data["credits"])
	assert.Equal(t, ErrNotFound.Error(), res.Results[1].Message)
	assert.Equal(t, ErrMissingID.Error(), res.Results[2].Message)
	assert.Len(t, res.Failed(), 2)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)
	ctx := context.Background()

	res, err := m.Delete(ctx, Courses, []int64{1, 99})
	require.NoError(t, err)
	assert.Len(t, res.Succeeded(), 1)
	assert.Len(t, res.Failed(), 1)

	got, err := m.GetByID(ctx, Courses, 1, nil)
	require.NoError(t, err)
	assert.False(t, got.Success)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	seedCourses(t, m)
	ctx := context.Background()

	res, _ := m.GetByID(ctx, Courses, 1, nil)
	res.Data["name"] = "mutated"

	again, _ := m.GetByID(ctx, Courses, 1, nil)
	assert.Equal(t, "Physics", again.Data["name"])
}

func TestMemoryUnknownCollection(t *testing.T) {
	m := NewMemory()
	res, err := m.List(context.Background(), Collection("teacher"), ListParams{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, ErrUnknownCollection.Error(), res.Message)
}

func TestMemoryConcurrentCreate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Create(ctx, Students, []Record{{"first_name": "x"}})
		}()
	}
	wg.Wait()

	res, err := m.List(ctx, Students, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Total)
}
