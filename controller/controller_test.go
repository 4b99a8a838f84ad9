package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oliverisaac/memocal/calendar"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/oliverisaac/memocal/types"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	memos     map[string]string
	fetchErr  error
	saveErr   error
	deleteErr error
	panics    bool
	fetches   int
	saves     []string
}

func newFakeService() *fakeService {
	return &fakeService{memos: map[string]string{}}
}

func (f *fakeService) FetchAll(context.Context) mo.Result[map[string]string] {
	f.fetches++
	if f.fetchErr != nil {
		return mo.Err[map[string]string](f.fetchErr)
	}
	out := map[string]string{}
	for k, v := range f.memos {
		out[k] = v
	}
	return mo.Ok(out)
}

func (f *fakeService) Save(ctx context.Context, date string, text string) mo.Result[struct{}] {
	if f.panics {
		panic("driver bug")
	}
	f.saves = append(f.saves, date+"="+text)
	if f.saveErr != nil {
		return mo.Err[struct{}](f.saveErr)
	}
	if strings.TrimSpace(text) == "" {
		return f.Delete(ctx, date)
	}
	f.memos[date] = text
	return mo.Ok(struct{}{})
}

func (f *fakeService) Delete(_ context.Context, date string) mo.Result[struct{}] {
	if f.deleteErr != nil {
		return mo.Err[struct{}](f.deleteErr)
	}
	delete(f.memos, date)
	return mo.Ok(struct{}{})
}

type toasts []types.Toast

func (t *toasts) Notify(toast types.Toast) {
	*t = append(*t, toast)
}

var june10 = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func TestLoadAdoptsStoreStateOnce(t *testing.T) {
	svc := newFakeService()
	svc.memos["2024-06-10"] = "Dentist"
	c := New(svc, WithLocation(time.UTC))

	var got toasts
	assert.True(t, c.Load(context.Background(), &got))
	assert.True(t, c.Load(context.Background(), &got))

	assert.Equal(t, 1, svc.fetches)
	assert.Equal(t, map[string]string{"2024-06-10": "Dentist"}, c.Memos())
	assert.Empty(t, got)
}

func TestLoadFailureStartsEmptyAndToasts(t *testing.T) {
	svc := newFakeService()
	svc.fetchErr = fmt.Errorf("fetch failed: connection refused")
	c := New(svc, WithLocation(time.UTC), WithMessages(EnglishMessages))

	var got toasts
	assert.False(t, c.Load(context.Background(), &got))
	assert.True(t, c.Loaded())
	assert.Empty(t, c.Memos())
	require.Len(t, got, 1)
	assert.True(t, got[0].IsError())
	assert.Equal(t, "fetch failed: connection refused", got[0].Description)
}

func TestSaveUpdatesLocalStateAfterSuccess(t *testing.T) {
	svc := newFakeService()
	c := New(svc, WithLocation(time.UTC), WithMessages(EnglishMessages))
	c.Load(context.Background(), Discard)

	var got toasts
	assert.True(t, c.Save(context.Background(), june10, "Dentist", &got))
	assert.Equal(t, map[string]string{"2024-06-10": "Dentist"}, c.Memos())
	require.Len(t, got, 1)
	assert.Equal(t, types.Toast{Level: types.ToastSuccess, Title: "Success", Description: "Memo saved"}, got[0])

	assert.True(t, c.Save(context.Background(), june10, "  ", &got))
	assert.Empty(t, c.Memos())
}

func TestFailedSaveLeavesLocalStateAlone(t *testing.T) {
	svc := newFakeService()
	svc.memos["2024-06-10"] = "Dentist"
	c := New(svc, WithLocation(time.UTC))
	c.Load(context.Background(), Discard)

	svc.saveErr = fmt.Errorf("update failed: locked")
	var got toasts
	assert.False(t, c.Save(context.Background(), june10, "Doctor", &got))

	assert.Equal(t, map[string]string{"2024-06-10": "Dentist"}, c.Memos())
	require.Len(t, got, 1)
	assert.Equal(t, "update failed: locked", got[0].Description)
	assert.Equal(t, JapaneseMessages.ErrorTitle, got[0].Title)
}

func TestFailedDeleteLeavesLocalStateAlone(t *testing.T) {
	svc := newFakeService()
	svc.memos["2024-06-10"] = "Dentist"
	c := New(svc, WithLocation(time.UTC))
	c.Load(context.Background(), Discard)

	svc.deleteErr = fmt.Errorf("delete failed: locked")
	var got toasts
	assert.False(t, c.Delete(context.Background(), "2024-06-10", &got))
	assert.Contains(t, c.Memos(), "2024-06-10")

	svc.deleteErr = nil
	assert.True(t, c.Delete(context.Background(), "2024-06-10", &got))
	assert.NotContains(t, c.Memos(), "2024-06-10")
	require.Len(t, got, 2)
	assert.True(t, got[0].IsError())
	assert.False(t, got[1].IsError())
}

func TestPanickingServiceIsReportedAsUnexpected(t *testing.T) {
	svc := newFakeService()
	svc.panics = true
	c := New(svc, WithLocation(time.UTC), WithMessages(EnglishMessages))

	var got toasts
	assert.False(t, c.Save(context.Background(), june10, "Dentist", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "An unexpected error occurred", got[0].Description)
}

func TestSelectOpensEditorOnSelectedMemo(t *testing.T) {
	svc := newFakeService()
	svc.memos["2024-06-10"] = "Dentist"
	c := New(svc, WithLocation(time.UTC))
	c.Load(context.Background(), Discard)

	d := c.Select(june10, Discard)
	selected, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, june10, selected)
	assert.True(t, d.IsOpen())
	assert.Equal(t, "Dentist", d.Text())
	assert.True(t, d.CanDelete())

	d.SetText("Dentist 10:00")
	assert.True(t, d.Save(context.Background()))
	assert.False(t, d.IsOpen())
	assert.Equal(t, []string{"2024-06-10=Dentist 10:00"}, svc.saves)
	assert.Equal(t, "Dentist 10:00", c.Memos()["2024-06-10"])
}

func TestSaveSelectedWithoutSelection(t *testing.T) {
	c := New(newFakeService(), WithLocation(time.UTC))
	var got toasts
	assert.False(t, c.SaveSelected(context.Background(), "Dentist", &got))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsError())
}

func TestDialogSavesUnderTheDateItWasOpenedFor(t *testing.T) {
	svc := newFakeService()
	c := New(svc, WithLocation(time.UTC))
	c.Load(context.Background(), Discard)

	first := c.Select(june10, Discard)
	second := c.Select(june10.AddDate(0, 0, 1), Discard)

	first.SetText("Dentist")
	require.True(t, first.Save(context.Background()))
	assert.Equal(t, []string{"2024-06-10=Dentist"}, svc.saves)

	second.SetText("Haircut")
	require.True(t, second.Save(context.Background()))
	assert.Equal(t, map[string]string{
		"2024-06-10": "Dentist",
		"2024-06-11": "Haircut",
	}, c.Memos())
}

func TestStoreFailuresAreLocalized(t *testing.T) {
	svc := newFakeService()
	svc.saveErr = &memostore.Failure{
		Kind:    memostore.KindUpdate,
		Message: "update failed: database is locked",
		Err:     fmt.Errorf("database is locked"),
	}

	var got toasts
	ja := New(svc, WithLocation(time.UTC))
	assert.False(t, ja.Save(context.Background(), june10, "Dentist", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "メモの更新に失敗しました: database is locked", got[0].Description)

	got = nil
	en := New(svc, WithLocation(time.UTC), WithMessages(EnglishMessages))
	assert.False(t, en.Save(context.Background(), june10, "Dentist", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "update failed: database is locked", got[0].Description)
}

func TestSaveUsesControllerLocationForKeys(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	svc := newFakeService()
	c := New(svc, WithLocation(tokyo))

	// 16:00 UTC on the 9th is already the 10th in Tokyo.
	assert.True(t, c.Save(context.Background(), time.Date(2024, time.June, 9, 16, 0, 0, 0, time.UTC), "Dentist", Discard))
	assert.Equal(t, []string{"2024-06-10=Dentist"}, svc.saves)
}

func TestDentistScenarioAgainstStore(t *testing.T) {
	db, err := memostore.Open(types.Config{DBPath: filepath.Join(t.TempDir(), "memos.db")})
	require.NoError(t, err)
	store := memostore.New(db)
	ctx := context.Background()

	c := New(store, WithLocation(time.UTC))
	require.True(t, c.Load(ctx, Discard))

	view := calendar.New(
		calendar.WithLocation(time.UTC),
		calendar.WithClock(func() time.Time { return june10 }),
	)
	assert.Empty(t, view.Render(c.Memos()).Marked())

	d := c.Select(june10, Discard)
	d.SetText("Dentist")
	require.True(t, d.Save(ctx))

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-06-10", records[0].Date)
	assert.Equal(t, "Dentist", records[0].Text)
	assert.Equal(t, []int{10}, view.Render(c.Memos()).Marked())

	d = c.Select(june10, Discard)
	assert.Equal(t, "Dentist", d.Text())
	d.SetText("")
	require.True(t, d.Save(ctx))

	records, err = store.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, view.Render(c.Memos()).Marked())
}
