package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"transition-crm/internal/config"
	"transition-crm/internal/logger"
	"transition-crm/internal/matching"
	"transition-crm/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(config.TestConfig().Logger)
	m.Run()
}

type fakeFolderSource struct {
	folders []matching.FolderRecord
	err     error
}

func (f *fakeFolderSource) ListMemberFolders(ctx context.Context) ([]matching.FolderRecord, error) {
	return f.folders, f.err
}

type fakeMemberLister struct {
	members []matching.MemberRecord
	err     error
}

func (f *fakeMemberLister) ListActive(ctx context.Context) ([]matching.MemberRecord, error) {
	return f.members, f.err
}

type fakeRunStore struct {
	run         repository.MatchRun
	suggestions []matching.MatchSuggestion
	calls       int
	err         error
}

func (f *fakeRunStore) CreateRun(ctx context.Context, run repository.MatchRun, suggestions []matching.MatchSuggestion) error {
	f.calls++
	f.run = run
	f.suggestions = suggestions
	return f.err
}

func testInputs() (*fakeFolderSource, *fakeMemberLister) {
	folders := &fakeFolderSource{folders: []matching.FolderRecord{
		{ID: "f1", Name: "Smith, John"},
		{ID: "f2", Name: "Unrelated Stuff"},
	}}
	members := &fakeMemberLister{members: []matching.MemberRecord{
		{MemberID: "m1", FirstName: "John", LastName: "Smith"},
		{MemberID: "m2", FirstName: "Jane", LastName: "Doe"},
	}}
	return folders, members
}

func TestRunScanPersistsRun(t *testing.T) {
	folders, members := testInputs()
	store := &fakeRunStore{}
	svc := NewMatchService(folders, members, store)

	outcome, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
	require.NoError(t, err)

	assert.Equal(t, 1, store.calls)
	assert.Equal(t, outcome.RunID, store.run.ID)
	assert.Equal(t, outcome.Result.Suggestions, store.suggestions)
	assert.Equal(t, outcome.Result.Stats, store.run.Stats)

	require.Len(t, outcome.Result.Suggestions, 1)
	assert.Equal(t, "f1", outcome.Result.Suggestions[0].Folder.ID)
	assert.Equal(t, "m1", outcome.Result.Suggestions[0].Member.MemberID)
	require.Len(t, outcome.Result.UnmatchedFolders, 1)
	assert.Equal(t, "f2", outcome.Result.UnmatchedFolders[0].ID)
}

func TestRunScanDeterministicResult(t *testing.T) {
	folders, members := testInputs()
	svc := NewMatchService(folders, members, &fakeRunStore{})

	first, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
	require.NoError(t, err)
	second, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first.Result, second.Result))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunScanInvalidThresholdFallsBack(t *testing.T) {
	folders, members := testInputs()
	store := &fakeRunStore{}
	svc := NewMatchService(folders, members, store)

	outcome, err := svc.RunScan(context.Background(), 250)
	require.NoError(t, err)

	assert.Equal(t, matching.DefaultMinConfidence, outcome.MinConfidence)
	assert.Equal(t, matching.DefaultMinConfidence, store.run.MinConfidence)
}

func TestRunScanInputErrorsAbort(t *testing.T) {
	t.Run("folder source failure", func(t *testing.T) {
		_, members := testInputs()
		svc := NewMatchService(&fakeFolderSource{err: errors.New("drive down")}, members, &fakeRunStore{})

		_, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
		assert.ErrorContains(t, err, "fetch folders")
	})

	t.Run("member fetch failure", func(t *testing.T) {
		folders, _ := testInputs()
		svc := NewMatchService(folders, &fakeMemberLister{err: errors.New("db down")}, &fakeRunStore{})

		_, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
		assert.ErrorContains(t, err, "fetch members")
	})

	t.Run("persist failure", func(t *testing.T) {
		folders, members := testInputs()
		svc := NewMatchService(folders, members, &fakeRunStore{err: errors.New("insert failed")})

		_, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
		assert.ErrorContains(t, err, "persist match run")
	})
}

func TestRunScanEmptyInputs(t *testing.T) {
	members := &fakeMemberLister{members: []matching.MemberRecord{
		{MemberID: "m1", FirstName: "Jane", LastName: "Doe"},
	}}
	svc := NewMatchService(&fakeFolderSource{}, members, &fakeRunStore{})

	outcome, err := svc.RunScan(context.Background(), matching.DefaultMinConfidence)
	require.NoError(t, err)

	assert.Empty(t, outcome.Result.Suggestions)
	assert.Equal(t, members.members, outcome.Result.UnmatchedMembers)
	assert.Equal(t, 0, outcome.Result.Stats.TotalFolders)
}
