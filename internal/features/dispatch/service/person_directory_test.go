package service

import (
	"context"
	"errors"
	"testing"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonDirectory_SearchAndGet(t *testing.T) {
	ctx := context.Background()
	store := new(MockPersonStore)
	dir := NewPersonDirectory(store, nil, nil)

	ana := domain.Person{ID: 3, Name: "Ana Silva", Phone: "11999990000", Address: "Rua A, 10", Active: true}
	store.On("SearchPeople", ctx, "ana").Return([]domain.Person{ana}, nil).Once()

	people, err := dir.Search(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, people, 1)
	assert.Equal(t, "Ana Silva | (11999990000)", people[0].Label())

	// Found in the results, no store call.
	got, err := dir.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", got.Name)

	store.On("GetPerson", ctx, int64(9)).Return(nil, domain.ErrPersonNotFound).Once()
	_, err = dir.Get(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)

	store.AssertExpectations(t)
}

func TestPersonDirectory_DraftFor(t *testing.T) {
	ctx := context.Background()
	store := new(MockPersonStore)
	dir := NewPersonDirectory(store, nil, nil)

	store.On("GetPerson", ctx, int64(3)).
		Return(&domain.Person{ID: 3, Name: "Ana", Address: "Rua A, 10"}, nil).Once()

	draft, err := dir.DraftFor(ctx, 3, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), draft.PersonID)
	assert.Equal(t, "Rua A, 10", draft.PickupAddress)
	assert.Equal(t, "user-1", draft.CreatedBy)
}

func TestPersonDirectory_Create(t *testing.T) {
	ctx := context.Background()
	store := new(MockPersonStore)
	dir := NewPersonDirectory(store, nil, nil)

	_, err := dir.Create(ctx, domain.PersonDraft{Name: "  ", Phone: "119"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "CreatePerson")

	draft := domain.PersonDraft{Name: "Bruno", Phone: "11988887777"}
	store.On("CreatePerson", ctx, draft).Return(&domain.Person{ID: 5, Name: "Bruno", Active: true}, nil).Once()

	p, err := dir.Create(ctx, domain.PersonDraft{Name: " Bruno ", Phone: "11988887777 "})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Len(t, dir.Results(), 1)
}

func TestPersonDirectory_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("RollbackInResults", func(t *testing.T) {
		store := new(MockPersonStore)
		dir := NewPersonDirectory(store, nil, nil)
		store.On("SearchPeople", ctx, "ana").Return([]domain.Person{{ID: 3, Name: "Ana", Active: true}}, nil)
		_, err := dir.Search(ctx, "ana")
		require.NoError(t, err)

		store.On("SetPersonActive", ctx, int64(3), false).Return(errors.New("denied")).Once()
		p, err := dir.Toggle(ctx, 3)
		assert.EqualError(t, err, "denied")
		assert.True(t, p.Active)
		assert.True(t, dir.Results()[0].Active)
	})

	t.Run("InResults", func(t *testing.T) {
		store := new(MockPersonStore)
		dir := NewPersonDirectory(store, nil, nil)
		store.On("SearchPeople", ctx, "ana").Return([]domain.Person{{ID: 3, Name: "Ana", Active: true}}, nil)
		_, err := dir.Search(ctx, "ana")
		require.NoError(t, err)

		store.On("SetPersonActive", ctx, int64(3), false).Return(nil).Once()
		p, err := dir.Toggle(ctx, 3)
		require.NoError(t, err)
		assert.False(t, p.Active)
		assert.False(t, dir.Results()[0].Active)
	})

	t.Run("NotInResults", func(t *testing.T) {
		store := new(MockPersonStore)
		dir := NewPersonDirectory(store, nil, nil)
		store.On("GetPerson", ctx, int64(4)).Return(&domain.Person{ID: 4, Active: false}, nil).Once()
		store.On("SetPersonActive", ctx, int64(4), true).Return(nil).Once()

		p, err := dir.Toggle(ctx, 4)
		require.NoError(t, err)
		assert.True(t, p.Active)
		store.AssertExpectations(t)
	})

	t.Run("Unknown", func(t *testing.T) {
		store := new(MockPersonStore)
		dir := NewPersonDirectory(store, nil, nil)
		store.On("GetPerson", ctx, int64(9)).Return(nil, domain.ErrPersonNotFound).Once()

		_, err := dir.Toggle(ctx, 9)
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
		store.AssertNotCalled(t, "SetPersonActive")
	})
}
