package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
)

type loaderFunc func(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error)

func (f loaderFunc) LoadLab(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error) {
	return f(ctx, labID, bucket)
}

func knownLabs(ids ...string) Loader {
	return loaderFunc(func(_ context.Context, labID string, _ inventory.Bucket) (models.LabDetail, error) {
		for _, id := range ids {
			if id == labID {
				return models.LabDetail{Lab: models.Lab{ID: id}}, nil
			}
		}
		return models.LabDetail{}, models.ErrLabNotFound
	})
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s.State)
}

func (r *recorder) get() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestNavigator_ReadyAfterLoading(t *testing.T) {
	rec := &recorder{}
	n := NewNavigator(knownLabs("lab-a"), rec.record)

	s := n.Navigate(context.Background(), "lab-a", inventory.BucketWorking)

	assert.Equal(t, StateReady, s.State)
	require.NotNil(t, s.Detail)
	assert.Equal(t, "lab-a", s.Detail.Lab.ID)
	assert.Equal(t, []State{StateLoading, StateReady}, rec.get())
}

func TestNavigator_UnknownLabIsNotFound(t *testing.T) {
	n := NewNavigator(knownLabs("lab-a", "lab-b", "lab-c"), nil)

	s := n.Navigate(context.Background(), "unknown-id", inventory.BucketWorking)

	assert.Equal(t, StateNotFound, s.State)
	assert.Equal(t, "/", s.Home)
	assert.Nil(t, s.Detail)
}

func TestNavigator_FetchErrorIsFailed(t *testing.T) {
	n := NewNavigator(loaderFunc(func(context.Context, string, inventory.Bucket) (models.LabDetail, error) {
		return models.LabDetail{}, errors.New("source unavailable")
	}), nil)

	s := n.Navigate(context.Background(), "lab-a", inventory.BucketAll)

	assert.Equal(t, StateFailed, s.State)
	assert.Equal(t, "source unavailable", s.Error)
}

func TestNavigator_StaleResultDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})

	loader := loaderFunc(func(_ context.Context, labID string, _ inventory.Bucket) (models.LabDetail, error) {
		if labID == "lab-a" {
			close(startedA)
			<-releaseA
		}
		return models.LabDetail{Lab: models.Lab{ID: labID}}, nil
	})
	n := NewNavigator(loader, nil)

	done := make(chan Snapshot, 1)
	go func() { done <- n.Navigate(context.Background(), "lab-a", inventory.BucketWorking) }()

	select {
	case <-startedA:
	case <-time.After(time.Second):
		t.Fatal("first fetch never started")
	}

	sb := n.Navigate(context.Background(), "lab-b", inventory.BucketWorking)
	require.Equal(t, StateReady, sb.State)

	close(releaseA)
	sa := <-done

	// The slow lab-a result must not overwrite lab-b.
	assert.Equal(t, "lab-b", sa.LabID)
	cur := n.Snapshot()
	assert.Equal(t, "lab-b", cur.LabID)
	require.NotNil(t, cur.Detail)
	assert.Equal(t, "lab-b", cur.Detail.Lab.ID)
}

func TestNavigator_RefreshKeepsEpoch(t *testing.T) {
	calls := 0
	n := NewNavigator(loaderFunc(func(_ context.Context, labID string, _ inventory.Bucket) (models.LabDetail, error) {
		calls++
		return models.LabDetail{Lab: models.Lab{ID: labID}, Stats: models.LabStats{Working: calls}}, nil
	}), nil)

	first := n.Navigate(context.Background(), "lab-a", inventory.BucketWorking)
	second := n.Refresh(context.Background())

	assert.Equal(t, first.Epoch, second.Epoch)
	require.NotNil(t, second.Detail)
	assert.Equal(t, 2, second.Detail.Stats.Working)
}

func TestNavigator_RefreshBeforeNavigateIsNoop(t *testing.T) {
	n := NewNavigator(loaderFunc(func(context.Context, string, inventory.Bucket) (models.LabDetail, error) {
		t.Fatal("loader must not be called")
		return models.LabDetail{}, nil
	}), nil)

	s := n.Refresh(context.Background())
	assert.Equal(t, uint64(0), s.Epoch)
}
