package service

import (
	"context"
	"sync"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/stretchr/testify/mock"
)

// MockDeliveryStore is a mock implementation of DeliveryStore.
type MockDeliveryStore struct {
	mock.Mock
}

func (m *MockDeliveryStore) List(ctx context.Context) ([]domain.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockDeliveryStore) Insert(ctx context.Context, draft domain.DeliveryDraft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *MockDeliveryStore) Update(ctx context.Context, edit domain.DeliveryEdit) error {
	return m.Called(ctx, edit).Error(0)
}

func (m *MockDeliveryStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeliveryStore) Dispatch(ctx context.Context, deliveryID, courierID int64, onlyPending bool) error {
	return m.Called(ctx, deliveryID, courierID, onlyPending).Error(0)
}

// MockCourierStore is a mock implementation of CourierStore.
type MockCourierStore struct {
	mock.Mock
}

func (m *MockCourierStore) ListCouriers(ctx context.Context) ([]domain.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Courier), args.Error(1)
}

func (m *MockCourierStore) SetCourierActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

// MockPersonStore is a mock implementation of PersonStore.
type MockPersonStore struct {
	mock.Mock
}

func (m *MockPersonStore) SearchPeople(ctx context.Context, term string) ([]domain.Person, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Person), args.Error(1)
}

func (m *MockPersonStore) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonStore) CreatePerson(ctx context.Context, draft domain.PersonDraft) (*domain.Person, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonStore) SetPersonActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

// gatedResponse is one List answer, held back until release is closed.
type gatedResponse struct {
	list    []domain.Delivery
	err     error
	release chan struct{}
}

// gatedStore answers List calls in issue order, each when its gate opens.
// Writes are accepted and ignored.
type gatedStore struct {
	mu        sync.Mutex
	responses []gatedResponse
	calls     int
	started   chan int
}

func newGatedStore(responses ...gatedResponse) *gatedStore {
	return &gatedStore{responses: responses, started: make(chan int, 16)}
}

func (s *gatedStore) List(ctx context.Context) ([]domain.Delivery, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	var r gatedResponse
	if i < len(s.responses) {
		r = s.responses[i]
	} else if len(s.responses) > 0 {
		r = s.responses[len(s.responses)-1]
		r.release = nil
	}
	s.mu.Unlock()

	select {
	case s.started <- i:
	default:
	}
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.list, r.err
}

func (s *gatedStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *gatedStore) Insert(context.Context, domain.DeliveryDraft) error { return nil }
func (s *gatedStore) Update(context.Context, domain.DeliveryEdit) error { return nil }
func (s *gatedStore) Delete(context.Context, int64) error { return nil }
func (s *gatedStore) Dispatch(context.Context, int64, int64, bool) error { return nil }

func deliveries(names ...string) []domain.Delivery {
	out := make([]domain.Delivery, len(names))
	for i, n := range names {
		out[i] = domain.Delivery{ID: int64(i + 1), CustomerName: n, Status: domain.StatusPending}
	}
	return out
}
