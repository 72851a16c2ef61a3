package adapter

import (
	"context"
	"fmt"
	"strings"

	"dispatch-console/internal/core/gateway"
	"dispatch-console/internal/features/dispatch/domain"
)

const (
	deliveriesTable = "entregas"
	couriersTable   = "motoboys"
	peopleTable     = "pessoa"

	// listProcedure returns deliveries joined with the customer's display name.
	listProcedure = "fetch_entregas_com_nome_cliente"
)

// GatewayStore implements the delivery, courier and person stores on the remote gateway.
type GatewayStore struct {
	gw gateway.Gateway
}

// NewGatewayStore creates a new GatewayStore.
func NewGatewayStore(gw gateway.Gateway) *GatewayStore {
	return &GatewayStore{gw: gw}
}

// List implements DeliveryStore.
func (s *GatewayStore) List(ctx context.Context) ([]domain.Delivery, error) {
	raw, err := s.gw.Call(ctx, listProcedure, nil)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	var deliveries []domain.Delivery
	if err := gateway.Decode(raw, &deliveries); err != nil {
		return nil, fmt.Errorf("decode deliveries: %w", err)
	}
	if deliveries == nil {
		deliveries = []domain.Delivery{}
	}
	return deliveries, nil
}

// Insert implements DeliveryStore.
func (s *GatewayStore) Insert(ctx context.Context, draft domain.DeliveryDraft) error {
	if _, err := s.gw.Insert(ctx, deliveriesTable, draft); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Update implements DeliveryStore.
func (s *GatewayStore) Update(ctx context.Context, edit domain.DeliveryEdit) error {
	raw, err := s.gw.Update(ctx, deliveriesTable, edit, gateway.Eq("id", edit.ID))
	if err != nil {
		return fmt.Errorf("update delivery %d: %w", edit.ID, err)
	}
	n, err := countRows(raw)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update delivery %d: %w", edit.ID, domain.ErrDeliveryNotFound)
	}
	return nil
}

// Delete implements DeliveryStore.
func (s *GatewayStore) Delete(ctx context.Context, id int64) error {
	if err := s.gw.Delete(ctx, deliveriesTable, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete delivery %d: %w", id, err)
	}
	return nil
}

// Dispatch implements DeliveryStore.
func (s *GatewayStore) Dispatch(ctx context.Context, deliveryID, courierID int64, onlyPending bool) error {
	patch := map[string]any{
		"status":        domain.StatusInProgress,
		"id_motoqueiro": courierID,
	}
	filters := []gateway.Filter{gateway.Eq("id", deliveryID)}
	if onlyPending {
		filters = append(filters, gateway.Eq("status", domain.StatusPending))
	}

	raw, err := s.gw.Update(ctx, deliveriesTable, patch, filters...)
	if err != nil {
		return fmt.Errorf("dispatch delivery %d: %w", deliveryID, err)
	}
	n, err := countRows(raw)
	if err != nil {
		return err
	}
	if n == 0 {
		if onlyPending {
			return fmt.Errorf("dispatch delivery %d: %w", deliveryID, domain.ErrAlreadyDispatched)
		}
		return fmt.Errorf("dispatch delivery %d: %w", deliveryID, domain.ErrDeliveryNotFound)
	}
	return nil
}

// ListCouriers implements CourierStore.
func (s *GatewayStore) ListCouriers(ctx context.Context) ([]domain.Courier, error) {
	raw, err := s.gw.Select(ctx, couriersTable, gateway.Query{
		Columns: domain.CourierColumns,
		Order:   []gateway.Order{{Column: "nome"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	var couriers []domain.Courier
	if err := gateway.Decode(raw, &couriers); err != nil {
		return nil, fmt.Errorf("decode couriers: %w", err)
	}
	return couriers, nil
}

// SetCourierActive implements CourierStore.
func (s *GatewayStore) SetCourierActive(ctx context.Context, id int64, active bool) error {
	raw, err := s.gw.Update(ctx, couriersTable, map[string]any{"ativo": active}, gateway.Eq("id", id))
	if err != nil {
		return fmt.Errorf("update courier %d: %w", id, err)
	}
	n, err := countRows(raw)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update courier %d: %w", id, domain.ErrCourierNotFound)
	}
	return nil
}

// SearchPeople implements PersonStore. A blank term matches nobody.
func (s *GatewayStore) SearchPeople(ctx context.Context, term string) ([]domain.Person, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Person{}, nil
	}
	raw, err := s.gw.Select(ctx, peopleTable, gateway.Query{
		AnyOf: []gateway.Filter{gateway.ILike("nome", term), gateway.ILike("celular", term)},
		Order: []gateway.Order{{Column: "nome"}},
	})
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	var people []domain.Person
	if err := gateway.Decode(raw, &people); err != nil {
		return nil, fmt.Errorf("decode people: %w", err)
	}
	if people == nil {
		people = []domain.Person{}
	}
	return people, nil
}

// GetPerson implements PersonStore.
func (s *GatewayStore) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	raw, err := s.gw.Select(ctx, peopleTable, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("idpessoa", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return firstPerson(raw, id)
}

// CreatePerson implements PersonStore.
func (s *GatewayStore) CreatePerson(ctx context.Context, draft domain.PersonDraft) (*domain.Person, error) {
	raw, err := s.gw.Insert(ctx, peopleTable, draft)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	p, err := firstPerson(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return p, nil
}

// SetPersonActive implements PersonStore.
func (s *GatewayStore) SetPersonActive(ctx context.Context, id int64, active bool) error {
	raw, err := s.gw.Update(ctx, peopleTable, map[string]any{"ativo": active}, gateway.Eq("idpessoa", id))
	if err != nil {
		return fmt.Errorf("update person %d: %w", id, err)
	}
	n, err := countRows(raw)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update person %d: %w", id, domain.ErrPersonNotFound)
	}
	return nil
}

func firstPerson(raw []byte, id int64) (*domain.Person, error) {
	var people []domain.Person
	if err := gateway.Decode(raw, &people); err != nil {
		return nil, fmt.Errorf("decode people: %w", err)
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("person %d: %w", id, domain.ErrPersonNotFound)
	}
	return &people[0], nil
}

func countRows(raw []byte) (int, error) {
	var rows []map[string]any
	if err := gateway.Decode(raw, &rows); err != nil {
		return 0, fmt.Errorf("decode rows: %w", err)
	}
	return len(rows), nil
}
