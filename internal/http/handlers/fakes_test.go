package handlers

import (
	"context"
	"sync"

	"github.com/diagnosis/car-rental/internal/domain"
)

type memCars struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]domain.Car
	err       error
	createNil bool
	// deleteMisses makes Delete report no row even when one exists.
	deleteMisses bool
}

func newMemCars() *memCars { return &memCars{rows: map[int64]domain.Car{}} }

func (m *memCars) List(context.Context) ([]domain.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Car, 0, len(m.rows))
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCars) Get(_ context.Context, id int64) (*domain.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memCars) Create(_ context.Context, in *domain.CreateCarReq) (*domain.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.createNil {
		return nil, nil
	}
	m.nextID++
	c := domain.Car{
		ID:           m.nextID,
		CarModel:     in.CarModel,
		Year:         in.Year,
		Color:        in.Color,
		RentalRate:   in.RentalRate,
		Availability: in.Availability == nil || *in.Availability,
		LocationID:   in.LocationID,
	}
	m.rows[c.ID] = c
	return &c, nil
}

func (m *memCars) Update(_ context.Context, id int64, in *domain.UpdateCarReq) (*domain.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	if in.CarModel != nil {
		c.CarModel = *in.CarModel
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.RentalRate != nil {
		c.RentalRate = *in.RentalRate
	}
	if in.Availability != nil {
		c.Availability = *in.Availability
	}
	m.rows[id] = c
	return &c, nil
}

func (m *memCars) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok || m.deleteMisses {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memLocations struct {
	rows []domain.Location
}

func (m *memLocations) List(context.Context) ([]domain.Location, error) { return m.rows, nil }
func (m *memLocations) Get(_ context.Context, id int64) (*domain.Location, error) {
	for _, l := range m.rows {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}
func (m *memLocations) Update(context.Context, int64, *domain.UpdateLocationReq) (*domain.Location, error) {
	return nil, nil
}
func (m *memLocations) Delete(context.Context, int64) (bool, error) { return false, nil }
