package clinic

import (
	"context"
	"sort"
	"sync"
)

// memStore is an in-memory Store used by the service tests. WithTx snapshots
// all tables and restores them when the closure fails, mirroring the
// commit-or-rollback behavior of the Postgres store.
type memStore struct {
	mu             sync.Mutex
	physicians     map[int64]Physician
	patients       map[int64]Patient
	availabilities map[int64]Availability
	appointments   map[int64]Appointment
	payments       map[int64]Payment
	nextID         int64

	// error injected into availability updates, to exercise rollback
	failAvailabilityUpdate error
}

func newMemStore() *memStore {
	return &memStore{
		physicians:     make(map[int64]Physician),
		patients:       make(map[int64]Patient),
		availabilities: make(map[int64]Availability),
		appointments:   make(map[int64]Appointment),
		payments:       make(map[int64]Payment),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Physicians() PhysicianRepo { return &memPhysicians{s} }

func (s *memStore) Patients() PatientRepo { return &memPatients{s} }

func (s *memStore) Availabilities() AvailabilityRepo { return &memAvailabilities{s} }

func (s *memStore) Appointments() AppointmentRepo { return &memAppointments{s} }

func (s *memStore) Payments() PaymentRepo { return &memPayments{s} }

func (s *memStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	snapPhysicians := cloneMap(s.physicians)
	snapPatients := cloneMap(s.patients)
	snapAvailabilities := cloneMap(s.availabilities)
	snapAppointments := cloneMap(s.appointments)
	snapPayments := cloneMap(s.payments)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.physicians = snapPhysicians
		s.patients = snapPatients
		s.availabilities = snapAvailabilities
		s.appointments = snapAppointments
		s.payments = snapPayments
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[V any](m map[int64]V, idOf func(V) int64) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return idOf(out[i]) < idOf(out[j]) })
	return out
}

type memPhysicians struct{ s *memStore }

func (r *memPhysicians) GetAll(ctx context.Context) ([]Physician, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.physicians, func(p Physician) int64 { return p.ID }), nil
}

func (r *memPhysicians) GetByID(ctx context.Context, id int64) (*Physician, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.physicians[id]
	if !ok {
		return nil, ErrPhysicianNotFound
	}
	return &p, nil
}

func (r *memPhysicians) Add(ctx context.Context, p *Physician) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.physicians[p.ID] = *p
	return nil
}

func (r *memPhysicians) Update(ctx context.Context, p *Physician) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.physicians[p.ID] = *p
	return nil
}

func (r *memPhysicians) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.physicians, id)
	return nil
}

type memPatients struct{ s *memStore }

func (r *memPatients) GetAll(ctx context.Context) ([]Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.patients, func(p Patient) int64 { return p.ID }), nil
}

func (r *memPatients) GetByID(ctx context.Context, id int64) (*Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (r *memPatients) Add(ctx context.Context, p *Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.patients[p.ID] = *p
	return nil
}

func (r *memPatients) Update(ctx context.Context, p *Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.patients[p.ID] = *p
	return nil
}

func (r *memPatients) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.patients, id)
	return nil
}

type memAvailabilities struct{ s *memStore }

func (r *memAvailabilities) GetAll(ctx context.Context) ([]Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.availabilities, func(a Availability) int64 { return a.ID }), nil
}

func (r *memAvailabilities) GetByID(ctx context.Context, id int64) (*Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.availabilities[id]
	if !ok {
		return nil, ErrAvailabilityNotFound
	}
	return &a, nil
}

func (r *memAvailabilities) Add(ctx context.Context, a *Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	r.s.availabilities[a.ID] = *a
	return nil
}

func (r *memAvailabilities) Update(ctx context.Context, a *Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failAvailabilityUpdate; err != nil {
		return err
	}
	r.s.availabilities[a.ID] = *a
	return nil
}

func (r *memAvailabilities) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.availabilities, id)
	return nil
}

type memAppointments struct{ s *memStore }

func (r *memAppointments) GetAll(ctx context.Context) ([]Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.appointments, func(a Appointment) int64 { return a.ID }), nil
}

func (r *memAppointments) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *memAppointments) Add(ctx context.Context, a *Appointment) error {
	r.s.mu.Lock()
	a.ID = r.s.id()
	stored := *a
	stored.Payment = nil
	r.s.appointments[a.ID] = stored
	r.s.mu.Unlock()

	if a.Payment != nil {
		a.Payment.AppointmentID = a.ID
		return (&memPayments{r.s}).Add(ctx, a.Payment)
	}
	return nil
}

func (r *memAppointments) Update(ctx context.Context, a *Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *a
	stored.Payment = nil
	r.s.appointments[a.ID] = stored
	return nil
}

func (r *memAppointments) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.appointments, id)
	return nil
}

func (r *memAppointments) CountByPhysician(ctx context.Context) ([]PhysicianAppointmentCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[int64]int)
	for _, a := range r.s.appointments {
		counts[a.PhysicianID]++
	}

	var result []PhysicianAppointmentCount
	for _, p := range sortedValues(r.s.physicians, func(p Physician) int64 { return p.ID }) {
		result = append(result, PhysicianAppointmentCount{
			PhysicianID: p.ID,
			Name:        p.Name,
			Specialty:   p.Specialty,
			Count:       counts[p.ID],
		})
	}
	return result, nil
}

type memPayments struct{ s *memStore }

func (r *memPayments) GetAll(ctx context.Context) ([]Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.payments, func(p Payment) int64 { return p.ID }), nil
}

func (r *memPayments) GetByID(ctx context.Context, id int64) (*Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return &p, nil
}

func (r *memPayments) Add(ctx context.Context, p *Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.payments[p.ID] = *p
	return nil
}

func (r *memPayments) Update(ctx context.Context, p *Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[p.ID] = *p
	return nil
}

func (r *memPayments) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payments, id)
	return nil
}

// nopLocker runs the critical section without any locking.
type nopLocker struct{}

func (nopLocker) WithSlotLock(ctx context.Context, slotID int64, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
