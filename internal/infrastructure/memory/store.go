// Package memory implementa los puertos de persistencia en memoria, para desarrollo local
// (STORAGE_DRIVER=memory) y tests. Replica las garantías que el código espera de PostgreSQL:
// IDs autoincrementales, nombre de item único, timestamps al escribir y transacciones
// todo-o-nada.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/buyitem-api/internal/application/ports"
	"github.com/jhoicas/buyitem-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	items        map[int64]entity.Item
	users        map[int64]entity.User
	reservations []entity.Reservation
	nextItemID   int64
	nextUserID   int64
}

func newState() *state {
	return &state{
		items: make(map[int64]entity.Item),
		users: make(map[int64]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:        make(map[int64]entity.Item, len(s.items)),
		users:        make(map[int64]entity.User, len(s.users)),
		reservations: make([]entity.Reservation, len(s.reservations)),
		nextItemID:   s.nextItemID,
		nextUserID:   s.nextUserID,
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	copy(c.reservations, s.reservations)
	return c
}

// Store contiene el estado compartido por todos los repositorios en memoria.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Items devuelve el repositorio de items fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{store: s} }

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Reservations devuelve el repositorio de reservas fuera de transacción.
func (s *Store) Reservations() *ReservationRepo { return &ReservationRepo{store: s} }

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(_ context.Context) error { return nil }

// Run ejecuta fn con el almacén bloqueado sobre una copia del estado.
// La copia solo reemplaza al estado real si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	repos := ports.Repos{
		Items:        &ItemRepo{store: s, tx: tx},
		Users:        &UserRepo{store: s, tx: tx},
		Reservations: &ReservationRepo{store: s, tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// view ejecuta fn sobre el estado de la transacción (el lock ya lo tiene Run)
// o, fuera de transacción, sobre el estado real bajo lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}
