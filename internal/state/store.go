// Package state holds the transient per-user shopping session: the current
// list and the purchase history the recommendation engine feeds on. State
// lives in an expiring in-memory cache and is not persisted across restarts.
package state

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/foxxcyber/voicecart/internal/models"
)

var ErrItemNotFound = errors.New("shopping item not found")

// UserState is one user's session view: current items plus history
type UserState struct {
	Items   []models.ShoppingItem
	History []models.ItemRef
}

// Store keeps per-user session state behind a per-user lock so concurrent
// commands for the same user are serialized. Different users never contend.
type Store struct {
	sessions *cache.Cache

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewStore creates a session store whose entries expire after ttl of
// inactivity. Expired sessions are purged every 10 minutes.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: cache.New(ttl, 10*time.Minute),
		locks:    make(map[int]*sync.Mutex),
	}
}

func (s *Store) userLock(userID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[userID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[userID] = l
	return l
}

// get loads the user's state, creating an empty one if needed.
// Callers must hold the user lock.
func (s *Store) get(userID int) *UserState {
	key := strconv.Itoa(userID)
	if x, found := s.sessions.Get(key); found {
		return x.(*UserState)
	}
	st := &UserState{}
	s.sessions.Set(key, st, cache.DefaultExpiration)
	return st
}

// save refreshes the entry's TTL. Callers must hold the user lock.
func (s *Store) save(userID int, st *UserState) {
	s.sessions.Set(strconv.Itoa(userID), st, cache.DefaultExpiration)
}

// Items returns a copy of the user's current list
func (s *Store) Items(userID int) []models.ShoppingItem {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	out := make([]models.ShoppingItem, len(st.Items))
	copy(out, st.Items)
	return out
}

// Context returns the current list and history as item refs for the
// suggestion engine.
func (s *Store) Context(userID int) (current, history []models.ItemRef) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	current = make([]models.ItemRef, len(st.Items))
	for i, item := range st.Items {
		current[i] = models.ItemRef{Name: item.Name, Category: item.Category}
	}
	history = make([]models.ItemRef, len(st.History))
	copy(history, st.History)
	return current, history
}

// Apply translates a parsed voice command into list mutations. Commands
// without an item (except clear) and unknown/search commands change
// nothing, honoring the interpreter's no-op contract. The returned item is
// the one added or touched, if any.
func (s *Store) Apply(userID int, cmd models.VoiceCommand) (bool, *models.ShoppingItem) {
	if cmd.Intent == models.IntentUnknown || cmd.Action == models.ActionSearch {
		return false, nil
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)

	switch cmd.Action {
	case models.ActionAdd:
		if cmd.Item == "" {
			return false, nil
		}
		item := s.addItem(st, cmd.Item, cmd.Quantity, cmd.Category)
		s.save(userID, st)
		return true, item

	case models.ActionRemove:
		if cmd.Item == "" {
			return false, nil
		}
		idx := findByName(st.Items, cmd.Item)
		if idx < 0 {
			return false, nil
		}
		st.Items = append(st.Items[:idx], st.Items[idx+1:]...)
		s.save(userID, st)
		return true, nil

	case models.ActionComplete:
		if cmd.Item == "" {
			return false, nil
		}
		idx := findByName(st.Items, cmd.Item)
		if idx < 0 {
			return false, nil
		}
		st.Items[idx].Completed = true
		s.save(userID, st)
		return true, &st.Items[idx]

	case models.ActionClear:
		if len(st.Items) == 0 {
			return false, nil
		}
		st.Items = nil
		s.save(userID, st)
		return true, nil
	}

	return false, nil
}

// AddItem adds an item directly, e.g. when a suggestion is accepted
func (s *Store) AddItem(userID int, name string, quantity int, category string) models.ShoppingItem {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	item := s.addItem(st, name, quantity, category)
	s.save(userID, st)
	return *item
}

// addItem creates or bumps an item and records it in history.
// Callers must hold the user lock.
func (s *Store) addItem(st *UserState, name string, quantity int, category string) *models.ShoppingItem {
	if quantity < 1 {
		quantity = 1
	}

	st.History = append(st.History, models.ItemRef{Name: name, Category: category})

	if idx := findByName(st.Items, name); idx >= 0 {
		st.Items[idx].Quantity += quantity
		return &st.Items[idx]
	}

	st.Items = append(st.Items, models.ShoppingItem{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
		Category: category,
		AddedAt:  time.Now(),
		Priority: models.PriorityMedium,
	})
	return &st.Items[len(st.Items)-1]
}

// UpdateItem changes quantity and/or completion of an item by id.
// Quantities below 1 are rejected by clamping to 1.
func (s *Store) UpdateItem(userID int, itemID string, req models.UpdateItemRequest) (*models.ShoppingItem, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	idx := findByID(st.Items, itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if req.Quantity != nil {
		q := *req.Quantity
		if q < 1 {
			q = 1
		}
		st.Items[idx].Quantity = q
	}
	if req.Completed != nil {
		st.Items[idx].Completed = *req.Completed
	}

	s.save(userID, st)
	updated := st.Items[idx]
	return &updated, nil
}

// RemoveItem deletes an item by id
func (s *Store) RemoveItem(userID int, itemID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	idx := findByID(st.Items, itemID)
	if idx < 0 {
		return ErrItemNotFound
	}

	st.Items = append(st.Items[:idx], st.Items[idx+1:]...)
	s.save(userID, st)
	return nil
}

// ClearCompleted removes all completed items and returns how many were cut
func (s *Store) ClearCompleted(userID int) int {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	st := s.get(userID)
	kept := st.Items[:0]
	removed := 0
	for _, item := range st.Items {
		if item.Completed {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	st.Items = kept
	s.save(userID, st)
	return removed
}

func findByName(items []models.ShoppingItem, name string) int {
	for i, item := range items {
		if strings.EqualFold(item.Name, name) {
			return i
		}
	}
	return -1
}

func findByID(items []models.ShoppingItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
