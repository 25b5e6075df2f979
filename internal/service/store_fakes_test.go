package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gomodule/redigo/redis"

	"shrinklink/internal/model"
	"shrinklink/internal/ratelimit"
	"shrinklink/internal/reachability"
)

// memLinkStore is an in-memory LinkStore for service tests.
type memLinkStore struct {
	mu     sync.Mutex
	nextID uint
	links  map[uint]*model.Link

	failDelete map[uint]bool
	failCreate bool
}

func newMemLinkStore() *memLinkStore {
	return &memLinkStore{
		links:      make(map[uint]*model.Link),
		failDelete: make(map[uint]bool),
	}
}

func (m *memLinkStore) Create(_ context.Context, link *model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return errors.New("store down")
	}
	for _, existing := range m.links {
		if existing.ShortCode == link.ShortCode {
			return errors.New("duplicate short code")
		}
	}
	m.nextID++
	link.ID = m.nextID
	clone := *link
	m.links[link.ID] = &clone
	return nil
}

func (m *memLinkStore) GetByID(_ context.Context, id uint) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[id]
	if !ok {
		return nil, nil
	}
	clone := *link
	return &clone, nil
}

func (m *memLinkStore) GetByShortCode(_ context.Context, shortCode string) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, link := range m.links {
		if link.ShortCode == shortCode {
			clone := *link
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memLinkStore) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	link, err := m.GetByShortCode(ctx, shortCode)
	return link != nil, err
}

func (m *memLinkStore) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[id]
	if !ok {
		return errors.New("not found")
	}
	for field, value := range fields {
		switch field {
		case "original_url":
			link.OriginalURL = value.(string)
		case "description":
			link.Description = value.(string)
		case "group_id":
			gid := value.(uint)
			link.GroupID = &gid
		}
	}
	return nil
}

func (m *memLinkStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete[id] {
		return errors.New("delete failed")
	}
	delete(m.links, id)
	return nil
}

func (m *memLinkStore) AddClicks(_ context.Context, id uint, n int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[id]
	if !ok {
		return errors.New("not found")
	}
	link.Clicks += n
	return nil
}

func (m *memLinkStore) ListByOwner(_ context.Context, ownerID string, page, size int, groupID *uint, q string) ([]model.Link, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Link
	for _, link := range m.links {
		if link.OwnerID != ownerID {
			continue
		}
		if groupID != nil && (link.GroupID == nil || *link.GroupID != *groupID) {
			continue
		}
		if q != "" && !strings.Contains(link.ShortCode, q) {
			continue
		}
		matched = append(matched, *link)
	}
	total := int64(len(matched))
	start := (page - 1) * size
	if start >= len(matched) {
		return []model.Link{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *memLinkStore) ListByGroup(_ context.Context, groupID uint) ([]model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Link
	for _, link := range m.links {
		if link.GroupID != nil && *link.GroupID == groupID {
			matched = append(matched, *link)
		}
	}
	return matched, nil
}

func (m *memLinkStore) ListAll(_ context.Context) ([]model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Link
	for _, link := range m.links {
		all = append(all, *link)
	}
	return all, nil
}

func (m *memLinkStore) clicks(id uint) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if link, ok := m.links[id]; ok {
		return link.Clicks
	}
	return -1
}

func (m *memLinkStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

// memGroupStore is an in-memory GroupStore for service tests.
type memGroupStore struct {
	mu     sync.Mutex
	nextID uint
	groups map[uint]*model.Group
}

func newMemGroupStore() *memGroupStore {
	return &memGroupStore{groups: make(map[uint]*model.Group)}
}

func (m *memGroupStore) Create(_ context.Context, group *model.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	group.ID = m.nextID
	clone := *group
	m.groups[group.ID] = &clone
	return nil
}

func (m *memGroupStore) GetByID(_ context.Context, id uint) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	group, ok := m.groups[id]
	if !ok {
		return nil, nil
	}
	clone := *group
	return &clone, nil
}

func (m *memGroupStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.groups, id)
	return nil
}

func (m *memGroupStore) ListByOwner(_ context.Context, ownerID string, page, size int) ([]model.Group, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Group
	for _, group := range m.groups {
		if group.OwnerID == ownerID {
			matched = append(matched, *group)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *memGroupStore) has(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.groups[id]
	return ok
}

// stubChecker lets tests control the reachability verdict.
type stubChecker struct {
	ok     bool
	reason string
}

func (s stubChecker) Validate(context.Context, string) reachability.Result {
	return reachability.Result{OK: s.ok, Reason: s.reason}
}

// allowAll is a limiter that never throttles.
type allowAll struct{}

func (allowAll) Check(string) ratelimit.Result {
	return ratelimit.Result{Allowed: true, Remaining: 1}
}

// fakeConn records redis commands as "CMD firstArg" strings so tests can
// assert on key-level side effects without a server.
type fakeConn struct {
	mu   sync.Mutex
	cmds []string
}

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := cmd
	if len(args) > 0 {
		rec += " " + fmt.Sprint(args[0])
	}
	c.cmds = append(c.cmds, rec)
	return int64(1), nil
}

func (c *fakeConn) Send(string, ...interface{}) error { return nil }
func (c *fakeConn) Flush() error                      { return nil }
func (c *fakeConn) Receive() (interface{}, error)     { return nil, nil }

func (c *fakeConn) saw(rec string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, got := range c.cmds {
		if got == rec {
			return true
		}
	}
	return false
}

func newFakePool(fc *fakeConn) *redis.Pool {
	return &redis.Pool{
		Dial: func() (redis.Conn, error) { return fc, nil },
	}
}
