package lists

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tote/internal/listapi"
	"github.com/five82/tote/internal/metrics"
	"github.com/five82/tote/internal/shopping"
	"github.com/five82/tote/internal/state"
)

// Options configures a Manager. Store and API are required.
type Options struct {
	Store   *state.Store
	API     listapi.Service
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	Clock   func() time.Time
}

// Manager runs every user-initiated list and item operation against the
// store and the remote service.
type Manager struct {
	store   *state.Store
	api     listapi.Service
	log     *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	locks entityLocks

	loadMu   sync.Mutex
	fetches  int
	fetchErr string

	// applyMu orders refresh results against mutations. mutations counts
	// every begin and end so a refresh can tell whether one overlapped it.
	applyMu   sync.Mutex
	inFlight  atomic.Int64
	mutations atomic.Uint64
}

// New creates a Manager.
func New(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:   opts.Store,
		api:     opts.API,
		log:     log.Named("lists"),
		metrics: opts.Metrics,
		now:     now,
	}
}

// Store returns the store the manager dispatches to.
func (m *Manager) Store() *state.Store {
	return m.store
}

// InFlight returns the number of mutations waiting on the remote service.
func (m *Manager) InFlight() int64 {
	return m.inFlight.Load()
}

// ClearError dismisses the current error message.
func (m *Manager) ClearError() {
	m.store.Dispatch(state.SetError{})
}

// RefreshLists reloads every list from the service. Items and shares already
// loaded for a list are kept, and records still awaiting confirmation stay in
// place. A result that overlapped a mutation is dropped; the next refresh
// picks the change up.
func (m *Manager) RefreshLists(ctx context.Context) error {
	stop := m.startFetch()
	defer stop()

	since, quiet := m.mark()
	done := m.metrics.Begin(OpRefreshLists)
	fetched, err := m.api.FetchLists(ctx)
	done()
	if err != nil {
		return m.fetchFailed(OpRefreshLists, err)
	}

	var merged []shopping.List
	applied := m.applyIfSettled(since, quiet, func() {
		merged = mergeRefresh(fetched, m.store.State())
		m.store.Dispatch(state.SetAllLists{Lists: merged})
	})
	if !applied {
		m.superseded(OpRefreshLists)
		return nil
	}
	m.fetchSucceeded(OpRefreshLists, zap.Int("lists", len(merged)))
	return nil
}

// FetchList loads one list and upserts it.
func (m *Manager) FetchList(ctx context.Context, id shopping.ID) error {
	if id.Pending() {
		return shopping.ErrPending
	}
	stop := m.startFetch()
	defer stop()

	since, quiet := m.mark()
	done := m.metrics.Begin(OpFetchList)
	l, err := m.api.FetchList(ctx, id)
	done()
	if err != nil {
		return m.fetchFailed(OpFetchList, err)
	}
	if !m.applyIfSettled(since, quiet, func() {
		m.store.Dispatch(state.ReplaceList{ID: id, List: l})
	}) {
		m.superseded(OpFetchList)
		return nil
	}
	m.fetchSucceeded(OpFetchList, zap.Int64("list_id", int64(id)))
	return nil
}

// FetchListItems loads the items of a list. Items still awaiting
// confirmation are kept after the fetched ones.
func (m *Manager) FetchListItems(ctx context.Context, listID shopping.ID) error {
	if listID.Pending() {
		return shopping.ErrPending
	}
	if _, _, ok := m.store.State().Find(listID); !ok {
		m.skip(OpFetchItems, listID)
		return nil
	}
	stop := m.startFetch()
	defer stop()

	done := m.metrics.Begin(OpFetchItems)
	items, err := m.api.FetchItems(ctx, listID)
	done()
	if err != nil {
		return m.fetchFailed(OpFetchItems, err)
	}

	if cur, _, ok := m.store.State().Find(listID); ok {
		for _, item := range cur.Items {
			if item.ID.Pending() {
				items = append(items, item)
			}
		}
	}
	m.store.Dispatch(state.SetListItems{ListID: listID, Items: items})
	m.fetchSucceeded(OpFetchItems, zap.Int64("list_id", int64(listID)), zap.Int("items", len(items)))
	return nil
}

// FetchShares loads the share grants of a list.
func (m *Manager) FetchShares(ctx context.Context, listID shopping.ID) ([]shopping.Share, error) {
	if listID.Pending() {
		return nil, shopping.ErrPending
	}
	if _, _, ok := m.store.State().Find(listID); !ok {
		m.skip(OpFetchShares, listID)
		return nil, nil
	}

	done := m.metrics.Begin(OpFetchShares)
	shares, err := m.api.FetchShares(ctx, listID)
	done()
	if err != nil {
		return nil, m.fetchFailed(OpFetchShares, err)
	}
	m.store.Dispatch(state.SetListShares{ListID: listID, Shares: shares})
	m.fetchSucceeded(OpFetchShares, zap.Int64("list_id", int64(listID)))
	return shares, nil
}

// CreateList adds a pending list immediately and swaps it for the server
// record once confirmed. On failure the pending list is removed.
func (m *Manager) CreateList(ctx context.Context, name string) (shopping.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.List{}, shopping.ErrEmptyName
	}
	end := m.begin(OpCreateList)
	defer end()

	now := m.now()
	pending := shopping.List{
		ID:          shopping.NextPendingID(),
		Name:        name,
		Items:       []shopping.Item{},
		ItemsLoaded: true,
		IsOwner:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.store.Dispatch(state.AddList{List: pending})

	created, err := m.api.CreateList(ctx, name)
	if err != nil {
		m.store.Dispatch(state.DeleteList{ID: pending.ID})
		return shopping.List{}, m.fail(OpCreateList, err)
	}
	m.store.Dispatch(state.ReplaceList{ID: pending.ID, List: created})
	m.commit(OpCreateList, zap.Int64("list_id", int64(created.ID)))
	return created, nil
}

// UpdateList applies patch locally, then remotely. Server-normalized values
// replace the optimistic ones.
func (m *Manager) UpdateList(ctx context.Context, id shopping.ID, patch shopping.ListPatch) error {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return shopping.ErrEmptyName
		}
		patch.Name = &trimmed
	}
	if patch.Empty() {
		return nil
	}

	keys := []string{listKey(id)}
	if patch.IsDefault != nil {
		keys = append(keys, defaultKey)
	}
	release, err := m.locks.acquire(ctx, keys...)
	if err != nil {
		return err
	}
	defer release()

	st := m.store.State()
	snap, _, ok := st.Find(id)
	if !ok {
		m.skip(OpUpdateList, id)
		return nil
	}
	if id.Pending() {
		return shopping.ErrPending
	}
	prevDefault := st.DefaultID()

	end := m.begin(OpUpdateList)
	defer end()

	m.store.Dispatch(state.UpdateList{ID: id, Patch: patch})
	updated, err := m.api.UpdateList(ctx, id, patch)
	if err != nil {
		m.store.Dispatch(state.UpdateList{ID: id, Patch: revertPatch(patch, snap), UpdatedAt: snap.UpdatedAt})
		if patch.IsDefault != nil {
			m.store.Dispatch(state.RestoreDefault{ID: prevDefault})
		}
		return m.fail(OpUpdateList, err)
	}
	if updated != nil {
		if fix := listCorrection(patch, *updated); !fix.Empty() {
			m.store.Dispatch(state.UpdateList{ID: id, Patch: fix})
		}
	}
	m.commit(OpUpdateList, zap.Int64("list_id", int64(id)))
	return nil
}

// DeleteList removes a list locally, then remotely. On failure the list is
// restored at its former position.
func (m *Manager) DeleteList(ctx context.Context, id shopping.ID) error {
	release, err := m.locks.acquire(ctx, listKey(id))
	if err != nil {
		return err
	}
	defer release()

	snap, idx, ok := m.store.State().Find(id)
	if !ok {
		m.skip(OpDeleteList, id)
		return nil
	}
	if id.Pending() {
		return shopping.ErrPending
	}

	end := m.begin(OpDeleteList)
	defer end()

	m.store.Dispatch(state.DeleteList{ID: id})
	if err := m.api.DeleteList(ctx, id); err != nil {
		m.store.Dispatch(state.RestoreList{List: snap, Index: idx})
		return m.fail(OpDeleteList, err)
	}
	m.commit(OpDeleteList, zap.Int64("list_id", int64(id)))
	return nil
}

// ToggleDefault flips the default flag of a list. At most one list is the
// default at any time.
func (m *Manager) ToggleDefault(ctx context.Context, id shopping.ID) error {
	release, err := m.locks.acquire(ctx, listKey(id), defaultKey)
	if err != nil {
		return err
	}
	defer release()

	st := m.store.State()
	snap, _, ok := st.Find(id)
	if !ok {
		m.skip(OpToggleDefault, id)
		return nil
	}
	if id.Pending() {
		return shopping.ErrPending
	}
	prevDefault := st.DefaultID()
	want := !snap.IsDefault

	end := m.begin(OpToggleDefault)
	defer end()

	m.store.Dispatch(state.ToggleDefault{ID: id})
	updated, err := m.api.ToggleDefault(ctx, id)
	if err != nil {
		m.store.Dispatch(state.RestoreDefault{ID: prevDefault})
		return m.fail(OpToggleDefault, err)
	}
	if updated != nil && updated.IsDefault != want {
		m.log.Info("server disagreed on default flag",
			zap.Int64("list_id", int64(id)),
			zap.Bool("is_default", updated.IsDefault))
		if updated.IsDefault {
			m.store.Dispatch(state.RestoreDefault{ID: id})
		} else {
			m.store.Dispatch(state.RestoreDefault{})
		}
	}
	m.commit(OpToggleDefault, zap.Int64("list_id", int64(id)), zap.Bool("is_default", want))
	return nil
}

// ShareList grants username access to a list. The share count goes up
// immediately and the share id is recorded once the server confirms.
func (m *Manager) ShareList(ctx context.Context, id shopping.ID, username string) (listapi.ShareResult, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return listapi.ShareResult{}, shopping.ErrEmptyUsername
	}

	release, err := m.locks.acquire(ctx, listKey(id))
	if err != nil {
		return listapi.ShareResult{}, err
	}
	defer release()

	snap, _, ok := m.store.State().Find(id)
	if !ok {
		m.skip(OpShareList, id)
		return listapi.ShareResult{}, nil
	}
	if id.Pending() {
		return listapi.ShareResult{}, shopping.ErrPending
	}

	end := m.begin(OpShareList)
	defer end()

	m.store.Dispatch(state.UpdateList{ID: id, Patch: shopping.ListPatch{SharedWith: shopping.Ptr(snap.SharedWith + 1)}})
	res, err := m.api.ShareList(ctx, id, username)
	if err != nil {
		m.store.Dispatch(state.UpdateList{
			ID:        id,
			Patch:     shopping.ListPatch{SharedWith: shopping.Ptr(snap.SharedWith)},
			UpdatedAt: snap.UpdatedAt,
		})
		return listapi.ShareResult{}, m.fail(OpShareList, err)
	}
	if res.ShareID != "" && res.ShareID != snap.ShareID {
		m.store.Dispatch(state.UpdateList{ID: id, Patch: shopping.ListPatch{ShareID: shopping.Ptr(res.ShareID)}})
	}
	m.commit(OpShareList, zap.Int64("list_id", int64(id)), zap.String("username", username))
	return res, nil
}

// RemoveShare revokes the access of one user.
func (m *Manager) RemoveShare(ctx context.Context, listID shopping.ID, userID int64) error {
	release, err := m.locks.acquire(ctx, listKey(listID))
	if err != nil {
		return err
	}
	defer release()

	snap, _, ok := m.store.State().Find(listID)
	if !ok {
		m.skip(OpRemoveShare, listID)
		return nil
	}
	if listID.Pending() {
		return shopping.ErrPending
	}

	end := m.begin(OpRemoveShare)
	defer end()

	kept := make([]shopping.Share, 0, len(snap.Shares))
	for _, s := range snap.Shares {
		if s.SharedWithUserID != userID {
			kept = append(kept, s)
		}
	}
	removed := len(kept) != len(snap.Shares)
	if removed {
		m.store.Dispatch(state.SetListShares{ListID: listID, Shares: kept})
	}

	if err := m.api.RemoveShare(ctx, listID, userID); err != nil {
		if removed {
			m.store.Dispatch(state.SetListShares{ListID: listID, Shares: snap.Shares})
		}
		return m.fail(OpRemoveShare, err)
	}
	m.commit(OpRemoveShare, zap.Int64("list_id", int64(listID)), zap.Int64("user_id", userID))
	return nil
}

// CreateItem appends a pending item and swaps it for the server record once
// confirmed. On failure the pending item is dropped.
func (m *Manager) CreateItem(ctx context.Context, listID shopping.ID, name string) (shopping.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.Item{}, shopping.ErrEmptyName
	}
	list, _, ok := m.store.State().Find(listID)
	if !ok {
		m.skip(OpCreateItem, listID)
		return shopping.Item{}, nil
	}
	if listID.Pending() {
		return shopping.Item{}, shopping.ErrPending
	}

	end := m.begin(OpCreateItem)
	defer end()

	pending := shopping.Item{ID: shopping.NextPendingID(), Name: name, CreatedAt: m.now()}
	m.store.Dispatch(state.AddItem{ListID: listID, Item: pending})

	created, err := m.api.CreateItem(ctx, listID, name)
	if err != nil {
		m.store.Dispatch(state.DiscardItem{ListID: listID, ItemID: pending.ID, ListUpdatedAt: list.UpdatedAt})
		return shopping.Item{}, m.fail(OpCreateItem, err)
	}
	m.store.Dispatch(state.ReplaceItem{ListID: listID, ItemID: pending.ID, Item: created})
	m.commit(OpCreateItem, zap.Int64("list_id", int64(listID)), zap.Int64("item_id", int64(created.ID)))
	return created, nil
}

// UpdateItem applies patch to one item locally, then remotely.
func (m *Manager) UpdateItem(ctx context.Context, listID, itemID shopping.ID, patch shopping.ItemPatch) error {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return shopping.ErrEmptyName
		}
		patch.Name = &trimmed
	}
	if patch.Empty() {
		return nil
	}

	release, err := m.locks.acquire(ctx, itemKey(listID, itemID))
	if err != nil {
		return err
	}
	defer release()

	snap, idx, list, ok := m.store.State().FindItem(listID, itemID)
	if !ok {
		m.skip(OpUpdateItem, itemID)
		return nil
	}
	if listID.Pending() || itemID.Pending() {
		return shopping.ErrPending
	}

	end := m.begin(OpUpdateItem)
	defer end()

	m.store.Dispatch(state.UpdateItem{ListID: listID, ItemID: itemID, Patch: patch})
	updated, err := m.api.UpdateItem(ctx, listID, itemID, patch)
	if err != nil {
		m.store.Dispatch(state.RestoreItem{ListID: listID, Item: snap, Index: idx, ListUpdatedAt: list.UpdatedAt})
		return m.fail(OpUpdateItem, err)
	}
	if updated != nil {
		if fix := itemCorrection(patch, *updated); !fix.Empty() {
			m.store.Dispatch(state.UpdateItem{ListID: listID, ItemID: itemID, Patch: fix})
		}
	}
	m.commit(OpUpdateItem, zap.Int64("list_id", int64(listID)), zap.Int64("item_id", int64(itemID)))
	return nil
}

// DeleteItem removes one item locally, then remotely.
func (m *Manager) DeleteItem(ctx context.Context, listID, itemID shopping.ID) error {
	release, err := m.locks.acquire(ctx, itemKey(listID, itemID))
	if err != nil {
		return err
	}
	defer release()

	snap, idx, list, ok := m.store.State().FindItem(listID, itemID)
	if !ok {
		m.skip(OpDeleteItem, itemID)
		return nil
	}
	if listID.Pending() || itemID.Pending() {
		return shopping.ErrPending
	}

	end := m.begin(OpDeleteItem)
	defer end()

	m.store.Dispatch(state.DeleteItem{ListID: listID, ItemID: itemID})
	if err := m.api.DeleteItem(ctx, listID, itemID); err != nil {
		m.store.Dispatch(state.RestoreItem{ListID: listID, Item: snap, Index: idx, ListUpdatedAt: list.UpdatedAt})
		return m.fail(OpDeleteItem, err)
	}
	m.commit(OpDeleteItem, zap.Int64("list_id", int64(listID)), zap.Int64("item_id", int64(itemID)))
	return nil
}

// ToggleItem flips the completion flag of one item.
func (m *Manager) ToggleItem(ctx context.Context, listID, itemID shopping.ID) error {
	release, err := m.locks.acquire(ctx, itemKey(listID, itemID))
	if err != nil {
		return err
	}
	defer release()

	snap, idx, list, ok := m.store.State().FindItem(listID, itemID)
	if !ok {
		m.skip(OpToggleItem, itemID)
		return nil
	}
	if listID.Pending() || itemID.Pending() {
		return shopping.ErrPending
	}
	want := !snap.Completed

	end := m.begin(OpToggleItem)
	defer end()

	m.store.Dispatch(state.UpdateItem{ListID: listID, ItemID: itemID, Patch: shopping.ItemPatch{Completed: &want}})
	updated, err := m.api.ToggleItem(ctx, listID, itemID)
	if err != nil {
		m.store.Dispatch(state.RestoreItem{ListID: listID, Item: snap, Index: idx, ListUpdatedAt: list.UpdatedAt})
		return m.fail(OpToggleItem, err)
	}
	if updated != nil && updated.Completed != want {
		m.store.Dispatch(state.UpdateItem{ListID: listID, ItemID: itemID, Patch: shopping.ItemPatch{Completed: shopping.Ptr(updated.Completed)}})
	}
	m.commit(OpToggleItem, zap.Int64("list_id", int64(listID)), zap.Int64("item_id", int64(itemID)), zap.Bool("completed", want))
	return nil
}

// begin marks a mutation as in flight.
func (m *Manager) begin(op string) func() {
	m.applyMu.Lock()
	m.inFlight.Add(1)
	m.mutations.Add(1)
	m.applyMu.Unlock()

	m.log.Debug("optimistic apply", zap.String("operation", op))
	done := m.metrics.Begin(op)
	return func() {
		done()
		m.applyMu.Lock()
		m.mutations.Add(1)
		m.inFlight.Add(-1)
		m.applyMu.Unlock()
	}
}

// mark records the mutation count before a fetch, and whether no mutation
// was in flight at that point.
func (m *Manager) mark() (uint64, bool) {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()
	return m.mutations.Load(), m.inFlight.Load() == 0
}

// applyIfSettled runs apply only when no mutation began, ended, or was in
// flight since mark. It reports whether apply ran.
func (m *Manager) applyIfSettled(since uint64, quiet bool, apply func()) bool {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()
	if !quiet || m.inFlight.Load() != 0 || m.mutations.Load() != since {
		return false
	}
	apply()
	return true
}

func (m *Manager) superseded(op string) {
	m.metrics.Operation(op, metrics.OutcomeSkipped)
	m.log.Debug("fetch overlapped a mutation, result dropped", zap.String("operation", op))
}

func (m *Manager) commit(op string, fields ...zap.Field) {
	m.metrics.Operation(op, metrics.OutcomeCommitted)
	m.log.Info("operation committed", append([]zap.Field{zap.String("operation", op)}, fields...)...)
}

func (m *Manager) skip(op string, id shopping.ID) {
	m.metrics.Operation(op, metrics.OutcomeSkipped)
	m.log.Debug("target not found, skipping", zap.String("operation", op), zap.Int64("id", int64(id)))
}

// fail records a rolled-back mutation and surfaces err to the user.
func (m *Manager) fail(op string, err error) error {
	m.store.Dispatch(state.SetError{Message: Message(op, err)})
	m.metrics.Operation(op, metrics.OutcomeRolledBack)
	m.log.Warn("operation rolled back",
		zap.String("operation", op),
		zap.Int("status", listapi.StatusOf(err)),
		zap.Error(err))
	return err
}

func (m *Manager) fetchFailed(op string, err error) error {
	msg := Message(op, err)
	m.loadMu.Lock()
	m.fetchErr = msg
	m.loadMu.Unlock()

	m.store.Dispatch(state.SetError{Message: msg})
	m.metrics.Operation(op, metrics.OutcomeFailed)
	m.log.Warn("fetch failed",
		zap.String("operation", op),
		zap.Int("status", listapi.StatusOf(err)),
		zap.Error(err))
	return err
}

// fetchSucceeded clears the error left by an earlier failed fetch. Errors
// from mutations stay until dismissed.
func (m *Manager) fetchSucceeded(op string, fields ...zap.Field) {
	m.loadMu.Lock()
	stale := m.fetchErr
	m.fetchErr = ""
	m.loadMu.Unlock()

	if stale != "" && m.store.State().Error == stale {
		m.store.Dispatch(state.SetError{})
	}
	m.metrics.Operation(op, metrics.OutcomeCommitted)
	m.log.Debug("fetch finished", append([]zap.Field{zap.String("operation", op)}, fields...)...)
}

// startFetch raises the loading flag while at least one fetch is running.
func (m *Manager) startFetch() func() {
	m.loadMu.Lock()
	m.fetches++
	if m.fetches == 1 {
		m.store.Dispatch(state.SetLoading{Loading: true})
	}
	m.loadMu.Unlock()

	return func() {
		m.loadMu.Lock()
		defer m.loadMu.Unlock()
		m.fetches--
		if m.fetches == 0 {
			m.store.Dispatch(state.SetLoading{Loading: false})
		}
	}
}

// mergeRefresh carries local-only data over a freshly fetched collection.
func mergeRefresh(fetched []shopping.List, current state.State) []shopping.List {
	var merged []shopping.List
	for _, l := range current.Lists {
		if l.ID.Pending() {
			merged = append(merged, l)
		}
	}
	for _, l := range fetched {
		if prev, _, ok := current.Find(l.ID); ok {
			if !l.ItemsLoaded && prev.ItemsLoaded {
				l.Items = prev.Items
				l.ItemsLoaded = true
			} else if l.ItemsLoaded {
				for _, item := range prev.Items {
					if item.ID.Pending() {
						l.Items = append(l.Items, item)
					}
				}
			}
			if l.Shares == nil {
				l.Shares = prev.Shares
			}
		}
		merged = append(merged, l)
	}
	if merged == nil {
		merged = []shopping.List{}
	}
	return merged
}

// revertPatch returns a patch that puts back the fields patch touched, as
// they were in prev. Items and shares are left alone so that item mutations
// confirmed in the meantime survive the rollback.
func revertPatch(patch shopping.ListPatch, prev shopping.List) shopping.ListPatch {
	var back shopping.ListPatch
	if patch.Name != nil {
		back.Name = shopping.Ptr(prev.Name)
	}
	if patch.Description != nil {
		back.Description = shopping.Ptr(prev.Description)
	}
	if patch.IsDefault != nil {
		back.IsDefault = shopping.Ptr(prev.IsDefault)
	}
	if patch.ShareID != nil {
		back.ShareID = shopping.Ptr(prev.ShareID)
	}
	if patch.SharedWith != nil {
		back.SharedWith = shopping.Ptr(prev.SharedWith)
	}
	return back
}

// listCorrection returns the fields where the server stored something other
// than what patch asked for.
func listCorrection(patch shopping.ListPatch, got shopping.List) shopping.ListPatch {
	var fix shopping.ListPatch
	if patch.Name != nil && got.Name != *patch.Name {
		fix.Name = shopping.Ptr(got.Name)
	}
	if patch.Description != nil && got.Description != *patch.Description {
		fix.Description = shopping.Ptr(got.Description)
	}
	if patch.IsDefault != nil && got.IsDefault != *patch.IsDefault {
		fix.IsDefault = shopping.Ptr(got.IsDefault)
	}
	return fix
}

func itemCorrection(patch shopping.ItemPatch, got shopping.Item) shopping.ItemPatch {
	var fix shopping.ItemPatch
	if patch.Name != nil && got.Name != *patch.Name {
		fix.Name = shopping.Ptr(got.Name)
	}
	if patch.Completed != nil && got.Completed != *patch.Completed {
		fix.Completed = shopping.Ptr(got.Completed)
	}
	return fix
}
