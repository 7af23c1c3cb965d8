package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/five82/tote/internal/listapi"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// lookup resolves {id} to a list visible to the caller. It holds s.mu on
// success; the caller must unlock.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*listRow, int64, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid list id")
		return nil, 0, false
	}
	user := callerID(r)
	s.mu.Lock()
	l := s.db.list(id, user)
	if l == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "List not found")
		return nil, 0, false
	}
	return l, user, true
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	user := callerID(r)
	s.mu.Lock()
	out := make([]listapi.ListRecord, 0, len(s.db.lists))
	for _, l := range s.db.lists {
		if s.db.visible(l, user) {
			out = append(out, s.db.listRecord(l, user, false))
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req listapi.CreateListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "List name is required")
		return
	}
	user := callerID(r)
	s.mu.Lock()
	l := s.db.createList(name, user)
	rec := s.db.listRecord(l, user, true)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rec := s.db.listRecord(l, user, true)
	rec.Shares = make([]listapi.ShareRecord, 0, len(l.shares))
	for _, sh := range l.shares {
		rec.Shares = append(rec.Shares, s.db.shareRecord(l, sh))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	var req listapi.UpdateListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if l.ownerID != user {
		writeError(w, http.StatusForbidden, "Only the owner can edit this list")
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "List name is required")
			return
		}
		l.name = name
	}
	if req.Description != nil {
		l.description = strings.TrimSpace(*req.Description)
	}
	if req.IsDefault != nil {
		s.db.setDefault(l, *req.IsDefault, user)
	}
	if req.ShareID != nil {
		l.shareID = *req.ShareID
	}
	l.updatedAt = s.db.now()
	writeJSON(w, http.StatusOK, s.db.listRecord(l, user, false))
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if l.ownerID != user {
		writeError(w, http.StatusForbidden, "Only the owner can delete this list")
		return
	}
	s.db.deleteList(l.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleDefault(w http.ResponseWriter, r *http.Request) {
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if l.ownerID != user {
		writeError(w, http.StatusForbidden, "Only the owner can change the default list")
		return
	}
	s.db.setDefault(l, !l.isDefault, user)
	writeJSON(w, http.StatusOK, s.db.listRecord(l, user, false))
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req listapi.ShareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	username := strings.TrimPrefix(strings.TrimSpace(req.TelegramUsername), "@")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Telegram username is required")
		return
	}
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if l.ownerID != user {
		writeError(w, http.StatusForbidden, "Only the owner can share this list")
		return
	}
	target, found := s.db.userByName(username)
	if !found {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if existing, _ := l.shareFor(target.ID); existing != nil || target.ID == l.ownerID {
		writeError(w, http.StatusConflict, "List already shared with this user")
		return
	}
	s.db.share(l, target)
	writeJSON(w, http.StatusOK, listapi.ShareResult{
		ShareURL: s.opts.ShareURL + l.shareID,
		ShareID:  l.shareID,
	})
}

func (s *Server) handleListShares(w http.ResponseWriter, r *http.Request) {
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out := make([]listapi.ShareRecord, 0, len(l.shares))
	for _, sh := range l.shares {
		out = append(out, s.db.shareRecord(l, sh))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRemoveShare(w http.ResponseWriter, r *http.Request) {
	target, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	l, user, ok := s.lookup(w, r)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if l.ownerID != user && target != user {
		writeError(w, http.StatusForbidden, "Only the owner can remove access")
		return
	}
	_, idx := l.shareFor(target)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "Share not found")
		return
	}
	l.shares = append(l.shares[:idx], l.shares[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out := make([]listapi.ItemRecord, 0, len(l.items))
	for _, item := range l.items {
		out = append(out, s.db.itemRecord(item))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req listapi.CreateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	item := s.db.addItem(l, name)
	rec := s.db.itemRecord(item)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, rec)
}

// item resolves {itemId} within l. It releases s.mu when the item is
// missing.
func (s *Server) item(w http.ResponseWriter, r *http.Request, l *listRow) (*itemRow, int, bool) {
	id, ok := pathID(r, "itemId")
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid item id")
		return nil, -1, false
	}
	item, idx := l.item(id)
	if item == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Item not found")
		return nil, -1, false
	}
	return item, idx, true
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req listapi.UpdateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	item, _, ok := s.item(w, r, l)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "Item name is required")
			return
		}
		item.name = name
	}
	if req.Completed != nil {
		item.completed = *req.Completed
	}
	l.updatedAt = s.db.now()
	writeJSON(w, http.StatusOK, s.db.itemRecord(item))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_, idx, ok := s.item(w, r, l)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.updatedAt = s.db.now()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	l, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	item, _, ok := s.item(w, r, l)
	if !ok {
		return
	}
	defer s.mu.Unlock()
	item.completed = !item.completed
	l.updatedAt = s.db.now()
	writeJSON(w, http.StatusOK, s.db.itemRecord(item))
}
