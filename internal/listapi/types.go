package listapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/tote/internal/shopping"
)

// APIVersion is the wire contract version this adapter speaks.
const APIVersion = "1"

// WireID decodes ids sent either as JSON numbers or numeric strings.
type WireID int64

// UnmarshalJSON implements json.Unmarshaler.
func (w *WireID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*w = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*w = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("id %q is not numeric", s)
		}
		*w = WireID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id %s is not an integer", trimmed)
	}
	*w = WireID(n)
	return nil
}

// ListRecord mirrors a list as returned by /lists endpoints.
type ListRecord struct {
	ID             WireID        `json:"id"`
	Name           string        `json:"name"`
	Description    *string       `json:"description"`
	Items          []ItemRecord  `json:"items"`
	TotalItems     int           `json:"totalItems"`
	CompletedItems int           `json:"completedItems"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
	ShareID        string        `json:"shareId"`
	IsDefault      bool          `json:"isDefault"`
	OwnerID        WireID        `json:"ownerId"`
	IsOwner        bool          `json:"isOwner"`
	SharedWith     int           `json:"sharedWith"`
	Shares         []ShareRecord `json:"shares"`
}

// ItemRecord mirrors an item. Completion arrives as either "completed" or the
// older "isDone" field.
type ItemRecord struct {
	ID        WireID `json:"id"`
	Name      string `json:"name"`
	Completed *bool  `json:"completed"`
	IsDone    *bool  `json:"isDone"`
	CreatedAt string `json:"createdAt"`
}

// ShareRecord mirrors a share grant.
type ShareRecord struct {
	ID                  WireID `json:"id"`
	ListID              WireID `json:"listId"`
	OwnerID             WireID `json:"ownerId"`
	SharedWithUserID    WireID `json:"sharedWithUserId"`
	SharedWithUsername  string `json:"sharedWithUsername"`
	SharedWithFirstName string `json:"sharedWithFirstName"`
	SharedWithLastName  string `json:"sharedWithLastName"`
	CreatedAt           string `json:"createdAt"`
}

// ShareResult is returned by POST /lists/{id}/share.
type ShareResult struct {
	ShareURL string `json:"shareUrl"`
	ShareID  string `json:"shareId"`
}

// CreateListRequest is the body of POST /lists.
type CreateListRequest struct {
	Name string `json:"name"`
}

// UpdateListRequest is the body of PATCH /lists/{id}.
type UpdateListRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDefault   *bool   `json:"isDefault,omitempty"`
	ShareID     *string `json:"shareId,omitempty"`
	SharedWith  *int    `json:"sharedWith,omitempty"`
}

// UpdateListRequestFrom converts a domain patch into its wire body.
func UpdateListRequestFrom(p shopping.ListPatch) UpdateListRequest {
	return UpdateListRequest{
		Name:        p.Name,
		Description: p.Description,
		IsDefault:   p.IsDefault,
		ShareID:     p.ShareID,
		SharedWith:  p.SharedWith,
	}
}

// CreateItemRequest is the body of POST /lists/{id}/items.
type CreateItemRequest struct {
	Name string `json:"name"`
}

// UpdateItemRequest is the body of PATCH /lists/{id}/items/{itemId}.
type UpdateItemRequest struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// ShareRequest is the body of POST /lists/{id}/share.
type ShareRequest struct {
	TelegramUsername string `json:"telegramUsername"`
}

// ErrorBody is the optional JSON body of a non-2xx response.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToList maps a wire list into its canonical form.
func (r ListRecord) ToList() shopping.List {
	l := shopping.List{
		ID:             shopping.ID(r.ID),
		Name:           r.Name,
		TotalItems:     r.TotalItems,
		CompletedItems: r.CompletedItems,
		IsDefault:      r.IsDefault,
		IsOwner:        r.IsOwner,
		OwnerID:        int64(r.OwnerID),
		ShareID:        r.ShareID,
		SharedWith:     r.SharedWith,
		CreatedAt:      parseTime(r.CreatedAt),
		UpdatedAt:      parseTime(r.UpdatedAt),
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
	if r.Items != nil {
		l.Items = ToItems(r.Items)
		l.ItemsLoaded = true
	}
	if r.Shares != nil {
		l.Shares = ToShares(r.Shares)
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	return l
}

// ToLists maps a slice of wire lists.
func ToLists(records []ListRecord) []shopping.List {
	out := make([]shopping.List, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToList())
	}
	return out
}

// ToItem maps a wire item. "completed" wins over "isDone" when both are set.
func (r ItemRecord) ToItem() shopping.Item {
	item := shopping.Item{
		ID:        shopping.ID(r.ID),
		Name:      r.Name,
		CreatedAt: parseTime(r.CreatedAt),
	}
	switch {
	case r.Completed != nil:
		item.Completed = *r.Completed
	case r.IsDone != nil:
		item.Completed = *r.IsDone
	}
	return item
}

// ToItems maps a slice of wire items, never returning nil.
func ToItems(records []ItemRecord) []shopping.Item {
	out := make([]shopping.Item, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToItem())
	}
	return out
}

// ToShare maps a wire share grant.
func (r ShareRecord) ToShare() shopping.Share {
	return shopping.Share{
		ID:                  shopping.ID(r.ID),
		ListID:              shopping.ID(r.ListID),
		OwnerID:             int64(r.OwnerID),
		SharedWithUserID:    int64(r.SharedWithUserID),
		SharedWithUsername:  r.SharedWithUsername,
		SharedWithFirstName: r.SharedWithFirstName,
		SharedWithLastName:  r.SharedWithLastName,
		CreatedAt:           parseTime(r.CreatedAt),
	}
}

// ToShares maps a slice of wire shares, never returning nil.
func ToShares(records []ShareRecord) []shopping.Share {
	out := make([]shopping.Share, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToShare())
	}
	return out
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
