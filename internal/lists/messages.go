package lists

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/tote/internal/listapi"
)

// Operation names, used for metrics labels, logs and messages.
const (
	OpRefreshLists  = "refresh_lists"
	OpFetchList     = "fetch_list"
	OpFetchItems    = "fetch_items"
	OpFetchShares   = "fetch_shares"
	OpCreateList    = "create_list"
	OpUpdateList    = "update_list"
	OpDeleteList    = "delete_list"
	OpToggleDefault = "toggle_default"
	OpShareList     = "share_list"
	OpRemoveShare   = "remove_share"
	OpCreateItem    = "create_item"
	OpUpdateItem    = "update_item"
	OpDeleteItem    = "delete_item"
	OpToggleItem    = "toggle_item"
)

var opLabels = map[string]string{
	OpRefreshLists:  "load lists",
	OpFetchList:     "load list",
	OpFetchItems:    "load items",
	OpFetchShares:   "load shares",
	OpCreateList:    "create list",
	OpUpdateList:    "update list",
	OpDeleteList:    "delete list",
	OpToggleDefault: "change default list",
	OpShareList:     "share list",
	OpRemoveShare:   "remove access",
	OpCreateItem:    "add item",
	OpUpdateItem:    "update item",
	OpDeleteItem:    "delete item",
	OpToggleItem:    "update item",
}

// Message renders the user-visible text stored in State.Error when op fails.
func Message(op string, err error) string {
	if err == nil {
		return ""
	}
	if op == OpShareList {
		return shareMessage(err)
	}
	label := opLabels[op]
	if label == "" {
		label = strings.ReplaceAll(op, "_", " ")
	}

	var apiErr *listapi.APIError
	if errors.As(err, &apiErr) && apiErr.Network() {
		return fmt.Sprintf("Failed to %s: network unavailable", label)
	}
	return fmt.Sprintf("Failed to %s: %s", label, err.Error())
}

func shareMessage(err error) string {
	var apiErr *listapi.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Status {
	case http.StatusConflict:
		return "This user is already added to the list or the username doesn't exist."
	case http.StatusNotFound:
		return "User not found. Please check the username and try again."
	case http.StatusBadRequest:
		return "Invalid username. Please enter a valid Telegram username."
	case http.StatusForbidden:
		return "You don't have permission to share this list."
	}
	if apiErr.Message != "" && !strings.HasPrefix(apiErr.Message, "HTTP") && !apiErr.Network() {
		return apiErr.Message
	}
	return "Failed to share list. Please try again."
}
