package listapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/tote/internal/shopping"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL accepted url without host")
	}
}

type recordedRequest struct {
	method  string
	path    string
	body    string
	headers http.Header
}

func newRecordingServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body), headers: r.Header.Clone()})
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL + "/api", InitData: "query_id=abc&hash=ff"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, &got
}

func TestClient_SendsIdentityAndVersionHeaders(t *testing.T) {
	c, got := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	lists, err := c.FetchLists(ctx)
	if err != nil {
		t.Fatalf("FetchLists returned error: %v", err)
	}
	if len(lists) != 0 {
		t.Fatalf("FetchLists = %#v, want empty", lists)
	}
	req := (*got)[0]
	if req.path != "/api/lists" {
		t.Fatalf("path = %q, want /api/lists", req.path)
	}
	if req.headers.Get(InitDataHeader) != "query_id=abc&hash=ff" {
		t.Fatalf("init data header = %q", req.headers.Get(InitDataHeader))
	}
	if req.headers.Get(VersionHeader) != APIVersion {
		t.Fatalf("version header = %q, want %q", req.headers.Get(VersionHeader), APIVersion)
	}
	if req.headers.Get(RequestIDHeader) == "" {
		t.Fatalf("request id header missing")
	}
	if ua := req.headers.Get("User-Agent"); !strings.HasPrefix(ua, "tote/") {
		t.Fatalf("User-Agent = %q, want tote/*", ua)
	}
}

func TestClient_RoutesEveryOperation(t *testing.T) {
	c, got := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/share"):
			_ = json.NewEncoder(w).Encode(ShareResult{ShareURL: "https://t.me/x", ShareID: "tok"})
		case strings.HasSuffix(r.URL.Path, "/shares"):
			_, _ = w.Write([]byte(`[{"id":1,"listId":"7","sharedWithUserId":99,"sharedWithUsername":"ann"}]`))
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/items"):
			_, _ = w.Write([]byte(`[{"id":"42","name":"Milk","isDone":true}]`))
		case strings.Contains(r.URL.Path, "/items"):
			_, _ = w.Write([]byte(`{"id":42,"name":"Milk","completed":true}`))
		case r.Method == http.MethodPatch:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{"id":7,"name":"Groceries","isDefault":true}`))
		}
	})

	ctx := context.Background()
	if _, err := c.FetchList(ctx, 7); err != nil {
		t.Fatalf("FetchList: %v", err)
	}
	created, err := c.CreateList(ctx, "Groceries")
	if err != nil || created.ID != 7 {
		t.Fatalf("CreateList = %#v, %v", created, err)
	}
	updated, err := c.UpdateList(ctx, 7, shopping.ListPatch{Name: shopping.Ptr("Food")})
	if err != nil || updated != nil {
		t.Fatalf("UpdateList = %#v, %v; want nil record for empty reply", updated, err)
	}
	if err := c.DeleteList(ctx, 7); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	toggled, err := c.ToggleDefault(ctx, 7)
	if err != nil || toggled == nil || !toggled.IsDefault {
		t.Fatalf("ToggleDefault = %#v, %v", toggled, err)
	}
	share, err := c.ShareList(ctx, 7, "ann")
	if err != nil || share.ShareID != "tok" {
		t.Fatalf("ShareList = %#v, %v", share, err)
	}
	shares, err := c.FetchShares(ctx, 7)
	if err != nil || len(shares) != 1 || shares[0].ListID != 7 || shares[0].SharedWithUserID != 99 {
		t.Fatalf("FetchShares = %#v, %v", shares, err)
	}
	if err := c.RemoveShare(ctx, 7, 99); err != nil {
		t.Fatalf("RemoveShare: %v", err)
	}
	items, err := c.FetchItems(ctx, 7)
	if err != nil || len(items) != 1 || items[0].ID != 42 || !items[0].Completed {
		t.Fatalf("FetchItems = %#v, %v", items, err)
	}
	item, err := c.CreateItem(ctx, 7, "Milk")
	if err != nil || item.ID != 42 {
		t.Fatalf("CreateItem = %#v, %v", item, err)
	}
	if _, err := c.UpdateItem(ctx, 7, 42, shopping.ItemPatch{Completed: shopping.Ptr(false)}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if err := c.DeleteItem(ctx, 7, 42); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := c.ToggleItem(ctx, 7, 42); err != nil {
		t.Fatalf("ToggleItem: %v", err)
	}

	want := []string{
		"GET /api/lists/7",
		"POST /api/lists",
		"PATCH /api/lists/7",
		"DELETE /api/lists/7",
		"POST /api/lists/7/toggle-default",
		"POST /api/lists/7/share",
		"GET /api/lists/7/shares",
		"DELETE /api/lists/7/shares/99",
		"GET /api/lists/7/items",
		"POST /api/lists/7/items",
		"PATCH /api/lists/7/items/42",
		"DELETE /api/lists/7/items/42",
		"POST /api/lists/7/items/42/toggle",
	}
	if len(*got) != len(want) {
		t.Fatalf("got %d requests, want %d", len(*got), len(want))
	}
	for i, req := range *got {
		if line := req.method + " " + req.path; line != want[i] {
			t.Errorf("request %d = %q, want %q", i, line, want[i])
		}
	}

	if body := (*got)[1].body; body != `{"name":"Groceries"}` {
		t.Errorf("create body = %s", body)
	}
	if body := (*got)[2].body; body != `{"name":"Food"}` {
		t.Errorf("update body = %s, want only name", body)
	}
	if body := (*got)[5].body; body != `{"telegramUsername":"ann"}` {
		t.Errorf("share body = %s", body)
	}
	if body := (*got)[10].body; body != `{"completed":false}` {
		t.Errorf("update item body = %s", body)
	}
}

func TestClient_HTTPErrorUsesServerMessage(t *testing.T) {
	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"already shared"}`))
	})

	_, err := c.ShareList(context.Background(), 1, "ann")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T %v, want *APIError", err, err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "already shared" {
		t.Fatalf("APIError = %#v, want 409 already shared", apiErr)
	}
	if StatusOf(err) != http.StatusConflict {
		t.Fatalf("StatusOf = %d, want 409", StatusOf(err))
	}
}

func TestClient_HTTPErrorFallsBackToStatusText(t *testing.T) {
	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.DeleteList(context.Background(), 3)
	if err == nil || err.Error() != "HTTP 500: Internal Server Error" {
		t.Fatalf("DeleteList error = %v, want generic HTTP 500 message", err)
	}
}

func TestClient_TransportFailureHasStatusZero(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchLists(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T %v, want *APIError", err, err)
	}
	if !apiErr.Network() || apiErr.Status != 0 {
		t.Fatalf("APIError = %#v, want network error with status 0", apiErr)
	}
}

func TestClient_DecodeError(t *testing.T) {
	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	})

	_, err := c.FetchLists(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchLists error = %v, want decode response error", err)
	}
}

func TestClient_CreateRequiresBody(t *testing.T) {
	c, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	if _, err := c.CreateItem(context.Background(), 1, "Milk"); err == nil {
		t.Fatalf("CreateItem returned nil error for empty body")
	}
}
