// Package listapi is the adapter between the shopping-list REST service and
// the in-memory domain types.
//
// # Overview
//
// Every remote operation is one method on Client and exactly one HTTP round
// trip. There are no retries, caches or batches; callers decide what a failure
// means for local state.
//
// # Endpoints
//
//	GET    /lists                              -> []ListRecord
//	GET    /lists/{id}                         -> ListRecord
//	POST   /lists                {name}        -> ListRecord
//	PATCH  /lists/{id}           {name?, ...}  -> ListRecord or empty
//	DELETE /lists/{id}                         -> empty
//	POST   /lists/{id}/share     {telegramUsername} -> {shareUrl, shareId}
//	GET    /lists/{id}/shares                  -> []ShareRecord
//	DELETE /lists/{id}/shares/{userId}         -> empty
//	POST   /lists/{id}/toggle-default          -> ListRecord
//	GET    /lists/{id}/items                   -> []ItemRecord
//	POST   /lists/{id}/items     {name}        -> ItemRecord
//	PATCH  /lists/{id}/items/{itemId}          -> ItemRecord or empty
//	DELETE /lists/{id}/items/{itemId}          -> empty
//	POST   /lists/{id}/items/{itemId}/toggle   -> ItemRecord
//
// All paths are relative to the configured base URL, which may carry a path
// prefix such as /api.
//
// # Request Handling
//
// Each request carries:
//   - X-Telegram-Init-Data: the opaque identity blob from the host platform
//   - X-Api-Version: the wire contract version (APIVersion)
//   - X-Request-ID: a fresh UUID, echoed into debug logs
//   - Accept: application/json and a tote/* User-Agent
//
// # Wire Schema
//
// The wire schema is fixed. Ids may be JSON numbers or numeric strings
// (WireID). Timestamps are RFC 3339 strings. Item completion is read from
// "completed", falling back to "isDone" when only that field is present. The
// ToList/ToItem/ToShare functions are the only place wire records become
// domain values.
//
// # Error Handling
//
// Failures are reported as *APIError:
//   - Status 0: no response was received (connection refused, DNS, timeout)
//   - Status >= 400: the server's "message" field, or "HTTP {status}: {text}"
//
// Decode failures on a 2xx response are plain wrapped errors.
package listapi
