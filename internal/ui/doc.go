// Package ui is tote's Bubble Tea terminal interface.
//
// # Views
//
// The lists view shows every list with its progress, default marker (*) and
// sharing state. Opening a list selects it through state.Selection and
// switches to the items view, which shows the items and, for owners, the
// people the list is shared with. Tab moves focus between the two.
//
// # Data Flow
//
// The model never mutates state directly. Key presses become tea.Cmds that
// call lists.Manager off the UI goroutine; the manager dispatches optimistic
// actions into the store, and a store subscription wakes the model through a
// one-slot channel so every dispatch is redrawn. Failures land on
// State.Error, shown in a red bar until x dismisses it or a later fetch
// succeeds. Validation errors are shown as a one-shot notice instead.
//
// # Activity
//
// L toggles a pane that tails the client's own zap log through logtail,
// refreshed once per tick.
//
// Theme and the hide-completed toggle persist to the prefs file.
package ui
