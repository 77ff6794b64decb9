// Package ui contains the Bubble Tea program that powers the dictionary
// browser. The Model type only orchestrates messages; the behaviour of each
// key lives in internal/session, and rendering lives in view.go.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses and pastes are translated into session.Key values and fed
//     to the session state machine. When a query is committed the session returns a
//     Request, which the model hands to the command bus.
//   - The bus runs the lookup pipeline off the update loop and delivers a
//     command.ResultMsg. Results whose ID no longer matches the pending
//     lookup are dropped; the rest are passed to Session.Complete, which
//     rebuilds the cascading selection lists.
//
// Rendering:
//   - View reads the session's lists and result and never mutates them. It
//     returns a tea.View that asks for the alternate screen. The
//     search bar draws its own caret so the cursor position inside the query
//     is visible while editing.
package ui
