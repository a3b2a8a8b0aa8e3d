// Package ui contains the component contract and the components themselves:
// the chat list, the prompt, and the status bar.
//
// Components are passive. They never read events; the main loop translates
// events into actions and broadcasts every action to every component. A
// component reacts inside Update, mutating only its own state and the
// fields of the shared store it owns, and presents that state in Draw.
// Update must not block: anything slow goes to the backend as a
// fire-and-forget request.
package ui
