// Package ui is the Bubble Tea front-end of atlasui.
//
// AppModel owns fetch, loading, and error state and switches between the
// sessions and exercises views. TableView renders any []api.Row under a
// column list with optional per-row actions. Modals (confirm, notice) sit on
// an OverlayStack and receive keys before the table.
package ui
