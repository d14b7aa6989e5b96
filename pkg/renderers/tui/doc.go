// Package tui renders forms on the terminal. Renderer prints a read-only
// rendition of a form view; Session drives a form engine interactively, one
// prompt per control, with reference search for link fields and validation
// feedback after each submission attempt. The PromptDriver seam keeps the
// session testable without a terminal.
package tui
