// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements the bar's content widgets. Every widget
// satisfies layout.Widget and is built from a config struct whose zero
// fields select documented defaults.
package widget
