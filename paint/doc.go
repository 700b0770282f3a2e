// SPDX-License-Identifier: Unlicense OR MIT

/*
Package paint implements the pixel write path of the bar.

A Canvas owns the pixels of an entire surface together with the damage
recorded for the current frame. Widgets never see the Canvas directly:
Canvas.Draw hands out a Ctx scoped to one rectangle of the surface for
the duration of a single call, and only one Ctx is live at a time.

Pixels are stored as ARGB8888 in little-endian byte order, four bytes
per pixel, with a row stride equal to the surface width.
*/
package paint
