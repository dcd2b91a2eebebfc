// Package listview provides a scrolling, single-selection list for Bubble Tea
// views. It renders only the rows inside its viewport and supports arrow,
// page, home/end and vim-style j/k navigation.
package listview
