// Package anim animates effect parameters over time. A Preset maps
// parameter keys to Curves evaluated over normalized progress [0, 1];
// the Renderer samples the curves per frame, drives the effect
// compositor, and produces an ordered Frame sequence ready for export.
package anim
