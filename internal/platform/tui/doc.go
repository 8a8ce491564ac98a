// Package tui runs arcade games in a terminal with Bubble Tea. A Model
// drives one game at a fixed tick rate; MenuModel, ScoreboardModel and
// SessionModel wrap it into the local and SSH front ends.
package tui
