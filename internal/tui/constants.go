package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	countdownTickSeconds = 1
	defaultWidth         = 80
	defaultHeight        = 24
	contentMaxWidth      = 100

	// headerLines is the banner plus the tab bar and a spacer.
	headerLines   = 3
	// footerLines is the help line and the spacer above it.
	footerLines   = 2
	bodyMinHeight = 5

	chartMinHeight = 12
	chartMaxHeight = 22

	calcInputLimit  = 64
	presetListLines = 4

	defaultResultDelay    = 2 * time.Second
	countdownTickInterval = time.Duration(countdownTickSeconds) * time.Second
)

const (
	colorPurple = "#7c3aed"
	colorGold   = "#f59e0b"
	colorGreen  = "46"
	colorRed    = "196"
	colorMuted  = "241"
	colorAccent = "69"
)
