package main

import "charm-voting-tui/styles"

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cPanel   = styles.CPanel
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cText    = styles.CText
	cAccent  = styles.CAccent
	cAccent2 = styles.CAccent2
	cWarn    = styles.CWarn
	cError   = styles.CError

	appStyle    = styles.AppStyle
	panelStyle  = styles.PanelStyle
	hotkeyStyle = styles.HotkeyStyle
)
