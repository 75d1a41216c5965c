package storefront

// ThemeParams carries the host's palette. Empty fields mean the host did not
// supply that color.
type ThemeParams struct {
	BackgroundColor string
	TextColor       string
	ButtonColor     string
	ButtonTextColor string
}

// HostBridge is the capability surface an embedding host (the Telegram
// client) may provide. Every method must be safe to call even when the app
// runs outside a host; NoopBridge covers that case.
type HostBridge interface {
	// Ready signals the host that the app has rendered and may be shown.
	Ready()
	// Expand asks the host for the full-height viewport.
	Expand()
	// Close asks the host to dismiss the app.
	Close()
	// InitData returns the host-asserted identity payload, or "" when the
	// app runs outside a host.
	InitData() string
	// ThemeParams returns the current host palette.
	ThemeParams() ThemeParams
	// OnThemeChanged registers a callback fired whenever the palette
	// changes. It returns an unsubscribe func.
	OnThemeChanged(fn func(ThemeParams)) (unsubscribe func())
	// ShowBackButton displays the host back control with the given click
	// handler; HideBackButton removes it.
	ShowBackButton(onClick func())
	HideBackButton()
}

// NoopBridge is the null host: every capability is an inert no-op, so app
// code never branches on host presence.
type NoopBridge struct{}

func (NoopBridge) Ready()                                  {}
func (NoopBridge) Expand()                                 {}
func (NoopBridge) Close()                                  {}
func (NoopBridge) InitData() string                        { return "" }
func (NoopBridge) ThemeParams() ThemeParams                { return ThemeParams{} }
func (NoopBridge) OnThemeChanged(func(ThemeParams)) func() { return func() {} }
func (NoopBridge) ShowBackButton(func())                   {}
func (NoopBridge) HideBackButton()                         {}

// StyleRegistry receives theme variables. A web embedder maps it onto CSS
// custom properties on the document root.
type StyleRegistry interface {
	SetVar(name, value string)
}

// Style variable names the UI reads.
const (
	VarBackground = "--background"
	VarForeground = "--foreground"
	VarButton     = "--tg-button"
	VarButtonText = "--tg-button-text"
)

// ApplyTheme writes the host palette into the style registry. Only colors
// the host actually supplied are written, so app defaults survive a partial
// palette.
func ApplyTheme(reg StyleRegistry, params ThemeParams) {
	if params.BackgroundColor != "" {
		reg.SetVar(VarBackground, params.BackgroundColor)
	}
	if params.TextColor != "" {
		reg.SetVar(VarForeground, params.TextColor)
	}
	if params.ButtonColor != "" {
		reg.SetVar(VarButton, params.ButtonColor)
	}
	if params.ButtonTextColor != "" {
		reg.SetVar(VarButtonText, params.ButtonTextColor)
	}
}

// Navigator abstracts the app's history stack for the back-button policy.
type Navigator interface {
	Back()
}

// SyncBackButton applies the navigation policy for the host back control.
// Visibility follows the current location alone: hidden on the root screen,
// shown everywhere else with a handler that steps back through the app's own
// history.
func SyncBackButton(bridge HostBridge, nav Navigator, atRoot bool) {
	if atRoot {
		bridge.HideBackButton()
		return
	}
	bridge.ShowBackButton(nav.Back)
}

// WatchTheme applies the current palette and re-applies it on every host
// theme change. The returned func stops watching.
func WatchTheme(bridge HostBridge, reg StyleRegistry) (stop func()) {
	ApplyTheme(reg, bridge.ThemeParams())
	return bridge.OnThemeChanged(func(p ThemeParams) {
		ApplyTheme(reg, p)
	})
}
