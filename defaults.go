package perch

// Default modifier names.
const (
	ModifierShift           = "shift"
	ModifierOffset          = "offset"
	ModifierPreventOverflow = "preventOverflow"
	ModifierKeepTogether    = "keepTogether"
	ModifierArrow           = "arrow"
	ModifierFlip            = "flip"
	ModifierInner           = "inner"
	ModifierHide            = "hide"
	ModifierComputeStyle    = "computeStyle"
	ModifierApplyStyle      = "applyStyle"
)

// defaultOptions is the template every Popper starts from. It is never
// handed out directly; Defaults and Merge work on clones.
var defaultOptions = Options{
	Placement:     Bottom,
	EventsEnabled: true,
	Modifiers: []Modifier{
		{
			Name:    ModifierShift,
			Order:   100,
			Enabled: true,
			Fn:      shift,
		},
		{
			Name:    ModifierOffset,
			Order:   200,
			Enabled: true,
			Fn:      offset,
			Settings: Settings{
				"offset": 0,
				"skid":   0,
			},
		},
		{
			Name:    ModifierPreventOverflow,
			Order:   300,
			Enabled: true,
			Fn:      preventOverflow,
			Settings: Settings{
				"priority": []string{"left", "right", "top", "bottom"},
				"padding":  5,
			},
		},
		{
			Name:    ModifierKeepTogether,
			Order:   400,
			Enabled: true,
			Fn:      keepTogether,
		},
		{
			Name:    ModifierArrow,
			Order:   500,
			Enabled: true,
			Fn:      arrow,
			Settings: Settings{
				"element": nil,
			},
		},
		{
			Name:    ModifierFlip,
			Order:   600,
			Enabled: true,
			Fn:      flip,
			Settings: Settings{
				"padding": 5,
			},
		},
		{
			Name:    ModifierInner,
			Order:   700,
			Enabled: false,
			Fn:      inner,
		},
		{
			Name:    ModifierHide,
			Order:   800,
			Enabled: true,
			Fn:      hide,
		},
		{
			Name:    ModifierComputeStyle,
			Order:   850,
			Enabled: true,
			Fn:      computeStyle,
			Settings: Settings{
				"gpuAcceleration": true,
			},
		},
		{
			Name:      ModifierApplyStyle,
			Order:     900,
			Enabled:   true,
			OnLoad:    applyStyleOnLoad,
			Fn:        applyStyle,
			OnDestroy: applyStyleOnDestroy,
		},
	},
}

// Defaults returns a copy of the default options. Changing the copy does not
// affect other Poppers.
func Defaults() Options {
	return defaultOptions.clone()
}
