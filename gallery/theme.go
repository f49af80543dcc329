package gallery

import (
	"fyne.io/fyne/v2"
)

type metricsTheme struct {
	fyne.Theme
	spacing, breakpoint float32
}

// WithMetrics returns base with the gallery spacing and breakpoint defined.
func WithMetrics(base fyne.Theme, spacing, breakpoint float32) fyne.Theme {
	return &metricsTheme{Theme: base, spacing: spacing, breakpoint: breakpoint}
}

func (t *metricsTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case SizeNameGallerySpacing:
		return t.spacing
	case SizeNameGalleryBreakpoint:
		return t.breakpoint
	}
	return t.Theme.Size(n)
}

