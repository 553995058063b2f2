package render

import "image/color"

// Dark palette for exported snapshots, one step per unlock tri-state.
var (
	bgDark = color.RGBA{0x0f, 0x17, 0x2a, 0xff} // deep navy

	nodeUnlocked   = color.RGBA{0x22, 0xc5, 0x5e, 0xff} // bright green
	nodeUnlockable = color.RGBA{0x14, 0xb8, 0xa6, 0xff} // teal
	nodeLocked     = color.RGBA{0x33, 0x41, 0x55, 0xff} // muted slate

	glowUnlockable = color.RGBA{0x14, 0xb8, 0xa6, 0x40} // translucent teal halo

	nodeBorder = color.RGBA{0xf8, 0xfa, 0xfc, 0xc0} // off-white stroke

	linkBright = color.RGBA{0x22, 0xc5, 0x5e, 0xa0} // both endpoints unlocked
	linkMedium = color.RGBA{0x14, 0xb8, 0xa6, 0x80} // unlocked + unlockable
	linkDim    = color.RGBA{0x47, 0x55, 0x69, 0x60} // anything else still drawn

	textPrimary = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	textMuted   = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
)
