package effect

import (
	"github.com/gopx/px"
)

// duotoneSaturation is the fixed saturation used for the HSL->RGB
// conversion of duotone output colors.
const duotoneSaturation = 0.6

// Duotone maps each pixel's luminance onto a two-hue gradient. The output
// hue interpolates linearly from darkHue to lightHue as luminance goes
// 0 -> 0.5, scaled by the intensity factor; luminance beyond that point
// clamps to lightHue. Lightness follows the pixel's luminance, saturation
// is fixed. Alpha is preserved.
//
// Settings: darkHue, lightHue (degrees), intensity.
func Duotone(buf *px.Pixmap, s Settings) {
	darkHue := s["darkHue"]
	lightHue := s["lightHue"]
	intensity := s["intensity"]

	data := buf.Data()
	for i := 0; i < len(data); i += 4 {
		lum := (0.299*float64(data[i+0]) + 0.587*float64(data[i+1]) + 0.114*float64(data[i+2])) / 255

		// Luminance 0..0.5 sweeps dark -> light; beyond 0.5 stays light.
		t := lum / 0.5 * intensity
		if t > 1 {
			t = 1
		}
		hue := darkHue + (lightHue-darkHue)*t

		c := px.HSL(hue, duotoneSaturation, lum)
		data[i+0] = uint8(c.R*255 + 0.5)
		data[i+1] = uint8(c.G*255 + 0.5)
		data[i+2] = uint8(c.B*255 + 0.5)
	}
}
