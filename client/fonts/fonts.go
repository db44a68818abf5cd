package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const dpi = 72

func init() {
	if err := loadFonts(); err != nil {
		panic(fmt.Sprintf("Failed to load fonts: %v", err))
	}
}

// TTFNormalFont is used for buttons.
var TTFNormalFont font.Face

// TTFLargeFont is used for full screen overlays such as the loading indicator.
var TTFLargeFont font.Face

// MPlusSmallFont is used for the debug overlay.
var MPlusSmallFont font.Face

var (
	goRegular *truetype.Font
	facesMu   sync.Mutex
	faces     = map[float64]font.Face{}
)

func loadFonts() error {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	MPlusSmallFont, err = opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    12,
		DPI:     dpi,
		Hinting: font.HintingVertical,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %v", err)
	}

	goRegular, err = truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}

	TTFNormalFont = Face(24)
	TTFLargeFont = Face(36)

	return nil
}

// Face returns a cached go-regular face of the given size.
func Face(size float64) font.Face {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f
	}
	f := truetype.NewFace(goRegular, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	faces[size] = f
	return f
}
