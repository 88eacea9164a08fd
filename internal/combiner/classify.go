package combiner

import (
	"errors"
	"fmt"
)

// MaxInputs is the highest vertex input index a selector can reference.
const MaxInputs = 4

var ErrUnclassifiable = errors.New("combiner: features fit no composition category")

// Category is the coarse blend composition of a program.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryTexture
	CategoryColor
	CategoryTextureTexture
	CategoryTextureColor
	CategoryColorColor
)

var categoryNames = [...]string{
	CategoryNone:           "none",
	CategoryTexture:        "texture",
	CategoryColor:          "color",
	CategoryTextureTexture: "texture+texture",
	CategoryTextureColor:   "texture+color",
	CategoryColorColor:     "color+color",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// UsesTexture reports whether programs of this category sample any texture.
func (c Category) UsesTexture() bool {
	return c == CategoryTexture || c == CategoryTextureTexture || c == CategoryTextureColor
}

// Classify maps features to a category and a texture unit ordering. The
// ordering is only meaningful for CategoryTextureTexture; every other
// category reports {0, 1}. Rules are tried in order and the first match wins.
func Classify(f Features) (Category, [2]int, error) {
	ord := [2]int{0, 1}
	if f.NumInputs < 0 || f.NumInputs > MaxInputs {
		return CategoryNone, ord, fmt.Errorf("%w: %d vertex inputs", ErrUnclassifiable, f.NumInputs)
	}

	switch {
	case f.UsedTextures[0] && f.UsedTextures[1]:
		if f.DoSingle[1] {
			ord = [2]int{1, 0}
		}
		return CategoryTextureTexture, ord, nil
	case f.UsedTextures[0] && f.NumInputs > 0:
		return CategoryTextureColor, ord, nil
	case f.UsedTextures[0]:
		return CategoryTexture, ord, nil
	case f.UsedTextures[1]:
		// Slot 1 alone has no category; falling through would draw it untextured.
		return CategoryNone, ord, fmt.Errorf("%w: texture slot 1 used without slot 0", ErrUnclassifiable)
	case f.NumInputs > 1:
		return CategoryColorColor, ord, nil
	case f.NumInputs == 1:
		return CategoryColor, ord, nil
	}
	return CategoryNone, ord, nil
}
