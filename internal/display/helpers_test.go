package display

import "image"

func rect(w, h int) image.Rectangle {
	return image.Rect(0, 0, w, h)
}
