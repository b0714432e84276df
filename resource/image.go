package resource

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"
)

// ImagePixels converts img to tightly packed 8-bit pixels of the given
// size and format, resampling with Catmull-Rom when the bounds differ.
// Supported formats are RGBA8Unorm and BGRA8Unorm.
func ImagePixels(img image.Image, width, height uint32, format gputypes.TextureFormat) ([]byte, error) {
	if format != gputypes.TextureFormatRGBA8Unorm && format != gputypes.TextureFormatBGRA8Unorm {
		return nil, invalidf("image upload: unsupported format %v", format)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	if img.Bounds().Dx() == int(width) && img.Bounds().Dy() == int(height) {
		xdraw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	}

	pix := dst.Pix
	if format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
	}
	return pix, nil
}

// WriteImage uploads img into mip level 0 of tex, scaled to the texture
// extent. The texture needs copy-destination usage.
func (f *Factory) WriteImage(tex *Texture, img image.Image) error {
	if err := f.ready(); err != nil {
		return err
	}
	if f.queue == nil {
		return ErrNilQueue
	}
	if tex == nil || tex.Destroyed() {
		return fmt.Errorf("write image: %w", ErrDestroyed)
	}
	pix, err := ImagePixels(img, tex.width, tex.height, tex.format)
	if err != nil {
		return err
	}
	err = f.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex.texture,
			MipLevel: 0,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  tex.width * 4,
			RowsPerImage: tex.height,
		},
		&hal.Extent3D{Width: tex.width, Height: tex.height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("write image %q: %w", tex.label, err)
	}
	return nil
}
