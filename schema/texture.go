package schema

import (
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Texture type codes.
const (
	ImageTextureType     = 0x20000011
	ReferenceTextureType = 0x20000004
	textureRevision      = 0x05000000
)

var (
	pixelTextureTail = shape.MustParse("iiiiixxxxiii")
	pixelImageShape  = shape.MustParse("iiiiiiii")
	referenceTail    = shape.MustParse("ii")
)

// ImageTexture is a TXOB backed by pixel data.
type ImageTexture struct {
	Object
	Image          *PixelImage
	Height         int32
	Width          int32
	GLFormat       int32
	GLType         int32
	MipmapLevels   int32
	LocationFlag   int32
	HardwareFormat int32
}

// NewImageTexture creates a texture over already swizzled pixel data.
func NewImageTexture(name string, width, height int32, hwFormat int32, bitsPerPixel int32, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Object:         newObject(ImageTextureType, "TXOB", textureRevision, name),
		Width:          width,
		Height:         height,
		MipmapLevels:   1,
		HardwareFormat: hwFormat,
		Image: &PixelImage{
			Width:        width,
			Height:       height,
			Data:         pixels,
			BitsPerPixel: bitsPerPixel,
		},
	}
}

func (t *ImageTexture) Shape() *shape.Shape {
	return shape.Join(objectShape, pixelTextureTail)
}

func (t *ImageTexture) Values() []record.Value {
	return concat(t.Object.values(), []record.Value{
		record.Int(t.Height),
		record.Int(t.Width),
		record.Int(t.GLFormat),
		record.Int(t.GLType),
		record.Int(t.MipmapLevels),
		record.Int(t.LocationFlag),
		record.Int(t.HardwareFormat),
		record.Owned(t.Image),
	})
}

// PixelImage holds a texture's pixel data. Data goes to the blob pool.
type PixelImage struct {
	Data             []byte
	Height           int32
	Width            int32
	DynamicAllocator int32
	BitsPerPixel     int32
	LocationAddress  int32
	MemoryAddress    int32
}

func (p *PixelImage) Shape() *shape.Shape { return pixelImageShape }

func (p *PixelImage) Values() []record.Value {
	return []record.Value{
		record.Int(p.Height),
		record.Int(p.Width),
		record.Blob(p.Data),
		record.Int(p.DynamicAllocator),
		record.Int(p.BitsPerPixel),
		record.Int(p.LocationAddress),
		record.Int(p.MemoryAddress),
	}
}

// ReferenceTexture names another texture in the file. Target is a weak
// reference to it.
type ReferenceTexture struct {
	Object
	TargetName string
	Target     record.ID
}

// NewReferenceTexture creates a reference to the texture with the given
// name and arena ID.
func NewReferenceTexture(name, targetName string, target record.ID) *ReferenceTexture {
	return &ReferenceTexture{
		Object:     newObject(ReferenceTextureType, "TXOB", textureRevision, name),
		TargetName: targetName,
		Target:     target,
	}
}

func (t *ReferenceTexture) Shape() *shape.Shape {
	return shape.Join(objectShape, referenceTail)
}

func (t *ReferenceTexture) Values() []record.Value {
	return concat(t.Object.values(), []record.Value{
		record.String(t.TargetName),
		record.Ref(t.Target),
	})
}
