package model

// TexturePageItem is a rectangle on a texture page (spec §3), referenced
// by sprites, fonts, backgrounds and options.
type TexturePageItem struct {
	SourceX, SourceY, SourceW, SourceH uint16
	TargetX, TargetY, TargetW, TargetH uint16
	BoundingBoxW, BoundingBoxH         uint16
	TexturePageID                      int32 // index into the TXTR page list
}

// TexturePage is one entry of the TXTR chunk: the QOI/PNG-encoded bytes for
// a single atlas page. The container codec validates only the 12-byte QOI
// header frame (spec §6); full image decode is an external collaborator's
// job.
type TexturePage struct {
	Width, Height uint32
	Scaled        int32
	GeneratedMips int32
	ImageData     []byte // raw QOI/PNG/BZ2+PNG bytes, header-validated only
}

// QOIHeader is the 12-byte frame spec §6 requires the codec to validate
// before delegating image decode to an external collaborator.
type QOIHeader struct {
	Magic  [4]byte // "qoif" or "fioq"
	Width  uint16
	Height uint16
	// BodyLength is a u32 in the spec's framing note; some container
	// versions instead store QOI data with an implicit length (the rest of
	// the chunk slot), in which case this is left zero and ignored.
	BodyLength uint32
}
