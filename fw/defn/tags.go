package defn

// TagType identifies a piece of forwarding metadata attached to a packet.
type TagType int

const (
	// TagIncomingFaceID is the face a packet arrived on.
	TagIncomingFaceID TagType = iota
	// TagNextHopFaceID is an application-chosen egress face.
	TagNextHopFaceID
	// TagCongestionMark carries a congestion mark from the link layer.
	TagCongestionMark
)

func (t TagType) String() string {
	switch t {
	case TagIncomingFaceID:
		return "IncomingFaceId"
	case TagNextHopFaceID:
		return "NextHopFaceId"
	case TagCongestionMark:
		return "CongestionMark"
	default:
		return "Unknown"
	}
}

// Tags is a property bag of forwarding metadata. It is never part of the packet encoding.
type Tags struct {
	tags map[TagType]uint64
}

// SetTag attaches or replaces a tag.
func (t *Tags) SetTag(typ TagType, v uint64) {
	if t.tags == nil {
		t.tags = make(map[TagType]uint64, 2)
	}
	t.tags[typ] = v
}

// Tag returns the value of a tag, if present.
func (t *Tags) Tag(typ TagType) (uint64, bool) {
	v, ok := t.tags[typ]
	return v, ok
}

// RemoveTag detaches a tag.
func (t *Tags) RemoveTag(typ TagType) {
	delete(t.tags, typ)
}

// IncomingFaceID returns the incoming face tag, or InvalidFaceID when absent.
func (t *Tags) IncomingFaceID() uint64 {
	if v, ok := t.tags[TagIncomingFaceID]; ok {
		return v
	}
	return InvalidFaceID
}
