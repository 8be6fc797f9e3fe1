package defn

// Reserved face IDs.
const (
	// InvalidFaceID is never assigned to a face.
	InvalidFaceID uint64 = 0
	// InternalFaceID is the forwarder's in-process application face.
	InternalFaceID uint64 = 1
	// ContentStoreFaceID tags Data served from the content store.
	ContentStoreFaceID uint64 = 254
	// NullFaceID is a face that drops everything.
	NullFaceID uint64 = 255
	// ReservedMaxFaceID is the largest reserved face ID.
	ReservedMaxFaceID uint64 = 255
)
