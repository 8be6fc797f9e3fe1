package encoding

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// TLNum is a TLV type number.
type TLNum uint64

const (
	TypeInvalidComponent                TLNum = 0x00
	TypeImplicitSha256DigestComponent   TLNum = 0x01
	TypeParametersSha256DigestComponent TLNum = 0x02
	TypeGenericNameComponent            TLNum = 0x08
	TypeKeywordNameComponent            TLNum = 0x20
	TypeSegmentNameComponent            TLNum = 0x32
	TypeByteOffsetNameComponent         TLNum = 0x34
	TypeVersionNameComponent            TLNum = 0x36
	TypeTimestampNameComponent          TLNum = 0x38
	TypeSequenceNumNameComponent        TLNum = 0x3a
)

const (
	ParamShaNameConvention  = "params-sha256"
	DigestShaNameConvention = "sha256digest"
)

var HEX_UPPER = []rune("0123456789ABCDEF")

// Component is a single typed name component.
type Component struct {
	Typ TLNum
	Val []byte
}

// NewStringComponent creates a component holding the bytes of s.
func NewStringComponent(typ TLNum, s string) Component {
	return Component{Typ: typ, Val: []byte(s)}
}

// NewBytesComponent creates a component holding a copy of b.
func NewBytesComponent(typ TLNum, b []byte) Component {
	return Component{Typ: typ, Val: append([]byte(nil), b...)}
}

// NewNumberComponent creates a component holding a nonNegativeInteger.
func NewNumberComponent(typ TLNum, v uint64) Component {
	return Component{Typ: typ, Val: natBytes(v)}
}

func NewGenericComponent(s string) Component {
	return NewStringComponent(TypeGenericNameComponent, s)
}

func NewVersionComponent(v uint64) Component {
	return NewNumberComponent(TypeVersionNameComponent, v)
}

func NewSegmentComponent(v uint64) Component {
	return NewNumberComponent(TypeSegmentNameComponent, v)
}

func (c Component) Clone() Component {
	return Component{
		Typ: c.Typ,
		Val: append([]byte(nil), c.Val...),
	}
}

func (c Component) String() string {
	sb := strings.Builder{}
	c.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the URI representation of the component and returns the number of bytes written.
func (c Component) WriteTo(sb *strings.Builder) int {
	size := 0

	vFmt := compValFmt(compValFmtText{})
	if conv, ok := compConvByType[c.Typ]; ok {
		vFmt = conv.vFmt
		sb.WriteString(conv.name)
		sb.WriteRune('=')
		size += len(conv.name) + 1
	} else if c.Typ != TypeGenericNameComponent {
		typ := strconv.FormatUint(uint64(c.Typ), 10)
		sb.WriteString(typ)
		sb.WriteRune('=')
		size += len(typ) + 1
	}

	size += vFmt.WriteTo(c.Val, sb)
	return size
}

// NumberVal returns the value of the component as a number
func (c Component) NumberVal() uint64 {
	ret := uint64(0)
	for _, v := range c.Val {
		ret = (ret << 8) | uint64(v)
	}
	return ret
}

func (c Component) Equal(rhs Component) bool {
	if c.Typ != rhs.Typ || len(c.Val) != len(rhs.Val) {
		return false
	}
	return bytes.Equal(c.Val, rhs.Val)
}

// Compare orders components by type, then length, then value (canonical order).
func (c Component) Compare(rhs Component) int {
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

// Hash returns the hash of the component
func (c Component) Hash() uint64 {
	xx := xxHashPoolGet()
	defer xxHashPoolPut(xx)
	c.hashInto(xx)
	return xx.hash.Sum64()
}

func (c Component) hashInto(xx *hashPoolObj) {
	var hdr [16]byte
	binary.BigEndian.PutUint64(hdr[:8], uint64(c.Typ))
	binary.BigEndian.PutUint64(hdr[8:], uint64(len(c.Val)))
	xx.hash.Write(hdr[:])
	xx.hash.Write(c.Val)
}

func (c Component) Append(rest ...Component) Name {
	return Name{c}.Append(rest...)
}

// ComponentFromStr parses a component from its URI representation.
func ComponentFromStr(s string) (Component, error) {
	ret := Component{}
	if err := componentFromStrInto(s, &ret); err != nil {
		return Component{}, err
	}
	return ret, nil
}

func parseCompTypeFromStr(s string) (TLNum, compValFmt, error) {
	if len(s) > 0 && isAlphabet(rune(s[0])) {
		if conv, ok := compConvByStr[s]; ok {
			return conv.typ, conv.vFmt, nil
		}
		return 0, compValFmtInvalid{}, ErrFormat{"unknown component type: " + s}
	}
	typInt, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, compValFmtInvalid{}, ErrFormat{"invalid component type: " + s}
	}
	return TLNum(typInt), compValFmtText{}, nil
}

func componentFromStrInto(s string, ret *Component) error {
	var err error
	typStr, valStr, hasEq := strings.Cut(s, "=")
	if !hasEq {
		valStr = s
	} else if strings.Contains(valStr, "=") {
		return ErrFormat{"too many '=' in component: " + s}
	}

	ret.Typ = TypeGenericNameComponent
	vFmt := compValFmt(compValFmtText{})
	if hasEq {
		ret.Typ, vFmt, err = parseCompTypeFromStr(typStr)
		if err != nil {
			return err
		}
		if ret.Typ <= TypeInvalidComponent || ret.Typ > 0xffff {
			return ErrFormat{"invalid component type: " + typStr}
		}
	}
	ret.Val, err = vFmt.FromString(valStr)
	return err
}

func natBytes(v uint64) []byte {
	switch {
	case v <= 0xff:
		return []byte{byte(v)}
	case v <= 0xffff:
		return binary.BigEndian.AppendUint16(nil, uint16(v))
	case v <= 0xffffffff:
		return binary.BigEndian.AppendUint32(nil, uint32(v))
	default:
		return binary.BigEndian.AppendUint64(nil, v)
	}
}

func isAlphabet(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
