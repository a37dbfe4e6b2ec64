// Package soltype models the Solidity type system as seen by the graph
// builder: parsing type strings into a closed tagged union, rendering them
// back, assignability checks and zero-value defaults.
package soltype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates the Type union.
type Kind int

const (
	KindInteger Kind = iota
	KindAddress
	KindBool
	KindString
	KindBytes
	KindArray
	KindMapping
	KindStruct
	KindEnum
	KindContract
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	case KindMapping:
		return "mapping"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindContract:
		return "contract"
	default:
		return "unknown"
	}
}

// Type is an immutable parsed Solidity type. Only the fields relevant to the
// Kind are populated.
type Type struct {
	Kind Kind

	// Integer
	Bits   int
	Signed bool

	// Bytes: 0 means dynamic `bytes`
	Size int

	// Array
	Elem     *Type
	ArrayLen int  // fixed length, valid when HasLen
	HasLen   bool // distinguishes T[3] from T[]

	// Mapping
	Key   *Type
	Value *Type

	// Struct / Enum / Contract
	Name    string
	Members []string
}

var (
	intRe   = regexp.MustCompile(`^(u?int)(\d*)$`)
	bytesRe = regexp.MustCompile(`^bytes(\d*)$`)
	arrayRe = regexp.MustCompile(`^(.+)\[(\d*)\]$`)
	mapRe   = regexp.MustCompile(`^mapping\s*\(\s*(.+?)\s*=>\s*(.+)\s*\)$`)
)

// Parse converts a Solidity type string into a Type. It is total: anything it
// does not recognize is treated as a named contract reference, on the
// assumption that unknown identifiers are user-defined types.
func Parse(s string) Type {
	s = strings.TrimSpace(s)

	if m := intRe.FindStringSubmatch(s); m != nil {
		bits := 256
		if m[2] != "" {
			bits, _ = strconv.Atoi(m[2])
		}
		return Type{Kind: KindInteger, Bits: bits, Signed: m[1] == "int"}
	}
	if s == "address" {
		return Type{Kind: KindAddress}
	}
	if s == "bool" {
		return Type{Kind: KindBool}
	}
	if s == "string" {
		return Type{Kind: KindString}
	}
	if m := bytesRe.FindStringSubmatch(s); m != nil {
		size := 0
		if m[1] != "" {
			size, _ = strconv.Atoi(m[1])
		}
		return Type{Kind: KindBytes, Size: size}
	}
	if m := mapRe.FindStringSubmatch(s); m != nil {
		key := Parse(m[1])
		val := Parse(m[2])
		return Type{Kind: KindMapping, Key: &key, Value: &val}
	}
	if m := arrayRe.FindStringSubmatch(s); m != nil {
		elem := Parse(m[1])
		t := Type{Kind: KindArray, Elem: &elem}
		if m[2] != "" {
			t.ArrayLen, _ = strconv.Atoi(m[2])
			t.HasLen = true
		}
		return t
	}

	return Type{Kind: KindContract, Name: s}
}

// String renders the canonical Solidity spelling of the type. For canonical
// inputs, Parse and String round-trip.
func (t Type) String() string {
	switch t.Kind {
	case KindInteger:
		prefix := "uint"
		if t.Signed {
			prefix = "int"
		}
		return fmt.Sprintf("%s%d", prefix, t.Bits)
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		if t.Size > 0 {
			return fmt.Sprintf("bytes%d", t.Size)
		}
		return "bytes"
	case KindArray:
		if t.HasLen {
			return fmt.Sprintf("%s[%d]", t.Elem.String(), t.ArrayLen)
		}
		return t.Elem.String() + "[]"
	case KindMapping:
		return fmt.Sprintf("mapping(%s => %s)", t.Key.String(), t.Value.String())
	default:
		return t.Name
	}
}

// Compatible reports whether a value of type src may be assigned to a slot of
// type dst without an explicit cast. Integers widen implicitly (uint8 →
// uint256) but never narrow, mirroring Solidity's own assignability rule.
func Compatible(src, dst Type) bool {
	if src.String() == dst.String() {
		return true
	}
	if src.Kind == KindInteger && dst.Kind == KindInteger {
		return src.Signed == dst.Signed && src.Bits <= dst.Bits
	}
	return false
}

// DefaultValue returns the literal used when a variable of this type is
// declared without an authored initial value.
func (t Type) DefaultValue() string {
	switch t.Kind {
	case KindInteger:
		return "0"
	case KindBool:
		return "false"
	case KindString:
		return `""`
	case KindAddress:
		return "address(0)"
	case KindBytes:
		if t.Size > 0 {
			return fmt.Sprintf("bytes%d(0)", t.Size)
		}
		return `""`
	default:
		return ""
	}
}
