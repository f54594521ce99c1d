package wasm

// Value is a tagged union over the four WebAssembly value types. Only one
// of the numeric fields is meaningful, selected by Type.
type Value struct {
	Type ValueType

	i32 int32
	i64 int64
	f32 float32
	f64 float64
}

// I32 constructs an i32 value.
func I32(v int32) Value { return Value{Type: ValueTypeI32, i32: v} }

// I64 constructs an i64 value.
func I64(v int64) Value { return Value{Type: ValueTypeI64, i64: v} }

// F32 constructs an f32 value.
func F32(v float32) Value { return Value{Type: ValueTypeF32, f32: v} }

// F64 constructs an f64 value.
func F64(v float64) Value { return Value{Type: ValueTypeF64, f64: v} }

// ZeroValue returns the default value for t: the numeric zero of its type.
func ZeroValue(t ValueType) Value {
	switch t {
	case ValueTypeI32:
		return I32(0)
	case ValueTypeI64:
		return I64(0)
	case ValueTypeF32:
		return F32(0)
	case ValueTypeF64:
		return F64(0)
	default:
		return Value{}
	}
}

// AsI32 returns the value as an int32, or ok=false if Type is not I32.
func (v Value) AsI32() (int32, bool) {
	if v.Type != ValueTypeI32 {
		return 0, false
	}
	return v.i32, true
}

// AsI64 returns the value as an int64, or ok=false if Type is not I64.
func (v Value) AsI64() (int64, bool) {
	if v.Type != ValueTypeI64 {
		return 0, false
	}
	return v.i64, true
}

// AsF32 returns the value as a float32, or ok=false if Type is not F32.
func (v Value) AsF32() (float32, bool) {
	if v.Type != ValueTypeF32 {
		return 0, false
	}
	return v.f32, true
}

// AsF64 returns the value as a float64, or ok=false if Type is not F64.
func (v Value) AsF64() (float64, bool) {
	if v.Type != ValueTypeF64 {
		return 0, false
	}
	return v.f64, true
}
