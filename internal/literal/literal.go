package literal

// Kind identifies the shape of a literal call argument.
type Kind int

const (
	// KindOther covers everything the matcher cannot use as a value:
	// variables, calls, arrays, non-zero numbers without literal form.
	KindOther Kind = iota
	KindString
	KindNumber
	KindNull
	KindUndefined
	KindObject
)

// Value is a literal call argument, after string-concatenation folding has
// been applied by the host parser.
type Value struct {
	Kind Kind
	// Str holds the text for KindString.
	Str string
	// Num holds the numeric value for KindNumber.
	Num float64
	// Fields holds the key/value pairs for KindObject in source
	// declaration order. Comment flattening depends on that order.
	Fields []Field
}

// Field is one key/value pair of an object literal.
type Field struct {
	Key   string
	Value *Value
}

func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

func Number(n float64) *Value { return &Value{Kind: KindNumber, Num: n} }

func Null() *Value { return &Value{Kind: KindNull} }

func Undefined() *Value { return &Value{Kind: KindUndefined} }

func Object(fields ...Field) *Value { return &Value{Kind: KindObject, Fields: fields} }

func Other() *Value { return &Value{Kind: KindOther} }

// IsText reports whether v is a string-like literal.
func (v *Value) IsText() bool {
	return v != nil && v.Kind == KindString
}

// IsStructured reports whether v is an object-shaped literal.
func (v *Value) IsStructured() bool {
	return v != nil && v.Kind == KindObject
}

// IsOmissionMarker reports whether v is a deliberate placeholder for an
// omitted optional argument: null, undefined, or numeric zero.
func (v *Value) IsOmissionMarker() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case KindNull, KindUndefined:
		return true
	case KindNumber:
		return v.Num == 0
	}
	return false
}
