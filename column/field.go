package column

import (
	"fmt"
	"maps"
	"strconv"
	"sync/atomic"

	"github.com/arloliu/colmem/errs"
	"github.com/arloliu/colmem/format"
	"github.com/arloliu/colmem/internal/options"
)

// Field describes one column: its name, logical type, time unit (temporal
// types only), whether it may hold nulls, and free-form metadata.
type Field struct {
	Name     string
	Type     format.Type
	Unit     format.TimeUnit
	Nullable bool
	Metadata map[string]string
}

// Namer supplies names for fields created without one.
type Namer interface {
	NextName() string
}

// SequentialNamer hands out Prefix0, Prefix1, ... Each namer counts on its
// own, so two construction contexts never share a sequence. It is safe for
// concurrent use.
type SequentialNamer struct {
	prefix string
	next   atomic.Uint64
}

// NewSequentialNamer returns a namer producing prefix followed by a counter
// starting at zero.
func NewSequentialNamer(prefix string) *SequentialNamer {
	return &SequentialNamer{prefix: prefix}
}

// NextName returns the next name in the sequence.
func (n *SequentialNamer) NextName() string {
	return n.prefix + strconv.FormatUint(n.next.Add(1)-1, 10)
}

type fieldConfig struct {
	field *Field
	namer Namer
}

// FieldOption configures NewField and FieldFromArray.
type FieldOption = options.Option[*fieldConfig]

// WithMetadata attaches a copy of md to the field.
func WithMetadata(md map[string]string) FieldOption {
	return options.NoError(func(c *fieldConfig) {
		c.field.Metadata = maps.Clone(md)
	})
}

// WithNamer names the field through n when no name is given.
func WithNamer(n Namer) FieldOption {
	return options.NoError(func(c *fieldConfig) {
		c.namer = n
	})
}

// WithNullable overrides the nullability of the field.
func WithNullable(nullable bool) FieldOption {
	return options.NoError(func(c *fieldConfig) {
		c.field.Nullable = nullable
	})
}

// WithTimeUnit sets the time unit of a temporal field.
func WithTimeUnit(unit format.TimeUnit) FieldOption {
	return options.New(func(c *fieldConfig) error {
		if !unit.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidTimeUnit, unit)
		}
		c.field.Unit = unit

		return nil
	})
}

// NewField builds a field. An empty name is filled in by the namer given with
// WithNamer, or rejected with errs.ErrUnnamedField when there is none.
// Temporal types without an explicit unit get their implied unit, if any.
func NewField(name string, typ format.Type, nullable bool, opts ...FieldOption) (Field, error) {
	f := Field{Name: name, Type: typ, Nullable: nullable}
	if err := applyFieldOptions(&f, opts); err != nil {
		return Field{}, err
	}

	return f, nil
}

// FieldFromArray infers a field from an array: the logical type from its
// kind, the unit from a datetime payload, and nullability from whether it
// holds any null.
func FieldFromArray(name string, arr Array, opts ...FieldOption) (Field, error) {
	f := Field{Name: name, Type: arr.kind.DefaultType(), Nullable: arr.NullCount() > 0}
	if unit, ok := arrayUnit(arr); ok {
		f.Unit = unit
		f.Type = temporalType(arr.kind, unit)
	}
	if err := applyFieldOptions(&f, opts); err != nil {
		return Field{}, err
	}

	return f, nil
}

func applyFieldOptions(f *Field, opts []FieldOption) error {
	cfg := &fieldConfig{field: f}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	if f.Name == "" {
		if cfg.namer == nil {
			return errs.ErrUnnamedField
		}
		f.Name = cfg.namer.NextName()
	}
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown type %d", errs.ErrTypeError, f.Type)
	}
	if f.Type.IsTemporal() && f.Unit == 0 {
		f.Unit = f.Type.DefaultUnit()
	}

	return nil
}

func temporalType(k Kind, unit format.TimeUnit) format.Type {
	switch {
	case k == KindDatetime32 && unit == format.UnitDays:
		return format.TypeDate32
	case k == KindDatetime32:
		return format.TypeTime32
	default:
		return format.TypeTimestamp
	}
}

// String renders the field as "name: Type" with unit and nullability markers.
func (f Field) String() string {
	s := f.Name + ": " + f.Type.String()
	if f.Unit != 0 {
		s += "[" + f.Unit.String() + "]"
	}
	if f.Nullable {
		s += "?"
	}

	return s
}
