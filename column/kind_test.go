package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/colmem/format"
)

func TestKindPredicates(t *testing.T) {
	require.True(t, KindInt8.IsInteger())
	require.True(t, KindUInt64.IsInteger())
	require.False(t, KindFloat32.IsInteger())
	require.True(t, KindFloat64.IsNumeric())
	require.False(t, KindBoolean.IsNumeric())
	require.True(t, KindString64.IsString())
	require.False(t, KindCategorical8.IsString())
	require.True(t, KindCategorical64.IsText())
	require.True(t, KindDatetime32.IsTemporal())
	require.False(t, KindInt64.IsTemporal())
	require.Equal(t, "Unknown", numKinds.String())
	require.False(t, numKinds.Valid())
	require.Equal(t, format.TypeNull, numKinds.DefaultType())
}

func TestKindAccepts(t *testing.T) {
	tests := []struct {
		kind Kind
		typ  format.Type
		want bool
	}{
		{KindNull, format.TypeInt32, true},
		{KindNull, format.Type(0xff), false},
		{KindInt32, format.TypeInt32, true},
		{KindInt32, format.TypeInt64, false},
		{KindString32, format.TypeString, true},
		{KindString32, format.TypeLargeString, false},
		{KindCategorical16, format.TypeDictionary16, true},
		{KindDatetime32, format.TypeDate32, true},
		{KindDatetime32, format.TypeTime32, true},
		{KindDatetime32, format.TypeTimestamp, false},
		{KindDatetime64, format.TypeTimestamp, true},
		{KindDatetime64, format.TypeDate64, true},
		{KindDatetime64, format.TypeDuration64, true},
		{KindDatetime64, format.TypeDate32, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.typ.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.Accepts(tt.typ))
		})
	}
}
