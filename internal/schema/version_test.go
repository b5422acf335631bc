package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Version
		wantErr bool
	}{
		{name: "simple", in: "v1_0_0", want: Version{1, 0, 0}},
		{name: "errata", in: "v1_15_2", want: Version{1, 15, 2}},
		{name: "missing v prefix", in: "1_0_0", wantErr: true},
		{name: "two segments", in: "v1_0", wantErr: true},
		{name: "four segments", in: "v1_0_0_0", wantErr: true},
		{name: "non-numeric segment", in: "v1_a_0", wantErr: true},
		{name: "negative segment", in: "v1_-1_0", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "bare v", in: "v", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *InvalidVersionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.in, invalid.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionAccessors(t *testing.T) {
	t.Parallel()

	v := Version{1, 7, 2}
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, uint64(7), v.Minor())
	assert.Equal(t, uint64(2), v.Errata())
	assert.Equal(t, "v1_7_2", v.String())
	assert.Equal(t, "1.7.2", v.Dotted())
}

func TestVersionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{name: "equal", a: Version{1, 2, 3}, b: Version{1, 2, 3}, want: 0},
		{name: "major less", a: Version{1, 9, 9}, b: Version{2, 0, 0}, want: -1},
		{name: "major greater", a: Version{2, 0, 0}, b: Version{1, 9, 9}, want: 1},
		{name: "minor decides", a: Version{1, 2, 9}, b: Version{1, 3, 0}, want: -1},
		{name: "errata decides", a: Version{1, 2, 4}, b: Version{1, 2, 3}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestVersionAtMost(t *testing.T) {
	t.Parallel()

	assert.True(t, Version{1, 0, 0}.AtMost(Version{1, 0, 0}))
	assert.True(t, Version{1, 0, 0}.AtMost(Version{1, 2, 0}))
	assert.False(t, Version{1, 2, 1}.AtMost(Version{1, 2, 0}))
}
