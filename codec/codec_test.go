package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_BucketRoundTrip(t *testing.T) {
	bucket := []string{"x", "y", "z"}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(bucket)
			require.NoError(t, err)

			var got []string
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, bucket, got)
		})
	}
}

func TestCodecs_WireCompatible(t *testing.T) {
	// The two JSON flavors produce interchangeable bytes.
	bucket := []uint64{7, 11, 13}

	data, err := JSON{}.Marshal(bucket)
	require.NoError(t, err)

	var got []uint64
	require.NoError(t, GoJSON{}.Unmarshal(data, &got))
	assert.Equal(t, bucket, got)
}

func TestUnmarshal_Garbage(t *testing.T) {
	var got []string
	assert.Error(t, JSON{}.Unmarshal([]byte("not json"), &got))
	assert.Error(t, GoJSON{}.Unmarshal([]byte("not json"), &got))
}
