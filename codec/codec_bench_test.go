package codec

import (
	"fmt"
	"testing"
)

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

// benchBucket mirrors the value shape ordcache persists: a slice of cache
// keys sharing one order value. Ties are rare in practice, so small slices
// are the common case; the large variant covers pathological tie counts.
func benchBucket(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("txn:9f%04x", i)
	}
	return keys
}

func BenchmarkCodec_Marshal_Bucket(b *testing.B) {
	small := benchBucket(3)
	large := benchBucket(256)

	b.Run("stdlib/small", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, small) })
	b.Run("go-json/small", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, small) })
	b.Run("stdlib/large", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, large) })
	b.Run("go-json/large", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, large) })
}

func BenchmarkCodec_Unmarshal_Bucket(b *testing.B) {
	data := MustMarshal(JSON{}, benchBucket(3))

	b.Run("stdlib", func(b *testing.B) {
		var sink []string
		benchmarkCodecUnmarshal(b, JSON{}, data, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink []string
		benchmarkCodecUnmarshal(b, GoJSON{}, data, &sink)
		_ = sink
	})
}
