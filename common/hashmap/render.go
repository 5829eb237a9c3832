package hashmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/scusemua/chained-hashmap/common/utils"
)

// String renders one line per bucket, in bucket order.
func (m *ChainedMap[V]) String() string {
	lines := make([]string, 0, len(m.buckets))
	for _, bucket := range m.buckets {
		lines = append(lines, bucket.String())
	}
	return strings.Join(lines, "\n")
}

// PrintMap writes each bucket's chain to w, one line per bucket.
func (m *ChainedMap[V]) PrintMap(w io.Writer) error {
	for _, bucket := range m.buckets {
		if _, err := fmt.Fprintln(w, bucket.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintMapStyled is PrintMap with the bucket index in front of each line and empty buckets greyed out.
func (m *ChainedMap[V]) PrintMapStyled(w io.Writer) error {
	for i, bucket := range m.buckets {
		style := utils.FilledBucketStyle
		if bucket.Size() == 0 {
			style = utils.EmptyBucketStyle
		}

		line := utils.BucketIndexStyle.Render(fmt.Sprintf("[%d]", i)) + " " + style.Render(bucket.String())
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the map as an array of [key, value] pairs in Entries order.
func (m *ChainedMap[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}
