package cmd

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/achilleasa/spatial/radix"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// BenchSort sorts the same random key set with the standard library and
// with the radix sort and compares the results and timings.
func BenchSort(ctx *cli.Context) error {
	setupLogging(ctx)

	count := ctx.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid key count %d", count)
	}
	rng := rand.New(rand.NewSource(ctx.Int64("seed")))

	logger.Noticef("generating %d random keys", count)
	origin := make([]uint64, count)
	for i := range origin {
		origin[i] = uint64(rng.Intn(10000000))
	}

	stdKeys := make([]uint64, count)
	radixKeys := make([]uint64, count)
	copy(stdKeys, origin)
	copy(radixKeys, origin)

	stdStart := time.Now()
	sort.Slice(stdKeys, func(i, j int) bool { return stdKeys[i] < stdKeys[j] })
	stdTime := time.Since(stdStart)

	radixStart := time.Now()
	radix.SortUint64s(radixKeys)
	radixTime := time.Since(radixStart)

	for i := range stdKeys {
		if stdKeys[i] != radixKeys[i] {
			return fmt.Errorf("sorted key mismatch at index %d: %d != %d", i, stdKeys[i], radixKeys[i])
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Sort", "Keys", "Time"})
	table.Append([]string{"sort.Slice", fmt.Sprintf("%d", count), stdTime.String()})
	table.Append([]string{"radix.SortUint64s", fmt.Sprintf("%d", count), radixTime.String()})
	table.Render()

	logger.Noticef("sort benchmark results\n%s", buf.String())
	return nil
}
