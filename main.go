package main

import (
	"os"

	"github.com/achilleasa/spatial/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spatial"
	app.Usage = "spatial acceleration structure benchmarks"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "bench",
			Usage:  "run benchmarks",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:  "bvh",
					Usage: "compare BVH overlap queries against a brute-force pair test",
					Description: `
Generate a set of random 2D segments, count the overlapping bound pairs
with a brute-force all-pairs test and then again by querying each
segment's bound against a tree built with each split mode. The two
counts must agree for every mode.`,
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "count",
							Value: 1000,
							Usage: "number of random segments",
						},
						cli.StringFlag{
							Name:  "mode",
							Value: "all",
							Usage: "split mode: middle, equal-counts, sah or all",
						},
						cli.IntFlag{
							Name:  "max-leaf",
							Value: 255,
							Usage: "max elements per leaf for the SAH mode",
						},
						cli.Int64Flag{
							Name:  "seed",
							Value: 1,
							Usage: "random generator seed",
						},
					},
					Action: cmd.BenchBvh,
				},
				{
					Name:  "sort",
					Usage: "compare radix sort against the standard library sort",
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "count",
							Value: 200000,
							Usage: "number of random keys",
						},
						cli.Int64Flag{
							Name:  "seed",
							Value: 1,
							Usage: "random generator seed",
						},
					},
					Action: cmd.BenchSort,
				},
			},
		},
	}

	app.Run(os.Args)
}
