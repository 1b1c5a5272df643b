package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// ChainFlags selects which registered chain the commands operate on.

func ChainFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "chain",
			Usage: "Chain identifier to query (default: the preset's chain)",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Chain preset to load (mainnet|devnet)",
			Value: "mainnet",
		},
	}
}

// QueryFlags positions attribute queries on the chain. Both values default
// to the chain head, which fully resolves transition rule sets.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		cli.Uint64Flag{
			Name:  "block",
			Usage: "Block number to resolve attributes at (default: head)",
			Value: ^uint64(0),
		},
		cli.Uint64Flag{
			Name:  "time",
			Usage: "Block timestamp to resolve attributes at (default: head)",
			Value: ^uint64(0),
		},
		cli.StringFlag{
			Name:  "kind",
			Usage: "Rule set kind to enumerate (all|base|transition)",
			Value: "base",
		},
		cli.BoolFlag{
			Name:  "deployed",
			Usage: "Restrict enumeration to rule sets deployed on the chain",
		},
		cli.BoolFlag{
			Name:  "development",
			Usage: "Restrict enumeration to rule sets not yet deployed",
		},
	}
}
