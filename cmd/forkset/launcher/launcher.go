package launcher

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-forkset/flags"
	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/integration"
)

var app = flags.NewApp("inspect fork rule sets, features and transitions")

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.ChainFlags()...)
	app.Flags = append(app.Flags, flags.QueryFlags()...)
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "List the chain's rule sets in chronological order",
			ArgsUsage: " ",
			Action:    listRuleSets,
		},
		{
			Name:      "describe",
			Usage:     "Print a rule set's metadata and every attribute at the query position",
			ArgsUsage: "<ruleset>",
			Action:    describeRuleSet,
		},
		{
			Name:      "range",
			Usage:     "List the forks between two rule sets, inclusive",
			ArgsUsage: "<from> <until>",
			Action:    listRange,
		},
		{
			Name:      "compose",
			Usage:     "Compose registered features onto a base rule set and describe the result",
			ArgsUsage: "<base> <eip>...",
			Action:    composeRuleSet,
		},
	}
}

// Launch parses flags and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

// makeEnv builds the per-command environment: merged config, configured
// logging, a populated registry and the partition to query.
func makeEnv(ctx *cli.Context) (Config, *forkset.Registry, string, error) {
	cfg := MakeAllConfigs(ctx)
	if err := setupLogging(cfg); err != nil {
		return cfg, nil, "", err
	}

	preset, err := integration.GetPresetByName(cfg.Chain.Preset)
	if err != nil {
		return cfg, nil, "", err
	}
	reg := forkset.NewRegistry()
	if err := preset.Populate(reg); err != nil {
		return cfg, nil, "", err
	}

	chainID := cfg.Chain.ChainID
	if chainID == "" {
		chainID = preset.ChainID
	}
	logrus.WithFields(logrus.Fields{"preset": preset.Name, "chain": chainID}).
		Debug("registry populated")
	return cfg, reg, chainID, nil
}

func listRuleSets(ctx *cli.Context) error {
	cfg, reg, chainID, err := makeEnv(ctx)
	if err != nil {
		return err
	}
	kind, err := parseKind(cfg.Query.Kind)
	if err != nil {
		return err
	}

	var list []*forkset.RuleSet
	switch {
	case kind == forkset.Base && cfg.Query.DeployedOnly:
		list, err = forkset.DeployedForks(reg, chainID)
	case kind == forkset.Base && cfg.Query.DevelopmentOnly:
		list, err = forkset.DevelopmentForks(reg, chainID)
	default:
		list, err = forkset.OrderedList(reg, chainID, kind)
	}
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	for _, rs := range list {
		status := "development"
		if rs.Deployed() {
			status = "deployed"
		}
		if from, to, atBlock, atTime, ok := rs.TransitionSides(); ok {
			fmt.Fprintf(w, "%-28s %-12s %s -> %s at block %d time %d\n",
				rs.Name(), status, from.Name(), to.Name(), uint64(atBlock), uint64(atTime))
			continue
		}
		parent := "-"
		if rs.Parent() != nil {
			parent = rs.Parent().Name()
		}
		fmt.Fprintf(w, "%-28s %-12s parent %s\n", rs.Name(), status, parent)
	}
	return nil
}

func describeRuleSet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("describe takes exactly one rule set name")
	}
	cfg, reg, chainID, err := makeEnv(ctx)
	if err != nil {
		return err
	}
	rs, err := reg.RuleSetByName(chainID, ctx.Args().First())
	if err != nil {
		return err
	}
	num, t := cfg.Query.Position()

	w := ctx.App.Writer
	fmt.Fprintf(w, "%s\n", rs)
	fmt.Fprintf(w, "  deployed: %v\n", rs.Deployed())
	if rs.Ignored() {
		fmt.Fprintf(w, "  ignored:  true\n")
	}
	if len(rs.Compat()) > 0 {
		keys := make([]string, 0, len(rs.Compat()))
		for k := range rs.Compat() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  compat:   %s %s\n", k, rs.Compat()[k])
		}
	}
	if feats := rs.Features(); len(feats) > 0 {
		fmt.Fprintf(w, "  features:")
		for _, f := range feats {
			fmt.Fprintf(w, " %s", f)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "attributes at block %d time %d:\n", cfg.Query.Block, cfg.Query.Time)
	for _, name := range forkset.AttributeNames() {
		v, err := forkset.QueryAttribute(rs, name, num, t)
		if err != nil {
			fmt.Fprintf(w, "  %-32s (unsupported)\n", name)
			continue
		}
		fmt.Fprintf(w, "  %-32s %v\n", name, v)
	}
	return nil
}

func listRange(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("range takes exactly two rule set names")
	}
	_, reg, chainID, err := makeEnv(ctx)
	if err != nil {
		return err
	}
	from, err := reg.RuleSetByName(chainID, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	until, err := reg.RuleSetByName(chainID, ctx.Args().Get(1))
	if err != nil {
		return err
	}

	forks, err := forkset.ForksBetween(reg, chainID, from, until)
	if err != nil {
		return err
	}
	if len(forks) == 0 {
		return fmt.Errorf("%s is not an ancestor of %s", from.Name(), until.Name())
	}
	w := ctx.App.Writer
	for _, rs := range forks {
		fmt.Fprintln(w, rs.Name())
		transitions, err := forkset.TransitionsInto(reg, chainID, rs)
		if err != nil {
			return err
		}
		for _, tr := range transitions {
			fmt.Fprintf(w, "  via %s\n", tr.Name())
		}
	}
	return nil
}

func composeRuleSet(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return fmt.Errorf("compose takes a base rule set name and at least one EIP id")
	}
	_, reg, chainID, err := makeEnv(ctx)
	if err != nil {
		return err
	}
	base, err := reg.RuleSetByName(chainID, ctx.Args().First())
	if err != nil {
		return err
	}

	var features []*forkset.Feature
	for _, arg := range ctx.Args().Tail() {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid EIP id %q", arg)
		}
		f, ok := reg.FeatureByID(id)
		if !ok {
			return fmt.Errorf("EIP-%d is not registered", id)
		}
		features = append(features, f)
	}

	composed, err := forkset.Compose(base, features)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "%s\n", composed)
	for _, name := range []string{"Precompiles", "SystemContracts", "TxTypes", "GasCosts"} {
		v, err := forkset.QueryAttribute(composed, name, forkset.HeadBlock, forkset.HeadTime)
		if err != nil {
			fmt.Fprintf(w, "  %-16s (unsupported)\n", name)
			continue
		}
		fmt.Fprintf(w, "  %-16s %v\n", name, v)
	}
	return nil
}
