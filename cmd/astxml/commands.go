package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{StringNode: "text"}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "p",
			Aliases:     []string{"overlay"},
			Description: "json patch applied to the policy, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.overlayOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "astxml").
		WithSynopsis("astxml [opts] command [opts]").
		WithDescription("astxml converts node documents to and from their xml form.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return astxmlMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			DumpCommand(cfg),
			FindCommand(cfg),
			WatchCommand(cfg),
			TypesCommand(cfg))
}

func newCheckConfig(mainCfg *MainConfig) *CheckConfig {
	return &CheckConfig{MainConfig: mainCfg, Jobs: 4}
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := newCheckConfig(mainCfg)
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-j n] [-metrics file] [-gops] <globs...>").
		WithDescription(checkDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

const checkDescription = `check reads every matching document, writes it back and reads the result
again. The two trees read must be equivalent. Differences are shown as a
diff of both trees.

Globs may use ** to match any number of directories.`

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg, Indent: "  "}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [files]").
		WithDescription("read documents and write them back in normal form").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find -e <expr> [files]").
		WithDescription(findDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find prints the path of every node for which the expression is true.

The expression sees
  type      the node type
  name      the element name of the type
  depth     the nesting depth, 0 for the root
  attrs     the attributes, by name
  props     the properties, by name; nodes show as their type
  text      the content property if it is a string
  children  the number of children

Example: find -e 'name == "url" && props.protocol == "http"' doc.xml`

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{CheckConfig: newCheckConfig(mainCfg), Debounce: 100}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-debounce ms] <dir>").
		WithDescription("check .xml files in a directory whenever they change").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("t").
		WithSynopsis("types [-scan files]").
		WithDescription("list the types of the policy, or the element names of files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return types(cfg, cc, args)
		})
}
