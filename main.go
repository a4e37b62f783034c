package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/checker"
	"github.com/bxlang/bxc/loader"
	"github.com/bxlang/bxc/reader"
	"github.com/bxlang/bxc/typeinfo"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

type session struct {
	module bxModule
	prog   ast.Program
	info   *checker.Info
	ok     bool
}

// runSession loads the documents named on the command line (or in bx.yaml),
// checks them and prints what was reported.
func runSession(c *cli.Context) (*session, error) {
	mod, err := readModule(moduleFile)
	if err != nil {
		return nil, err
	}
	paths, err := mod.sources(c.Args().Slice())
	if err != nil {
		return nil, err
	}
	color, err := mod.colorize(stderrIsTerminal())
	if err != nil {
		return nil, err
	}

	prog, err := loader.LoadFiles(paths)
	if err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}

	info, diags, ok := analyze(prog)

	filename := ""
	if len(paths) == 1 {
		filename = paths[0]
	}
	printDiagnostics(os.Stderr, diags, filename, color)

	return &session{module: mod, prog: prog, info: info, ok: ok}, nil
}

func main() {
	app := &cli.App{
		Name:  "bxc",
		Usage: "bx semantic checker",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with bxc: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						fmt.Printf("no module name provided\n")
						os.Exit(1)
					}
					return writeModule(moduleFile, bxModule{
						Package: name,
						Color:   "auto",
					})
				},
			},
			{
				Name:      "check",
				Usage:     "check programs",
				ArgsUsage: "[documents...]",
				Action: func(c *cli.Context) error {
					sess, err := runSession(c)
					if err != nil {
						return err
					}
					if !sess.ok {
						os.Exit(1)
					}
					return nil
				},
			},
			{
				Name:      "dump",
				Usage:     "dump a checked program and its signatures",
				ArgsUsage: "[documents...]",
				Action: func(c *cli.Context) error {
					sess, err := runSession(c)
					if err != nil {
						return err
					}
					if !sess.ok {
						os.Exit(1)
					}
					repr.Println(sess.prog)
					repr.Println(sess.info.Procs)
					return nil
				},
			},
			{
				Name:      "emit",
				Usage:     "emit the interface module of a checked program",
				ArgsUsage: "[documents...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					sess, err := runSession(c)
					if err != nil {
						return err
					}
					if !sess.ok {
						os.Exit(1)
					}

					m, err := typeinfo.Build(sess.prog, sess.info)
					if err != nil {
						tracerr.PrintSourceColor(tracerr.Wrap(err))
						os.Exit(1)
					}
					module := m.String()

					if c.Bool("dump") {
						fmt.Println(module)
						return nil
					}

					out := c.String("output")
					if out == "" {
						if sess.module.Package == "" {
							return fmt.Errorf("no --output given and no package named in %s", moduleFile)
						}
						out = sess.module.Package + ".ll"
					}
					return ioutil.WriteFile(out, []byte(module), 0644)
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump typeinfo from a compiled module",
				ArgsUsage: "<shared object>",
				Action: func(c *cli.Context) error {
					file := c.Args().Get(0)
					data, err := reader.Read(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
