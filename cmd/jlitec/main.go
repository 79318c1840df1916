// Command jlitec is a thin CLI wrapper around the jlitec library
// (SPEC_FULL.md §2.2): it is explicitly out of scope for the core
// pipeline (spec.md §1) and exists only so the pipeline is runnable
// from a shell. All real behavior lives in the root jlitec package and
// the internal/* stages it drives.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/teris-io/cli"

	"github.com/tserg/jlitec"
	"github.com/tserg/jlitec/internal/diag"
)

var description = strings.ReplaceAll(`
jlitec compiles a single JLite source file through lexing, parsing,
type checking, IR3 lowering and control-flow optimization, printing the
resulting IR3 listing.
`, "\n", " ")

var app = cli.New(description).
	WithArg(cli.NewArg("file", "The JLite source file (.j) to compile").WithType(cli.TypeString)).
	WithOption(cli.NewOption("print-ast", "Print the parsed AST instead of the IR3 listing").WithType(cli.TypeBool)).
	WithOption(cli.NewOption("print-cfg", "Print the control-flow graph alongside the IR3 listing").WithType(cli.TypeBool)).
	WithOption(cli.NewOption("const-prop", "Enable intra-block constant propagation").WithType(cli.TypeBool)).
	WithAction(run)

func run(args []string, options map[string]string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected exactly one input file, use --help")
		return 1
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: unable to read %s: %s\n", args[0], err)
		return 1
	}

	_, constProp := options["const-prop"]
	result, err := compile(src, constProp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if _, ok := options["print-ast"]; ok {
		pretty.Println(result.AST)
		return 0
	}

	fmt.Print(result.IR3.Print())

	if _, ok := options["print-cfg"]; ok {
		for _, g := range result.CFGs {
			fmt.Print(g.Print())
		}
	}
	return 0
}

// compile wraps jlitec.Compile so an internal-error panic (diag.Internal)
// becomes a one-line diagnostic instead of a bare crash, per spec.md §7's
// "loud, non-recoverable" treatment: the process still exits non-zero,
// but the caller sees a correlatable run ID rather than a raw trace.
func compile(src []byte, constProp bool) (result *jlitec.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(diag.InternalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()
	return jlitec.Compile(src, jlitec.Options{ConstProp: constProp})
}

func main() { os.Exit(app.Run(os.Args, os.Stdout)) }
