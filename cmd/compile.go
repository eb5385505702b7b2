package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/codec"
	"github.com/AnyUserName/trc/internal/hasher"
	"github.com/AnyUserName/trc/internal/logging"
	"github.com/AnyUserName/trc/internal/preset"
	"github.com/AnyUserName/trc/internal/transform"
)

var (
	compileSrc      string
	compilePreset   string
	compileEndpoint string
	compileJSON     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [config_file]",
	Short: "Compile one transformation config into a tr string and URL",
	Long: `Compiles a transformation config (JSON or YAML, with "type": IMAGE or
VIDEO) into its tr string. Without a file, the named preset is compiled.

With --src the final delivery URL is printed as well. Relative sources are
resolved against --endpoint (default TRC_URL_ENDPOINT).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileSrc, "src", "s", "", "media source path or URL")
	compileCmd.Flags().StringVarP(&compilePreset, "preset", "p", "", "preset to compile when no file is given (default TRC_DEFAULT_PRESET)")
	compileCmd.Flags().StringVarP(&compileEndpoint, "endpoint", "e", "", "URL endpoint for relative sources")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(compileCmd)
}

// compileResult is the output of a single compilation.
type compileResult struct {
	Tr     string `json:"tr"`
	URL    string `json:"url,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Tokens int    `json:"tokens"`
	Layers int    `json:"layers"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	tc, err := loadTransform(args)
	if err != nil {
		return err
	}

	compiler := transform.NewCompiler(transform.WithObserver(logging.Observer(logger)))
	tr := compiler.Compile(tc)
	chain := transform.Parse(tr)
	res := compileResult{Tr: tr, Tokens: len(chain.Tokens), Layers: len(chain.Layers)}

	if compileSrc != "" {
		endpoint := compileEndpoint
		if endpoint == "" {
			endpoint = cfg.Endpoint
		}
		base := transform.ResolveSource(endpoint, compileSrc)
		res.URL = transform.AppendTr(base, tr)
		res.Hash = hasher.CacheKey(base, tr)
	}

	return printCompileResult(cmd.OutOrStdout(), res, compileJSON)
}

// loadTransform reads the config file named in args, or falls back to a
// preset.
func loadTransform(args []string) (transform.Config, error) {
	if len(args) == 1 {
		registry := codec.NewRegistry()
		if !registry.Supports(args[0]) {
			return nil, fmt.Errorf("unsupported config file %s (%s)", args[0], registry)
		}
		var env transform.Envelope
		if err := registry.DecodeFile(args[0], &env); err != nil {
			return nil, err
		}
		if env.Config == nil {
			return nil, fmt.Errorf("%s: empty config", args[0])
		}
		logVerbose("config: %s (%s)", args[0], env.MediaType())
		return env.Config, nil
	}

	name := compilePreset
	if name == "" {
		name = cfg.DefaultPreset
	}
	p, ok := preset.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, preset.Names())
	}
	logVerbose("preset: %s", p.Name)
	return p.Config(), nil
}

func printCompileResult(w io.Writer, res compileResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	if res.URL == "" {
		fmt.Fprintln(w, res.Tr)
		return nil
	}
	fmt.Fprintf(w, "tr:  %s\n", res.Tr)
	fmt.Fprintf(w, "url: %s\n", res.URL)
	return nil
}
