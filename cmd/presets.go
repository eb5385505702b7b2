package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/preset"
	"github.com/AnyUserName/trc/internal/transform"
)

var presetsJSON bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in presets and their compiled tr strings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printPresets(cmd.OutOrStdout(), presetsJSON)
	},
}

func init() {
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "print preset configs as JSON")
	rootCmd.AddCommand(presetsCmd)
}

type presetInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Widths      []int              `json:"widths,omitempty"`
	Tr          string             `json:"tr"`
	Config      transform.Envelope `json:"config"`
}

func printPresets(w io.Writer, asJSON bool) error {
	var infos []presetInfo
	for _, name := range preset.Names() {
		p := preset.Get(name)
		c := p.Config()
		infos = append(infos, presetInfo{
			Name:        p.Name,
			Description: p.Description,
			Widths:      p.EffectiveWidths(0),
			Tr:          transform.Compile(c),
			Config:      transform.Envelope{Config: c},
		})
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(infos)
	}

	for _, in := range infos {
		fmt.Fprintf(w, "  %-16s %s\n", in.Name, in.Description)
		fmt.Fprintf(w, "  %-16s tr=%s\n", "", in.Tr)
		if len(in.Widths) > 0 {
			fmt.Fprintf(w, "  %-16s widths=%v\n", "", in.Widths)
		}
	}
	return nil
}
