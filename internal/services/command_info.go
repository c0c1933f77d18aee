package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// CommandInfo is the serializable description of a command used by help
// output and the "commands" listing.
type CommandInfo struct {
	Name          string          `json:"name" yaml:"name"`
	Usage         string          `json:"usage" yaml:"usage"`
	ExtraUsage    string          `json:"extra_usage,omitempty" yaml:"extra_usage,omitempty"`
	Category      string          `json:"category" yaml:"category"`
	ParserKeyword bool            `json:"parser_keyword" yaml:"parser_keyword"`
	Signature     string          `json:"signature" yaml:"signature"`
	Parameters    []ParameterInfo `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	InputOutput   []InOutInfo     `json:"input_output_types" yaml:"input_output_types"`
	SearchTerms   []string        `json:"search_terms,omitempty" yaml:"search_terms,omitempty"`
	Examples      []ExampleInfo   `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// ParameterInfo describes one positional parameter or flag.
type ParameterInfo struct {
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind" yaml:"kind"`
	Shape       string `json:"shape,omitempty" yaml:"shape,omitempty"`
	Short       string `json:"short,omitempty" yaml:"short,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// InOutInfo is a declared input/output pair.
type InOutInfo struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// ExampleInfo is a documented example.
type ExampleInfo struct {
	Description string `json:"description" yaml:"description"`
	Example     string `json:"example" yaml:"example"`
	Result      string `json:"result,omitempty" yaml:"result,omitempty"`
}

// Parameter kinds reported in ParameterInfo.Kind.
const (
	ParamRequired = "required"
	ParamOptional = "optional"
	ParamRest     = "rest"
	ParamSwitch   = "switch"
	ParamFlag     = "flag"
)

// Describe builds the CommandInfo for cmd.
func Describe(cmd nutypes.Command) *CommandInfo {
	sig := cmd.Signature()
	info := &CommandInfo{
		Name:          cmd.Name(),
		Usage:         cmd.Usage(),
		ExtraUsage:    cmd.ExtraUsage(),
		Category:      sig.Category.String(),
		ParserKeyword: cmd.IsParserKeyword(),
		Signature:     sig.UsageLine(),
		SearchTerms:   cmd.SearchTerms(),
	}

	for _, p := range sig.Required {
		info.Parameters = append(info.Parameters, positionalInfo(p, ParamRequired))
	}
	for _, p := range sig.Optional {
		info.Parameters = append(info.Parameters, positionalInfo(p, ParamOptional))
	}
	if sig.Rest != nil {
		info.Parameters = append(info.Parameters, positionalInfo(*sig.Rest, ParamRest))
	}
	for _, f := range sig.Named {
		pi := ParameterInfo{Name: f.Long, Kind: ParamSwitch, Description: f.Desc}
		if f.Short != 0 {
			pi.Short = string(f.Short)
		}
		if !f.IsSwitch() {
			pi.Kind = ParamFlag
			pi.Shape = f.Arg.String()
		}
		info.Parameters = append(info.Parameters, pi)
	}

	for _, io := range sig.InputOutputTypes {
		info.InputOutput = append(info.InputOutput, InOutInfo{Input: io.In.String(), Output: io.Out.String()})
	}

	for _, ex := range cmd.Examples() {
		ei := ExampleInfo{Description: ex.Description, Example: ex.Example}
		if ex.Result != nil && !ex.Result.IsNothing() {
			ei.Result = ex.Result.String()
		}
		info.Examples = append(info.Examples, ei)
	}
	return info
}

func positionalInfo(p nutypes.PositionalArg, kind string) ParameterInfo {
	return ParameterInfo{Name: p.Name, Kind: kind, Shape: p.Shape.String(), Description: p.Desc}
}

// Encode serializes command descriptions as "yaml" or "json".
func Encode(infos []*CommandInfo, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		out, err := yaml.Marshal(infos)
		if err != nil {
			return nil, fmt.Errorf("failed to encode commands as yaml: %w", err)
		}
		return out, nil
	case "json":
		out, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode commands as json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use yaml or json)", format)
	}
}
