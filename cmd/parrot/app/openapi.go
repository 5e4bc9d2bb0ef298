package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	v1 "github.com/parrotdev/parrot/internal/api/v1"
	v2 "github.com/parrotdev/parrot/internal/api/v2"
)

// enumValue is a pflag value restricted to a closed set of strings, so an
// unknown choice is rejected by the flag parser before the command runs.
type enumValue struct {
	value   string
	allowed []string
}

func newEnumValue(defaultValue string, allowed ...string) *enumValue {
	return &enumValue{value: defaultValue, allowed: allowed}
}

func (e *enumValue) String() string {
	return e.value
}

func (e *enumValue) Set(value string) error {
	for _, a := range e.allowed {
		if value == a {
			e.value = value
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}

func (*enumValue) Type() string {
	return "string"
}

var (
	openapiVersion = newEnumValue("v1", "v1", "v2")
	openapiFormat  = newEnumValue("yaml", "yaml", "json")
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Dump the OpenAPI specification to stdout (YAML by default)",
	Long: `Dump the OpenAPI specification of the selected API version to stdout.

No server is started and no network call is made; the specification is
rendered directly from the version's declared interface.`,
	RunE: runOpenAPI,
}

func init() {
	openapiCmd.Flags().Var(openapiVersion, "api-version", "API version (v1, v2)")
	openapiCmd.Flags().Var(openapiFormat, "output-format", "Output format (yaml, json)")
}

func runOpenAPI(cmd *cobra.Command, _ []string) error {
	switch openapiFormat.String() {
	case "json":
		spec, err := selectSpecJSON(openapiVersion.String())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(spec))
	case "yaml":
		spec, err := selectSpecYAML(openapiVersion.String())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(spec))
	default:
		// Unreachable: the flag parser rejects anything outside the enum.
		panic(fmt.Sprintf("unsupported output format: %s", openapiFormat.String()))
	}
	return nil
}

func selectSpecJSON(version string) ([]byte, error) {
	switch version {
	case "v1":
		return json.MarshalIndent(v1.Spec(), "", "  ")
	case "v2":
		return json.MarshalIndent(v2.Spec(), "", "  ")
	default:
		panic(fmt.Sprintf("unsupported API version: %s", version))
	}
}

func selectSpecYAML(version string) ([]byte, error) {
	switch version {
	case "v1":
		return v1.SpecYAML()
	case "v2":
		return v2.SpecYAML()
	default:
		panic(fmt.Sprintf("unsupported API version: %s", version))
	}
}
