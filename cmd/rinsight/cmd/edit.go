package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/lloyddewit/rinsight/internal/stmt"
	"github.com/lloyddewit/rinsight/pkg/rinsight"
	"github.com/spf13/cobra"
)

var editScriptPath string

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Apply a YAML-described sequence of edits to a script",
	Long: `Parse a script, then apply a sequence of structural edits described
by a YAML document (--script), printing the resulting source text.

Example --script document:

  edits:
    - op: update_function_argument
      statement: 0
      function: f
      occurrence: 0
      arg_index: 1
      value: "99"
    - op: add_function_parameter
      statement: 0
      function: f
      occurrence: 0
      index: 1
      value: "z"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editScriptPath, "script", "", "path to the YAML edit script (required)")
}

// editSpec is the YAML document's top-level shape.
type editSpec struct {
	Edits []editOp `yaml:"edits"`
}

// editOp is one edit step. Which fields apply depends on Op.
type editOp struct {
	Op         string `yaml:"op"`
	Statement  int    `yaml:"statement"`
	Function   string `yaml:"function"`
	Operator   string `yaml:"operator"`
	Occurrence int    `yaml:"occurrence"`
	ArgIndex   int    `yaml:"arg_index"`
	Index      int    `yaml:"index"`
	Side       string `yaml:"side"`
	Value      string `yaml:"value"`
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editScriptPath == "" {
		return fmt.Errorf("--script is required")
	}

	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	scriptYAML, err := os.ReadFile(editScriptPath)
	if err != nil {
		return fmt.Errorf("reading edit script: %w", err)
	}

	var spec editSpec
	if err := yaml.Unmarshal(scriptYAML, &spec); err != nil {
		return fmt.Errorf("parsing edit script: %w", err)
	}

	script, err := rinsight.Parse(source)
	if err != nil {
		return err
	}

	for i, op := range spec.Edits {
		if err := applyOp(script, op); err != nil {
			return fmt.Errorf("edit %d (%s): %w", i, op.Op, err)
		}
	}

	fmt.Print(script.Text())
	return nil
}

func applyOp(script *rinsight.Script, op editOp) error {
	statements := script.Statements()
	if op.Statement < 0 || op.Statement >= len(statements) {
		return fmt.Errorf("statement index %d out of range (%d statements)", op.Statement, len(statements))
	}
	pos := statements[op.Statement].StartPos()

	return script.Apply(pos, func(v *stmt.StatementView) (int, error) {
		switch op.Op {
		case "update_function_argument":
			return v.UpdateFunctionArgumentValue(op.Function, op.Occurrence, op.ArgIndex, op.Value)
		case "add_function_parameter":
			return v.AddFunctionParameter(op.Function, op.Occurrence, op.Index, op.Value)
		case "remove_function_parameter":
			return v.RemoveFunctionParameter(op.Function, op.Occurrence, op.Index)
		case "update_operator_operand":
			side := stmt.RightOperand
			if op.Side == "left" {
				side = stmt.LeftOperand
			}
			return v.UpdateOperatorOperand(op.Operator, op.Occurrence, side, op.Value)
		case "add_operator_operand":
			return v.AddOperatorOperand(op.Operator, op.Occurrence, op.Index, op.Value)
		default:
			return 0, fmt.Errorf("unrecognized op %q", op.Op)
		}
	})
}
