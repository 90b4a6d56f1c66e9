package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/habit-tracker/internal/interchange"
	"github.com/nhle/habit-tracker/internal/tracker"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a browser localStorage dump",
	Long: `Import the habitTasks, habitTemplates and generalTasks records from a JSON
dump of the browser version. The stored state is replaced unless --merge is
given, in which case only records with new ids are added.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as JSON, YAML or TOML",
	Long: `Export every task, template and general task. JSON output uses the
browser key layout and can be imported again.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	importCmd.Flags().Bool("merge", false, "Add records whose ids are not present instead of replacing")

	exportCmd.Flags().StringP("format", "f", "", "Output format: json, yaml or toml (default from -o extension, else json)")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}

func runImport(cmd *cobra.Command, args []string) error {
	merge, _ := cmd.Flags().GetBool("merge")

	e, err := openEnv(cmd.Context(), stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	report, err := importFile(cmd.Context(), e.tracker, args[0], merge)
	if err != nil {
		return err
	}
	for _, w := range report.Warnings {
		e.log.Warn("import", zap.String("warning", w))
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks, %d templates, %d general tasks\n",
		report.Tasks, report.Templates, report.General)
	return nil
}

// importFile reads a browser dump from path into t.
func importFile(ctx context.Context, t *tracker.Tracker, path string, merge bool) (interchange.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return interchange.ImportReport{}, err
	}
	defer f.Close()

	snaps, report, err := interchange.ImportBrowser(f)
	if err != nil {
		return report, fmt.Errorf("reading %s: %w", path, err)
	}

	if merge {
		err = t.Merge(ctx, snaps)
	} else {
		err = t.Replace(ctx, snaps)
	}
	return report, err
}

func runExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format, err := exportFormat(formatFlag, output)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd.Context(), stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := interchange.Export(w, e.tracker.Snapshots(), format); err != nil {
		return err
	}
	e.log.Debug("export written", zap.String("format", string(format)), zap.String("output", output))
	return nil
}

// exportFormat resolves the --format flag, falling back to the output
// file's extension and then JSON.
func exportFormat(flag, output string) (interchange.Format, error) {
	if flag != "" {
		return interchange.ParseFormat(flag)
	}
	if ext := filepath.Ext(output); ext != "" {
		if f, err := interchange.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return interchange.FormatJSON, nil
}
