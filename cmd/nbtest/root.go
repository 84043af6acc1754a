package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nbtest",
		Short:         "nbtest executes Jupyter notebooks and reports failures",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("dir", "", "directory holding the notebooks (default \"notebooks\")")
	persistent.StringArray("notebook", nil, "notebook file to include instead of scanning --dir")
	persistent.StringArray("only", nil, "include only matching notebooks")
	persistent.StringArray("skip", nil, "exclude matching notebooks")
	persistent.StringArray("expect", nil, "notebook name that must be present (repeatable)")
	persistent.String("timeout", "", "per-notebook timeout (default 5m)")
	persistent.String("kernel", "", "kernel used to execute notebooks (default \"python3\")")
	persistent.String("jupyter", "", "jupyter invocation (default \"jupyter\")")
	persistent.StringArray("python-path", nil, "directory prepended to PYTHONPATH (repeatable)")
	persistent.Bool("dry-run", false, "list notebooks and their code cells without executing them")
	persistent.BoolP("verbose", "v", false, "stream engine output in real time")
	persistent.String("format", "pretty", "output format (pretty|json)")
	persistent.String("log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
