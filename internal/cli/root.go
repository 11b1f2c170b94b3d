package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viant/scy/cred"
	"github.com/viant/sfreport"
	"github.com/viant/sfreport/credentials"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/tracing"
)

// NewRootCommand builds the sfreport command tree. Options are passed to every Service
// the commands create.
func NewRootCommand(options ...sfreport.Option) *cobra.Command {
	a := &app{options: options}
	rootCmd := &cobra.Command{
		Use:   "sfreport",
		Short: "Export Salesforce reports to CSV files bundled in a ZIP archive",
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return tracing.Shutdown(cmd.Context())
		},
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configURL, "config", "", "YAML config file URL")
	flags.StringVarP(&a.domain, "domain", "d", "", "Login domain: login, test or a My Domain host")
	flags.StringVarP(&a.username, "username", "u", "", "Salesforce username")
	flags.StringVarP(&a.password, "password", "p", "", "Salesforce password (defaults to $"+envPassword+")")
	flags.StringVarP(&a.securityToken, "token", "t", "", "Security token (defaults to $"+envSecurityToken+")")
	flags.StringVarP(&a.credentialsURL, "credentials", "c", "", "scy encrypted credentials URL")
	flags.StringVar(&a.key, "key", "", "scy key for --credentials (default "+credentials.DefaultKey+")")
	flags.StringVar(&a.historyDSN, "history", "", "sqlite export history database")
	flags.StringVar(&a.traceFile, "trace", "", "write OpenTelemetry spans to this file")

	rootCmd.AddCommand(
		newLoginCmd(a),
		newReportsCmd(a),
		newFoldersCmd(a),
		newExportCmd(a),
		newSecureCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print session details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer srv.Close()
			session, err := a.login(cmd.Context(), srv)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printOK(out, "Logged in as %s", session.UserName)
			fmt.Fprintf(out, "Instance:    %s\n", session.InstanceURL)
			fmt.Fprintf(out, "API version: %s\n", session.VersionPath())
			fmt.Fprintf(out, "Org ID:      %s\n", session.OrgID)
			return nil
		},
	}
}

func newReportsCmd(a *app) *cobra.Command {
	var folderID string
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"r"},
		Short:   "List reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer srv.Close()
			if _, err = a.login(ctx, srv); err != nil {
				return err
			}
			aCatalog, err := srv.Catalog()
			if err != nil {
				return err
			}
			var reports []*model.ReportMetadata
			if folderID != "" {
				reports, err = aCatalog.ListFolderReports(ctx, folderID)
			} else {
				reports, err = aCatalog.ListReports(ctx)
			}
			if err != nil {
				return err
			}
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tFORMAT")
			for _, report := range reports {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", report.ID, report.DisplayName(), report.Format())
			}
			if err = writer.Flush(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "%d reports", len(reports))
			return nil
		},
	}
	cmd.Flags().StringVarP(&folderID, "folder", "f", "", "List only reports in this folder")
	return cmd
}

func newFoldersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List report folders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer srv.Close()
			if _, err = a.login(ctx, srv); err != nil {
				return err
			}
			folders, err := srv.ListReportFolders(ctx)
			if err != nil {
				return err
			}
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tACCESS")
			for _, folder := range folders {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", folder.ID, folder.Name, folder.Type)
			}
			if err = writer.Flush(); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "%d folders", len(folders))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		folderID  string
		reportIDs []string
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:     "export <dest.zip>",
		Aliases: []string{"x"},
		Short:   "Export reports into a ZIP archive",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if folderID != "" && len(reportIDs) > 0 {
				return errors.New("use either `--folder` or `--report`, not both")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			var extra []sfreport.Option
			if !quiet {
				extra = append(extra, sfreport.WithProgress(progressPrinter(out)))
			}
			srv, err := a.service(ctx, extra...)
			if err != nil {
				return err
			}
			defer srv.Close()
			session, err := a.login(ctx, srv)
			if err != nil {
				return err
			}
			printOK(out, "Logged in to %s (%s)", session.InstanceURL, session.VersionPath())

			dest := args[0]
			var result *model.ExportResult
			switch {
			case folderID != "":
				result, err = srv.ExportFolder(ctx, dest, folderID)
			case len(reportIDs) > 0:
				result, err = srv.ExportSelected(ctx, dest, reportIDs)
			default:
				result, err = srv.ExportAll(ctx, dest)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			for _, failure := range result.Failed {
				printWarn(out, "%s (%s): %s", failure.Name, failure.ID, failure.Error)
			}
			if result.Succeeded() {
				printOK(out, "Exported %d reports to %s", result.Total, result.ZipPath)
				return nil
			}
			printWarn(out, "Exported %d of %d reports to %s", len(result.Successful), result.Total, result.ZipPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&folderID, "folder", "f", "", "Export only reports in this folder")
	cmd.Flags().StringSliceVarP(&reportIDs, "report", "r", nil, "Export only these report ids (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress")
	return cmd
}

func newSecureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "secure <url>",
		Short: "Store --username, --password, --token and --domain as scy encrypted credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.username == "" || a.password == "" {
				return errors.New("provide `--username` and `--password`")
			}
			srv, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer srv.Close()
			creds := &credentials.Credentials{
				Basic:         cred.Basic{Username: a.username, Password: a.password},
				SecurityToken: a.securityToken,
				Domain:        a.domain,
			}
			if err = srv.Credentials().Store(cmd.Context(), args[0], a.key, creds); err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Credentials stored at %s", args[0])
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		failed bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent export runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer srv.Close()
			store, err := srv.History(ctx)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("no history database configured. Use `--history <path>` or history.dsn")
			}
			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "RUN\tSTARTED\tTOTAL\tOK\tFAILED\tZIP")
			for _, run := range runs {
				fmt.Fprintf(writer, "%s\t%s\t%d\t%d\t%d\t%s\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Total, run.Successful, run.Failed, run.ZipPath)
			}
			if err = writer.Flush(); err != nil {
				return err
			}
			if !failed {
				return nil
			}
			for _, run := range runs {
				failures, err := store.Failures(ctx, run.ID)
				if err != nil {
					return err
				}
				for _, failure := range failures {
					printError(out, "%s %s (%s): %s", run.ID, failure.Name, failure.ID, failure.Error)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list, 0 for all")
	cmd.Flags().BoolVar(&failed, "failed", false, "Also list failed reports of each run")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, Version)
			return nil
		},
	}
}
