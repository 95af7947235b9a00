package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	walk "github.com/Sriram-PR/go-walk"
)

var rootCmd = &cobra.Command{
	Use:   "walkdir [path]",
	Short: "List directory contents the way git sees them",
	Long: `walkdir traverses a directory tree and prints every entry that survives
the layered ignore rules: .gitignore, .ignore, the repository exclude file,
the global git ignore file, and any extra sources named on the command line.

Defaults can be placed in a .walkdir.yml file in the walk root; flags given
on the command line take precedence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	f := rootCmd.Flags()

	f.Bool("hidden", false, "include hidden files and directories")
	f.Bool("no-ignore", false, "skip .ignore files")
	f.Bool("no-gitignore", false, "skip .gitignore files")
	f.Bool("no-global-gitignore", false, "skip the global git ignore file")
	f.Bool("no-git-exclude", false, "skip .git/info/exclude")
	f.Bool("no-require-git", false, "honor git ignore sources outside git repositories")
	f.Bool("parents", false, "read ignore files from directories above the root")
	f.BoolP("follow", "L", false, "follow symbolic links")
	f.Bool("same-file-system", false, "stay on the root's filesystem")
	f.BoolP("ignore-case", "i", false, "match patterns case-insensitively")
	f.Int("max-depth", -1, "descend at most this many levels (-1 for no limit)")
	f.Int64("max-filesize", -1, "skip files larger than this many bytes (-1 for no limit)")
	f.StringArrayP("glob", "g", nil, "override glob; prefix with ! to exclude instead")
	f.StringArray("ignore-file", nil, "additional ignore file applied to the whole walk")
	f.StringArray("ignore-name", nil, "additional per-directory ignore file name")
	f.Bool("count", false, "print only the number of entries")
	f.BoolP("quiet", "q", false, "suppress warnings about unreadable files and malformed patterns")
}

func run(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	v := viper.New()
	v.SetConfigName(".walkdir")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	v.SetEnvPrefix("WALKDIR")
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading .walkdir.yml: %w", err)
		}
	}

	quiet := v.GetBool("quiet")
	opts := []walk.Option{
		walk.WithIgnoreHidden(!v.GetBool("hidden")),
		walk.WithIgnoreFiles(!v.GetBool("no-ignore")),
		walk.WithGitIgnore(!v.GetBool("no-gitignore")),
		walk.WithGlobalGitIgnore(!v.GetBool("no-global-gitignore")),
		walk.WithGitExclude(!v.GetBool("no-git-exclude")),
		walk.WithRequireGit(!v.GetBool("no-require-git")),
		walk.WithParentIgnores(v.GetBool("parents")),
		walk.WithFollowLinks(v.GetBool("follow")),
		walk.WithSameFileSystem(v.GetBool("same-file-system")),
		walk.WithCaseInsensitive(v.GetBool("ignore-case")),
		walk.WithMaxDepth(v.GetInt("max-depth")),
		walk.WithMaxFilesize(v.GetInt64("max-filesize")),
		walk.WithOverrides(v.GetStringSlice("glob")...),
		walk.WithAdditionalIgnoreFiles(v.GetStringSlice("ignore-file")...),
		walk.WithAdditionalIgnoreNames(v.GetStringSlice("ignore-name")...),
	}
	if !quiet {
		opts = append(opts,
			walk.WithWarningHandler(func(pw walk.ParseWarning) {
				fmt.Fprintf(os.Stderr, "walkdir: %s:%d: %s\n", pw.Source, pw.Line, pw.Message)
			}),
			walk.WithErrorHandler(func(path string, err error) {
				fmt.Fprintf(os.Stderr, "walkdir: %s: %v\n", path, err)
			}),
		)
	}

	entries, err := walk.Walk(root, opts...)
	if err != nil {
		return err
	}

	if v.GetBool("count") {
		n := 0
		for range entries {
			n++
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	}

	out := cmd.OutOrStdout()
	for ent := range entries {
		fmt.Fprintln(out, ent.Path())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
