// Command girt is an interactive editor for git rebase "todo" files,
// invoked by Git as $GIT_SEQUENCE_EDITOR during an interactive rebase.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/confirmmodule"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/dispatch"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/execedit"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/externaleditor"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/gitconfig"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/listmodule"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/silog"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/termio"
	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/todo"
)

func main() {
	var cli rootCmd
	kctx := kong.Parse(&cli,
		kong.Name("girt"),
		kong.Description("An interactive editor for git rebase todo files."),
		kong.UsageOnError(),
		kong.Bind(&cli),
	)
	kctx.FatalIfErrorf(kctx.Run())
}

type rootCmd struct {
	EditCmd editCmd `cmd:"" default:"withargs" name:"edit" help:"Edit a rebase todo file in place"`

	Verbose bool `short:"v" help:"Enable debug logging to stderr"`
}

type editCmd struct {
	TodoFile string `arg:"" name:"todo-file" type:"path" help:"Path to the git-rebase-todo file"`

	UndoLimit   int    `name:"undo-limit" default:"5000" help:"Maximum number of undo steps to retain"`
	CommentChar string `name:"comment-char" default:"#" help:"Comment character configured by core.commentChar"`
	Editor      string `name:"editor" help:"Editor command template; overrides git's own editor resolution"`
}

func (cmd *editCmd) Run(kctx *kong.Context, root *rootCmd) error {
	lvl := silog.LevelInfo
	if root.Verbose {
		lvl = silog.LevelDebug
	}
	log := silog.New(os.Stderr, lvl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	go func() {
		<-sigc
		log.Warn("interrupted, finishing current step before exit")
		cancel()
	}()

	editorTemplate := cmd.Editor
	if editorTemplate == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		editorTemplate = gitconfig.EditorCommand(ctx, wd)
	}

	tf := todo.New(cmd.TodoFile, cmd.UndoLimit, cmd.CommentChar)
	if err := tf.Load(); err != nil {
		return fmt.Errorf("load rebase plan: %w", err)
	}

	modules := map[module.State]module.Module{
		module.List:           listmodule.New(tf),
		module.ExternalEditor: externaleditor.New(editorTemplate, tf),
		module.Confirm:        confirmmodule.New("Are you sure you want to abort", module.Abort),
	}

	restore, err := termio.RawMode(os.Stdin)
	if err != nil {
		return fmt.Errorf("enter raw terminal mode: %w", err)
	}
	defer func() {
		if restoreErr := restore(); restoreErr != nil {
			log.Warn("failed to restore terminal state", "err", restoreErr)
		}
	}()

	d := dispatch.New(
		modules,
		module.List,
		termio.NewKeyReader(os.Stdin),
		runExternalCommand,
		log,
	)

	code, err := d.Run(ctx)
	if err != nil {
		return err
	}
	if code == module.Bad {
		kctx.Exit(1)
		return nil
	}

	if err := writePlan(tf, code); err != nil {
		return fmt.Errorf("write rebase plan: %w", err)
	}
	return nil
}

// writePlan persists the edited plan for Git to execute. A confirmed abort
// leaves an empty plan, which tells Git to abandon the rebase.
func writePlan(tf *todo.TodoFile, code module.ExitCode) error {
	if code == module.Abort {
		tf.SetLines(nil)
	}
	return tf.Write()
}

func runExternalCommand(program string, args []string) error {
	return execedit.Command(program, args...).Run()
}
