package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simdem/archive-plugins/pkg/textfx/colons"
	"github.com/simdem/archive-plugins/pkg/textfx/quotediv"
)

func newColonsCommand(ctx *commandContext) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "colons [file]",
		Short: "Prefix outline-numbered lines with wiki indentation colons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(ctx.stdin, firstArg(args), encoding)
			if err != nil {
				return err
			}
			ctx.log().Debug("colons input", zap.Int("bytes", len(text)))
			_, err = io.WriteString(ctx.stdout, colons.Colonize(text))
			return err
		},
	}
	cmd.Flags().StringVar(&encoding, "input-encoding", "", "Decode input from this charset (e.g. windows-874)")
	return cmd
}

func newQuoteDivCommand(ctx *commandContext) *cobra.Command {
	var (
		encoding   string
		openTag    string
		closeTag   string
		noStraight bool
	)

	cmd := &cobra.Command{
		Use:     "quote-div [file]",
		Aliases: []string{"quotediv"},
		Short:   "Wrap quoted passages in nested div blocks",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(ctx.stdin, firstArg(args), encoding)
			if err != nil {
				return err
			}
			out := quotediv.Wrap(text,
				quotediv.WithTags(openTag, closeTag),
				quotediv.WithStraightQuotes(!noStraight),
			)
			ctx.log().Debug("quote-div input", zap.Int("bytes", len(text)), zap.Bool("straight", !noStraight))
			_, err = io.WriteString(ctx.stdout, out)
			return err
		},
	}
	cmd.Flags().StringVar(&encoding, "input-encoding", "", "Decode input from this charset (e.g. windows-874)")
	cmd.Flags().StringVar(&openTag, "open-tag", quotediv.DefaultOpenTag, "Markup inserted at each opening quote")
	cmd.Flags().StringVar(&closeTag, "close-tag", quotediv.DefaultCloseTag, "Markup inserted at each closing quote")
	cmd.Flags().BoolVar(&noStraight, "no-straight", false, `Leave straight " quotes untouched`)
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
