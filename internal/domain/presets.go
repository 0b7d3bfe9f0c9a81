package domain

import (
	"fmt"

	"github.com/mouse-blink/predeploy/internal/domain/stages"
)

// Stage names accepted in presets.
const (
	StageBOM           = "bom"
	StageComments      = "comments"
	StageDebugComments = "debug-comments"
	StageCalls         = "calls"
	StageWhitespace    = "whitespace"
	StageRename        = "rename"
)

// StageOptions carries the settings stages are built from.
type StageOptions struct {
	Callees    []string
	DebugTags  []string
	Whitespace stages.Whitespace
	Reserved   []string
	MinLength  int
	TopLevel   bool
	Protect    string
}

// BuildStages turns stage names into stages. The "bom" entry is not a
// stage: it is reported back as the pre-pass flag.
func BuildStages(names []string, opts StageOptions) ([]stages.Stage, bool, error) {
	var (
		out      []stages.Stage
		stripBOM bool
	)

	for _, name := range names {
		switch name {
		case StageBOM:
			stripBOM = true
		case StageComments:
			out = append(out, stages.NewCommentStripper())
		case StageDebugComments:
			out = append(out, stages.NewTaggedCommentStripper(opts.DebugTags))
		case StageCalls:
			out = append(out, stages.NewCallRemover(opts.Callees))
		case StageWhitespace:
			out = append(out, stages.NewWhitespaceCollapser(opts.Whitespace))
		case StageRename:
			out = append(out, &stages.Renamer{
				Reserved:  opts.Reserved,
				MinLength: opts.MinLength,
				TopLevel:  opts.TopLevel,
				Protect:   opts.Protect,
			})
		default:
			return nil, false, fmt.Errorf("unknown stage %q", name)
		}
	}

	return out, stripBOM, nil
}
