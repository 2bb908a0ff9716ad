package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zoobzio/perch"
	"github.com/zoobzio/perch/pkg/config"
	"github.com/zoobzio/perch/pkg/loop"
	"github.com/zoobzio/perch/pkg/scene"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// errNoLayout is returned when a file has no layout section to place.
var errNoLayout = errors.New("document has no layout")

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	placement string // overrides the document's placement
	format    string // output format: "text" or "json"
}

// result is what place prints.
type result struct {
	Placement  perch.Placement   `json:"placement"`
	Flipped    bool              `json:"flipped"`
	Hidden     bool              `json:"hidden"`
	Popper     perch.Rect        `json:"popper"`
	Styles     map[string]string `json:"styles"`
	Attributes map[string]string `json:"attributes"`
}

func newPlaceCmd() *cobra.Command {
	opts := placeOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "place [file]",
		Short: "Compute the placement described by a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			if opts.placement != "" {
				doc.Placement = opts.placement
				if err := doc.Validate(); err != nil {
					return err
				}
			}

			prog := newProgress(logger)
			res, err := place(doc)
			if err != nil {
				return err
			}
			prog.done("placed", "placement", res.Placement, "flipped", res.Flipped)

			return writeResult(cmd.OutOrStdout(), res, opts.format)
		},
	}

	cmd.Flags().StringVarP(&opts.placement, "placement", "p", "", "override the placement")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")
	return cmd
}

// readDocument decodes path with the codec its extension names.
func readDocument(path string) (config.Document, error) {
	codec, err := config.CodecFor(path)
	if err != nil {
		return config.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Document{}, err
	}
	return config.Decode(data, codec)
}

// place builds the document's layout as a scene and positions the popper.
func place(doc config.Document) (result, error) {
	if doc.Layout == nil {
		return result{}, errNoLayout
	}

	vp := scene.NewViewport(doc.Layout.Viewport.Width, doc.Layout.Viewport.Height)
	ref := vp.Append("reference", doc.Layout.Reference.Rect())
	pop := vp.Append("popper", doc.Layout.Popper.Rect())

	opts := append([]perch.Option{
		perch.WithScheduler(loop.New()),
		perch.WithEventsEnabled(false),
	}, doc.Options()...)

	p, err := perch.New(perch.Direct(ref), perch.Direct(pop), opts...)
	if err != nil {
		return result{}, fmt.Errorf("place: %w", err)
	}
	defer p.Destroy() //nolint:errcheck // Built-in hooks do not fail on destroy

	data := p.Data()
	return result{
		Placement:  data.Placement,
		Flipped:    data.Flipped,
		Hidden:     data.Hide,
		Popper:     data.Offsets.Popper,
		Styles:     data.Styles,
		Attributes: data.Attributes,
	}, nil
}

// writeResult prints res in format.
func writeResult(w io.Writer, res result, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case formatText:
		fmt.Fprintf(w, "placement: %s\n", res.Placement)
		fmt.Fprintf(w, "popper: x=%g y=%g width=%g height=%g\n", res.Popper.X, res.Popper.Y, res.Popper.Width, res.Popper.Height)
		if res.Flipped {
			fmt.Fprintln(w, "flipped: true")
		}
		if res.Hidden {
			fmt.Fprintln(w, "hidden: true")
		}
		for _, name := range sortedKeys(res.Styles) {
			fmt.Fprintf(w, "style %s: %s\n", name, res.Styles[name])
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
