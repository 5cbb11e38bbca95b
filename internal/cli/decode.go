package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode a document or catalog object and describe it",
		Long: `Decode reads a stored document, or a bare {"type":...,"data":{...}}
object, and prints a summary. On failure it reports the error category:
unknown variant, missing field, malformed field or malformed document.
With --json the canonical encoding is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return a.decode(cmd, data)
		},
	}
}

func (a *app) decode(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()

	if isDocument(data) {
		doc, err := catalog.DecodeDocument[string, string](data)
		if err != nil {
			return decodeError(err)
		}
		if a.flags.jsonMode {
			return printJSON(cmd, doc)
		}
		line, err := summarize(doc.Object)
		if err != nil {
			return decodeError(err)
		}
		fmt.Fprintf(out, "Document %s account=%s version=%d created=%s\n",
			doc.ID, doc.Account, doc.Version, doc.CreatedAt.Time().Format(time.RFC3339))
		fmt.Fprintln(out, line)
		return nil
	}

	obj, err := catalog.DecodeObject[string](data)
	if err != nil {
		return decodeError(err)
	}
	if a.flags.jsonMode {
		return printJSON(cmd, obj)
	}
	line, err := summarize(obj)
	if err != nil {
		return decodeError(err)
	}
	fmt.Fprintln(out, line)
	return nil
}

// isDocument reports whether data looks like a stored document rather than
// a bare object: a JSON object with an "id" member.
func isDocument(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	_, ok := probe["id"]
	return ok
}

func decodeError(err error) error {
	if kind := errorKind(err); kind != "" {
		return userError(fmt.Errorf("decode failed (%s): %w", kind, err))
	}
	return classify(fmt.Errorf("decode failed: %w", err))
}
