package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

func newPutCmd(a *app) *cobra.Command {
	var id, account string
	cmd := &cobra.Command{
		Use:   "put <file|->",
		Short: "Store a catalog object",
		Long: `Put reads a catalog object as {"type":...,"data":{...}} from a file or
stdin and stores it for an account. Without --id a new document is created;
with --id an existing document is replaced and its version advanced.

Example:
  catalog put --account acct-1 shirt.json
  catalog put --id 0191... --account acct-1 - < shirt.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" {
				account = a.settings.Account
			}
			if account == "" {
				return userError(fmt.Errorf("put: %w (use --account or set account in config.yaml)", store.ErrInvalidAccount))
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			obj, err := catalog.DecodeObject[string](data)
			if err != nil {
				return userError(fmt.Errorf("decode object: %w", err))
			}

			return a.withStore(func(s store.Store) error {
				doc, err := s.Put(id, account, obj)
				if err != nil {
					return fmt.Errorf("put: %w", err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd, doc)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s %s (version %d)\n", doc.Object.Type(), doc.ID, doc.Version)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "document ID to create or replace")
	cmd.Flags().StringVar(&account, "account", "", "owning account (default: account from config.yaml)")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a document by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s store.Store) error {
				doc, err := s.Get(args[0])
				if err != nil {
					return fmt.Errorf("get %q: %w", args[0], err)
				}
				return printJSON(cmd, doc)
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var objectType, account, itemID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents with optional filters",
		Long: `List prints the stored documents, oldest first. Filters are ANDed.

Example:
  catalog list
  catalog list --type Variation --item-id 0191...
  catalog list --account acct-1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := store.Filter{
				Type:    catalog.ObjectType(objectType),
				Account: account,
				ItemID:  itemID,
			}
			return a.withStore(func(s store.Store) error {
				docs, err := s.Fetch(filter)
				if err != nil {
					return fmt.Errorf("list: %w", err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd, docs)
				}
				return printDocumentTable(cmd, docs)
			})
		},
	}
	types := make([]string, 0, 3)
	for _, t := range []catalog.ObjectType{catalog.ObjectItem, catalog.ObjectVariation, catalog.ObjectModification} {
		types = append(types, string(t))
	}
	cmd.Flags().StringVar(&objectType, "type", "", "object type: "+strings.Join(types, ", "))
	cmd.Flags().StringVar(&account, "account", "", "owning account")
	cmd.Flags().StringVar(&itemID, "item-id", "", "item referenced by variations and modifications")
	return cmd
}

func printDocumentTable(cmd *cobra.Command, docs []store.Document) error {
	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No documents")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tVERSION\tACCOUNT\tCREATED\tNAME")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			doc.ID,
			doc.Object.Type(),
			doc.Version,
			doc.Account,
			doc.CreatedAt.Time().Format(time.RFC3339),
			objectName(doc.Object),
		)
	}
	return w.Flush()
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a document by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s store.Store) error {
				if err := s.Delete(args[0]); err != nil {
					return fmt.Errorf("delete %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
